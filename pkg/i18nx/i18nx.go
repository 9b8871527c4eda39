package i18nx

import (
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	tmsv2 "gitlab.com/tmsv2/tms-backend"
)

// Message keys shared between error values and notification templates.
const (
	KeyVerificationCodeSubject = "verification_code_subject"
	KeyVerificationCodeBody    = "verification_code_body"
	KeyVerificationCodeSMS     = "verification_code_sms"
)

// NewBundle loads the embedded locale files. English is the fallback language.
func NewBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.LoadMessageFileFS(tmsv2.Locales, "locales/en.toml")
	bundle.LoadMessageFileFS(tmsv2.Locales, "locales/kk.toml")
	bundle.LoadMessageFileFS(tmsv2.Locales, "locales/ru.toml")

	return bundle
}

// Localizer returns a localizer for the requested language, falling back to
// English for anything unrecognized.
func Localizer(bundle *i18n.Bundle, lang string) *i18n.Localizer {
	switch lang {
	case "kk", "ru":
		return i18n.NewLocalizer(bundle, lang)
	default:
		return i18n.NewLocalizer(bundle, "en")
	}
}
