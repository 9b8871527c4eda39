package fixtures

const (
	ValidEmail          = "user@example.com"
	ValidSecondEmail    = "other@example.com"
	ValidPhone          = "+77011234567"
	ValidTelegramHandle = "@someuser"
)
