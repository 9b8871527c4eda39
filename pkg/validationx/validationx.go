package validationx

import (
	"errors"

	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
	"github.com/google/uuid"
)

const MaxTargetLength = 254

// TargetRules accept any non-empty delivery target. The format is deliberately
// not checked here: the notifier is the one that knows what a valid address
// for its channel looks like.
var TargetRules = []validation.Rule{
	validation.Required,
	validation.Length(1, MaxTargetLength),
}

func CodeRules(length int) []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(length, length),
		is.Digit,
	}
}

var Required = validation.By(validateRequiredUUID)

func validateRequiredUUID(value any) error {
	id, ok := value.(uuid.UUID)
	if !ok {
		return errors.New("value is not a uuid.UUID")
	}

	if id == uuid.Nil {
		return validation.ErrRequired
	}

	return nil
}
