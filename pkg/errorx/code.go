package errorx

type Code string

func (c Code) String() string {
	return string(c)
}

const (
	// Client errors (4xx)
	CodeInvalid          Code = "INVALID"
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeNotFound         Code = "NOT_FOUND"
	CodeConflict         Code = "CONFLICT"
	CodeDuplicateEntry   Code = "DUPLICATE_ENTRY"

	// Business logic
	CodeAlreadyProcessed Code = "ALREADY_PROCESSED"

	// Server errors (5xx)
	CodeInternal Code = "INTERNAL_ERROR"
)
