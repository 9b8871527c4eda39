package verification

import (
	"net/http"

	"gitlab.com/tmsv2/tms-backend/pkg/apperr"
)

var (
	ErrEmptyTarget     = apperr.NewInvalid("target cannot be empty")
	ErrInvalidChannel  = apperr.NewInvalid("unknown delivery channel")
	ErrCodeExpired     = apperr.New(apperr.CodeInvalid, "verification code has expired", http.StatusUnprocessableEntity)
	ErrCodeAlreadyUsed = apperr.NewAlreadyProcessed("verification code has already been used")
	ErrCodeMismatch    = apperr.New(apperr.CodeInvalid, "verification code does not match", http.StatusUnprocessableEntity)
)
