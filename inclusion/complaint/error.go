package complaint

import (
	"net/http"

	"github.com/incluempleo/vinculo/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("COMPLAINT")

// Error codes
var (
	CodeComplaintNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Complaint not found")
	CodeInvalidComplaint  = ErrRegistry.Register("INVALID_COMPLAINT", errx.TypeValidation, http.StatusBadRequest, "Invalid complaint data")
	CodeInvalidTransition = ErrRegistry.Register("INVALID_TRANSITION", errx.TypeBusiness, http.StatusConflict, "Complaint status transition not allowed")
	CodeTooMuchEvidence   = ErrRegistry.Register("TOO_MUCH_EVIDENCE", errx.TypeValidation, http.StatusBadRequest, "At most three evidence files are allowed")
	CodeReasonRequired    = ErrRegistry.Register("REASON_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "A reason is required for this status change")
)

// Helper functions
func ErrComplaintNotFound() *errx.Error {
	return ErrRegistry.New(CodeComplaintNotFound)
}

func ErrInvalidComplaint() *errx.Error {
	return ErrRegistry.New(CodeInvalidComplaint)
}

func ErrInvalidTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidTransition)
}

func ErrTooMuchEvidence() *errx.Error {
	return ErrRegistry.New(CodeTooMuchEvidence)
}

func ErrReasonRequired() *errx.Error {
	return ErrRegistry.New(CodeReasonRequired)
}
