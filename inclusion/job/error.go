package job

import (
	"net/http"

	"github.com/incluempleo/vinculo/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job posting not found")
	CodeNotOwner         = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Job posting belongs to another company")
	CodeNotPendingReview = ErrRegistry.Register("NOT_PENDING_REVIEW", errx.TypeBusiness, http.StatusConflict, "Job posting is not pending review")
	CodeNonCompliant     = ErrRegistry.Register("NON_COMPLIANT", errx.TypeBusiness, http.StatusUnprocessableEntity, "Job posting is missing mandated legal fields")
	CodeReasonRequired   = ErrRegistry.Register("REASON_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "A reason is required for this decision")
	CodeInvalidJob       = ErrRegistry.Register("INVALID_JOB", errx.TypeValidation, http.StatusBadRequest, "Invalid job posting data")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrNotOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOwner)
}

func ErrNotPendingReview() *errx.Error {
	return ErrRegistry.New(CodeNotPendingReview)
}

func ErrNonCompliant() *errx.Error {
	return ErrRegistry.New(CodeNonCompliant)
}

func ErrReasonRequired() *errx.Error {
	return ErrRegistry.New(CodeReasonRequired)
}

func ErrInvalidJob() *errx.Error {
	return ErrRegistry.New(CodeInvalidJob)
}
