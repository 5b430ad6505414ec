package interview

import (
	"net/http"

	"github.com/incluempleo/vinculo/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("INTERVIEW")

// Error codes
var (
	CodeInterviewNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Interview not found")
	CodeNotParticipant    = ErrRegistry.Register("NOT_PARTICIPANT", errx.TypeAuthorization, http.StatusForbidden, "User is not a participant of this interview")
	CodeInvalidInterview  = ErrRegistry.Register("INVALID_INTERVIEW", errx.TypeValidation, http.StatusBadRequest, "Invalid interview data")
	CodeInvalidTransition = ErrRegistry.Register("INVALID_TRANSITION", errx.TypeBusiness, http.StatusConflict, "Interview status transition not allowed")
	CodeScheduledInPast   = ErrRegistry.Register("SCHEDULED_IN_PAST", errx.TypeValidation, http.StatusBadRequest, "Interview cannot be scheduled in the past")
	CodeNotYetHeld        = ErrRegistry.Register("NOT_YET_HELD", errx.TypeBusiness, http.StatusConflict, "Interview has not taken place yet")
	CodeReasonRequired    = ErrRegistry.Register("REASON_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "A cancellation reason is required")
)

// Helper functions
func ErrInterviewNotFound() *errx.Error {
	return ErrRegistry.New(CodeInterviewNotFound)
}

func ErrNotParticipant() *errx.Error {
	return ErrRegistry.New(CodeNotParticipant)
}

func ErrInvalidInterview() *errx.Error {
	return ErrRegistry.New(CodeInvalidInterview)
}

func ErrInvalidTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidTransition)
}

func ErrScheduledInPast() *errx.Error {
	return ErrRegistry.New(CodeScheduledInPast)
}

func ErrNotYetHeld() *errx.Error {
	return ErrRegistry.New(CodeNotYetHeld)
}

func ErrReasonRequired() *errx.Error {
	return ErrRegistry.New(CodeReasonRequired)
}
