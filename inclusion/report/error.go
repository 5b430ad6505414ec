package report

import (
	"net/http"

	"github.com/incluempleo/vinculo/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("REPORT")

// Error codes
var (
	CodeReportNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Hiring report not found")
	CodeNotOwner              = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Hiring report belongs to another company")
	CodeInvalidReport         = ErrRegistry.Register("INVALID_REPORT", errx.TypeValidation, http.StatusBadRequest, "Invalid hiring report data")
	CodeContractDateInFuture  = ErrRegistry.Register("CONTRACT_DATE_IN_FUTURE", errx.TypeValidation, http.StatusBadRequest, "Contract date cannot be in the future")
	CodeInvalidDisabilityType = ErrRegistry.Register("INVALID_DISABILITY_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid coded disability type")
	CodeDuplicateContract     = ErrRegistry.Register("DUPLICATE_CONTRACT", errx.TypeConflict, http.StatusConflict, "A report for this contract number already exists")
	CodeAlreadyConfirmed      = ErrRegistry.Register("ALREADY_CONFIRMED", errx.TypeBusiness, http.StatusConflict, "Hiring report is already confirmed by the ministry")
	CodeNotSendable           = ErrRegistry.Register("NOT_SENDABLE", errx.TypeBusiness, http.StatusConflict, "Hiring report is not in a sendable status")
	CodeRetriesExhausted      = ErrRegistry.Register("RETRIES_EXHAUSTED", errx.TypeBusiness, http.StatusConflict, "Hiring report delivery attempts are exhausted")
	CodeSubmissionFailed      = ErrRegistry.Register("SUBMISSION_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to process the hiring report")
	CodeArtifactNotFound      = ErrRegistry.Register("ARTIFACT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Report artifact has not been generated yet")
)

// Helper functions
func ErrReportNotFound() *errx.Error {
	return ErrRegistry.New(CodeReportNotFound)
}

func ErrNotOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOwner)
}

func ErrInvalidReport() *errx.Error {
	return ErrRegistry.New(CodeInvalidReport)
}

func ErrContractDateInFuture() *errx.Error {
	return ErrRegistry.New(CodeContractDateInFuture)
}

func ErrInvalidDisabilityType() *errx.Error {
	return ErrRegistry.New(CodeInvalidDisabilityType)
}

func ErrDuplicateContract() *errx.Error {
	return ErrRegistry.New(CodeDuplicateContract)
}

func ErrAlreadyConfirmed() *errx.Error {
	return ErrRegistry.New(CodeAlreadyConfirmed)
}

func ErrNotSendable() *errx.Error {
	return ErrRegistry.New(CodeNotSendable)
}

func ErrRetriesExhausted() *errx.Error {
	return ErrRegistry.New(CodeRetriesExhausted)
}

func ErrSubmissionFailed() *errx.Error {
	return ErrRegistry.New(CodeSubmissionFailed)
}

func ErrArtifactNotFound() *errx.Error {
	return ErrRegistry.New(CodeArtifactNotFound)
}
