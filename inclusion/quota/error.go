package quota

import (
	"net/http"

	"github.com/incluempleo/vinculo/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("QUOTA")

// Error codes
var (
	CodeQuotaNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Employment quota record not found")
	CodeInvalidEmployeeCount = ErrRegistry.Register("INVALID_EMPLOYEE_COUNT", errx.TypeValidation, http.StatusBadRequest, "Employee count cannot be negative")
	CodeSnapshotExists       = ErrRegistry.Register("SNAPSHOT_EXISTS", errx.TypeConflict, http.StatusConflict, "A snapshot for this month already exists")
)

// Helper functions
func ErrQuotaNotFound() *errx.Error {
	return ErrRegistry.New(CodeQuotaNotFound)
}

func ErrInvalidEmployeeCount() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmployeeCount)
}

func ErrSnapshotExists() *errx.Error {
	return ErrRegistry.New(CodeSnapshotExists)
}
