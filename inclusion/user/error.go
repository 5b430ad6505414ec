package user

import (
	"net/http"

	"github.com/incluempleo/vinculo/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("USER")

// Error codes
var (
	CodeUserNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeUserAlreadyExists = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "An account with this email already exists")
	CodeUserInactive      = ErrRegistry.Register("INACTIVE", errx.TypeBusiness, http.StatusForbidden, "Account is deactivated")
	CodeInvalidEmail      = ErrRegistry.Register("INVALID_EMAIL", errx.TypeValidation, http.StatusBadRequest, "Invalid email address")
	CodeInvalidNIT        = ErrRegistry.Register("INVALID_NIT", errx.TypeValidation, http.StatusBadRequest, "Invalid NIT")
	CodeInvalidRole       = ErrRegistry.Register("INVALID_ROLE", errx.TypeValidation, http.StatusBadRequest, "Invalid account role")
	CodeNotACompany       = ErrRegistry.Register("NOT_A_COMPANY", errx.TypeBusiness, http.StatusBadRequest, "Account is not a company")
	CodeInvalidDisability = ErrRegistry.Register("INVALID_DISABILITY", errx.TypeValidation, http.StatusBadRequest, "Invalid disability category")
	CodeWeakPassword      = ErrRegistry.Register("WEAK_PASSWORD", errx.TypeValidation, http.StatusBadRequest, "Password must be at least 8 characters")
)

// Helper functions
func ErrUserNotFound() *errx.Error {
	return ErrRegistry.New(CodeUserNotFound)
}

func ErrUserAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeUserAlreadyExists)
}

func ErrUserInactive() *errx.Error {
	return ErrRegistry.New(CodeUserInactive)
}

func ErrInvalidEmail() *errx.Error {
	return ErrRegistry.New(CodeInvalidEmail)
}

func ErrInvalidNIT() *errx.Error {
	return ErrRegistry.New(CodeInvalidNIT)
}

func ErrInvalidRole() *errx.Error {
	return ErrRegistry.New(CodeInvalidRole)
}

func ErrNotACompany() *errx.Error {
	return ErrRegistry.New(CodeNotACompany)
}

func ErrInvalidDisability() *errx.Error {
	return ErrRegistry.New(CodeInvalidDisability)
}

func ErrWeakPassword() *errx.Error {
	return ErrRegistry.New(CodeWeakPassword)
}
