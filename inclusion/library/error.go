package library

import (
	"net/http"

	"github.com/incluempleo/vinculo/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("LIBRARY")

// Error codes
var (
	CodeResourceNotFound = ErrRegistry.Register("RESOURCE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resource not found")
	CodeCategoryNotFound = ErrRegistry.Register("CATEGORY_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resource category not found")
	CodeInvalidResource  = ErrRegistry.Register("INVALID_RESOURCE", errx.TypeValidation, http.StatusBadRequest, "Invalid resource data")
	CodeInvalidCategory  = ErrRegistry.Register("INVALID_CATEGORY", errx.TypeValidation, http.StatusBadRequest, "Invalid category data")
	CodeNoFile           = ErrRegistry.Register("NO_FILE", errx.TypeBusiness, http.StatusConflict, "Resource has no downloadable file")
	CodeFileNotAllowed   = ErrRegistry.Register("FILE_NOT_ALLOWED", errx.TypeValidation, http.StatusBadRequest, "File type not allowed")
	CodeDuplicateSlug    = ErrRegistry.Register("DUPLICATE_SLUG", errx.TypeConflict, http.StatusConflict, "A resource with this slug already exists")
)

// Helper functions
func ErrResourceNotFound() *errx.Error {
	return ErrRegistry.New(CodeResourceNotFound)
}

func ErrCategoryNotFound() *errx.Error {
	return ErrRegistry.New(CodeCategoryNotFound)
}

func ErrInvalidResource() *errx.Error {
	return ErrRegistry.New(CodeInvalidResource)
}

func ErrInvalidCategory() *errx.Error {
	return ErrRegistry.New(CodeInvalidCategory)
}

func ErrNoFile() *errx.Error {
	return ErrRegistry.New(CodeNoFile)
}

func ErrFileNotAllowed() *errx.Error {
	return ErrRegistry.New(CodeFileNotAllowed)
}

func ErrDuplicateSlug() *errx.Error {
	return ErrRegistry.New(CodeDuplicateSlug)
}
