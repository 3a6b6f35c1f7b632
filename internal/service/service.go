package service

import (
	"errors"
	"fmt"
	"log"

	"go-dental-erp/internal/repository"
	"go-dental-erp/internal/serviceerr"
	"go-dental-erp/pkg/validator"

	"gorm.io/gorm"
)

// mapRepoError converts persistence errors into the structured taxonomy.
// Anything unanticipated is logged and surfaced as a generic internal error.
func mapRepoError(err error, notFoundMsg, conflictMsg string) error {
	if se, ok := serviceerr.As(err); ok {
		return se
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return serviceerr.NotFound(notFoundMsg)
	case errors.Is(err, repository.ErrStateChanged):
		return serviceerr.Conflict(conflictMsg)
	default:
		log.Printf("persistence error: %v", err)
		return serviceerr.Internal(err)
	}
}

// validateStruct wraps pkg/validator into the structured error surface.
func validateStruct(data interface{}) error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		firstErr := errs[0]
		return serviceerr.Validation(fmt.Sprintf("Trường '%s' không hợp lệ (%s)", firstErr.FailedField, firstErr.Tag))
	}
	return nil
}
