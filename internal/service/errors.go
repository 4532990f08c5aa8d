package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Lixing-Zhang/menu-cms/internal/cache"
	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrDuplicateCategoryIDs = errors.New("reorder list contains duplicate category ids")
	ErrUnsupportedLanguage  = errors.New("language is not supported")
	ErrNoMenuItems          = errors.New("there are no menu items")
)

const validationCode = "VALIDATION_FAILED"

// wrapValidationError tags ozzo validation errors so handlers can map them to 400
func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, err.Error()).
		WithTextCode(validationCode)
}

// IsValidation reports whether err is an input validation failure
func IsValidation(err error) bool {
	return err != nil && goerrors.IsCategory(err, goerrors.CategoryValidation)
}

// ValidationMessage returns the field messages of a validation failure
// without the error category and code prefix.
func ValidationMessage(err error) string {
	var wrapped *goerrors.Error
	if goerrors.As(err, &wrapped) && wrapped.Message != "" {
		return wrapped.Message
	}
	return err.Error()
}

// menuInvalidator drops the cached public menu after writes. Cache failures
// are logged, never returned: the write already succeeded.
type menuInvalidator struct {
	cache  cache.MenuCache
	logger *slog.Logger
}

func (i menuInvalidator) invalidate(ctx context.Context) {
	if i.cache == nil {
		return
	}
	if err := i.cache.Invalidate(ctx); err != nil {
		i.logger.Warn("failed to invalidate menu cache", "error", err)
	}
}
