package usecase

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"

	repo "storefront/internal/repository"
)

// HTTPError はhandlerでそのままステータスに変換する。
// Errには repository の番兵エラーを入れる（errors.Isで判定できる）
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func wrapHTTPError(status int, message string, err error) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func invalid(message string) error {
	return wrapHTTPError(http.StatusBadRequest, message, repo.ErrInvalidArgument)
}

func notFound() error {
	return wrapHTTPError(http.StatusNotFound, "not found", repo.ErrNotFound)
}

func dbError() error {
	return wrapHTTPError(http.StatusInternalServerError, "db error", repo.ErrPersistence)
}
