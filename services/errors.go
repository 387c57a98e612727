package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ResponseError is a failure with an HTTP status attached.
type ResponseError struct {
	Status  int
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NotFound(msg string) error {
	return &ResponseError{Status: http.StatusNotFound, Message: msg}
}

// Conflict is a business rule violation. It is reported as 400.
func Conflict(msg string) error {
	return &ResponseError{Status: http.StatusBadRequest, Message: msg}
}

func Forbidden(msg string) error {
	return &ResponseError{Status: http.StatusForbidden, Message: msg}
}

func Unauthorized(msg string) error {
	return &ResponseError{Status: http.StatusUnauthorized, Message: msg}
}

func Unavailable(msg string) error {
	return &ResponseError{Status: http.StatusServiceUnavailable, Message: msg}
}

// StatusOf returns the status carried by err, or 0 when err is not a ResponseError.
func StatusOf(err error) int {
	var re *ResponseError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}

// isUniqueViolation covers both the translated gorm error and a raw postgres 23505.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// notFoundOr maps gorm.ErrRecordNotFound to NotFound(msg) and wraps anything else.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound(msg)
	}
	return err
}
