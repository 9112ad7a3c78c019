// Package handler contains the Echo HTTP handlers and the translation of
// service/repository failures into structured error responses.
package handler

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"net/http"

	"github.com/nd199/movie-booking/internal/repository"
	"github.com/nd199/movie-booking/internal/service"
	"github.com/nd199/movie-booking/internal/utils"
)

// APIError is the structured error body returned for every failed request:
// the request path, a human-readable message, the numeric status and a
// timestamp.
type APIError struct {
	Path       string    `json:"path"`
	Message    string    `json:"message"`
	StatusCode int       `json:"statusCode"`
	Timestamp  time.Time `json:"timestamp"`
}

// Fail writes an APIError with the given status and message.
func Fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, APIError{
		Path:       c.Request().URL.Path,
		Message:    msg,
		StatusCode: status,
		Timestamp:  time.Now().UTC(),
	})
}

// writeErr maps a typed failure to its HTTP status. Unrecognized errors
// become an opaque 500 so internal state never leaks to the caller.
func writeErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrCustomerNotFound),
		errors.Is(err, repository.ErrMovieNotFound),
		errors.Is(err, repository.ErrRoleNotFound):
		return Fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrPhoneExists),
		errors.Is(err, repository.ErrMovieNameExists),
		errors.Is(err, repository.ErrRoleExists),
		errors.Is(err, repository.ErrAlreadySubscribed),
		errors.Is(err, repository.ErrNotSubscribed),
		errors.Is(err, repository.ErrRoleAssigned):
		return Fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, utils.ErrPasswordTooShort),
		errors.Is(err, utils.ErrPasswordPersonalInfo),
		errors.Is(err, service.ErrNoChanges),
		errors.Is(err, service.ErrUnknownRole),
		errors.Is(err, service.ErrRoleNameRequired):
		return Fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidLogin):
		return Fail(c, http.StatusUnauthorized, err.Error())
	}
	return Fail(c, http.StatusInternalServerError, "internal server error")
}
