// Package repository implements data access over database/sql. This file
// defines the sentinel errors shared by the repositories so that higher
// layers can distinguish failure scenarios with errors.Is and translate
// them into HTTP responses.
package repository

import "errors"

// Not-found failures. Handlers translate these into HTTP 404.
var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrMovieNotFound    = errors.New("movie not found")
	ErrRoleNotFound     = errors.New("role not found")
)

// Uniqueness violations. Handlers translate these into HTTP 409.
var (
	ErrEmailExists     = errors.New("email already taken")
	ErrPhoneExists     = errors.New("phone number already taken")
	ErrMovieNameExists = errors.New("movie name already taken")
	ErrRoleExists      = errors.New("role already exists")
)

// Entitlement failures. Subscribe/unsubscribe reject repeated invocations
// instead of treating them as no-ops; both map to HTTP 409.
var (
	ErrAlreadySubscribed = errors.New("customer already subscribed to movie")
	ErrNotSubscribed     = errors.New("customer not subscribed to movie")
)

// ErrRoleAssigned is returned when deleting a role that is still assigned
// to at least one customer. Handlers translate this into HTTP 409.
var ErrRoleAssigned = errors.New("role still assigned to customers")
