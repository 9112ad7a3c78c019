package utils

import (
	"errors"
	"strconv"
	"strings"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// Password policy violations. Both are client-caused and map to HTTP 400.
var (
	ErrPasswordTooShort     = errors.New("password must be at least 8 characters long")
	ErrPasswordPersonalInfo = errors.New("password must not contain name, email or phone number")
)

// ValidatePassword checks a candidate password against the complexity rule
// and against leakage of the customer's own data. Rules apply in order: the
// password must reach the minimum length, and it must not contain the name,
// the email, or the decimal form of the phone number as a substring. The
// substring checks are case-sensitive and not normalized.
func ValidatePassword(password, name, email string, phone int64) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	for _, part := range []string{name, email, strconv.FormatInt(phone, 10)} {
		if part != "" && strings.Contains(password, part) {
			return ErrPasswordPersonalInfo
		}
	}
	return nil
}
