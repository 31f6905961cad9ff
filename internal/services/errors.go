package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Service error taxonomy. Handlers translate these into HTTP statuses;
// anything else is treated as a server fault.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUpstream        = errors.New("upstream failure")
)

// isDuplicateKey reports whether err is a uniqueness-constraint violation.
// Covers gorm's translated error plus the raw MySQL and SQLite messages.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}
