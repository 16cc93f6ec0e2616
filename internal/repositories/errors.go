package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrPostNotFound is returned when no post matches the lookup
	ErrPostNotFound = errors.New("post not found")

	// ErrDuplicateTitle is returned when the unique index on title rejects a write
	ErrDuplicateTitle = errors.New("post title already exists")
)

// isDuplicateKey reports whether err is a unique constraint violation.
// Drivers without an error translator are matched on their message.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
