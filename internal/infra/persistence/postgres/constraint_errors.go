package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// isUniqueConstraintViolation reports whether err is a PostgreSQL duplicate
// key failure. Alias columns rely on this to surface collisions as domain
// errors instead of raw driver errors.
func isUniqueConstraintViolation(err error) bool {
	// Check for GORM's duplicate key error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// Fall back to message matching when the driver does not translate the error.
	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "23505") // PostgreSQL unique_violation error code
}
