package repositories

import (
	"fmt"
	"strings"

	"blogapi/internal/apperr"
)

// storeErr classifies a GORM write failure. Uniqueness and foreign-key
// violations come back from the drivers as plain errors, so the constraint
// text is the only signal available (sqlite and postgres spellings differ).
func storeErr(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	s := err.Error()
	switch {
	case strings.Contains(s, "UNIQUE constraint failed"),
		strings.Contains(s, "duplicate key value"):
		return apperr.Conflict(err, "%s", msg)
	case strings.Contains(s, "FOREIGN KEY constraint failed"),
		strings.Contains(s, "violates foreign key constraint"):
		return apperr.Conflict(err, "%s", msg)
	default:
		return apperr.Store(err, "%s", msg)
	}
}
