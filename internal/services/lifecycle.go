package services

import (
	"errors"
	"time"

	"github.com/MasiCal354/quizar/internal/apperr"

	"gorm.io/gorm"
)

// remainingAfter implements the clock-stop bookkeeping shared by submissions
// and attempts: deduct the time elapsed since the entity's last state change.
// Untimed entities (nil remaining) stay untimed. Going negative is allowed;
// expiry is not enforced at this layer.
func remainingAfter(remaining *time.Duration, lastUpdated, now time.Time) *time.Duration {
	if remaining == nil {
		return nil
	}
	left := *remaining - now.Sub(lastUpdated)
	return &left
}

// duplicateAsConstraint converts a unique-index violation into the documented
// constraint error. The pre-insert count checks race with concurrent inserts;
// the composite index is the backstop and its failure must not surface as an
// internal error.
func duplicateAsConstraint(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ConstraintViolation(format, args...)
	}
	return err
}

// normalizePage clamps offset/limit pagination parameters to sane values.
func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = 100
	}
	return skip, limit
}
