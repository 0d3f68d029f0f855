package delivery

import (
	"errors"
	"fmt"

	"github.com/polkiloo/marketpanel/internal/domain/model"
)

var (
	ErrHistoryOrder     = errors.New("status history is not in chronological order")
	ErrHistoryTruncated = errors.New("status history lost entries")
	ErrHistoryRewritten = errors.New("status history entry was rewritten")
	ErrHistoryNoAppend  = errors.New("status history did not grow by exactly one entry")
	ErrHistoryMismatch  = errors.New("appended status does not match the requested one")
)

// ValidateHistory checks that timestamps never decrease.
func ValidateHistory(history []model.StatusEntry) error {
	for i := 1; i < len(history); i++ {
		if history[i].UpdatedAt.Before(history[i-1].UpdatedAt) {
			return fmt.Errorf("%w: entry %d precedes entry %d", ErrHistoryOrder, i, i-1)
		}
	}
	return nil
}

// CheckAppendOnly verifies next keeps every entry of prev in place.
func CheckAppendOnly(prev, next []model.StatusEntry) error {
	if len(next) < len(prev) {
		return fmt.Errorf("%w: had %d, now %d", ErrHistoryTruncated, len(prev), len(next))
	}
	for i := range prev {
		if !sameEntry(prev[i], next[i]) {
			return fmt.Errorf("%w: index %d", ErrHistoryRewritten, i)
		}
	}
	return nil
}

// VerifyAppend verifies next is prev plus exactly one entry carrying status.
func VerifyAppend(prev, next []model.StatusEntry, status model.CourierStatus) error {
	if err := CheckAppendOnly(prev, next); err != nil {
		return err
	}
	if len(next) != len(prev)+1 {
		return fmt.Errorf("%w: had %d, now %d", ErrHistoryNoAppend, len(prev), len(next))
	}
	if last := next[len(next)-1]; last.Status != status {
		return fmt.Errorf("%w: want %s, got %s", ErrHistoryMismatch, status, last.Status)
	}
	return ValidateHistory(next)
}

func sameEntry(a, b model.StatusEntry) bool {
	return a.Status == b.Status &&
		a.UpdatedBy == b.UpdatedBy &&
		a.UpdatedAt.Equal(b.UpdatedAt)
}
