package records

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type Repository interface {
	// PatientIDByUser resolves the caller's patient row, or ErrNotFound
	// when the user has no patient sub-record.
	PatientIDByUser(ctx context.Context, userID int64) (int64, error)
	Insert(ctx context.Context, rec *DailyRecord) error
}
