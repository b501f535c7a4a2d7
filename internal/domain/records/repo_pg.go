package records

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Beggas2/Alento/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) PatientIDByUser(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT id FROM patients WHERE user_id = $1`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return id, nil
}

func (r *repoPG) Insert(ctx context.Context, rec *DailyRecord) error {
	var day time.Time
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO daily_records (patient_id, data, mood, sleep, energy, medication_adherence)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, data, created_at`,
		rec.PatientID, rec.Data.Time, rec.Mood, rec.Sleep, rec.Energy, rec.MedicationAdherence).
		Scan(&rec.ID, &day, &rec.CreatedAt)
	if err != nil {
		return err
	}
	rec.Data = Date{day}
	return nil
}
