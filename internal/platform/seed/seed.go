// Package seed inserts a fixed set of demonstration rows the first time the
// server boots against an empty store, so the frontend has something to
// render. The bootstrap is idempotent: a store with any user is left alone.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Beggas2/Alento/internal/platform/auth"
	"github.com/Beggas2/Alento/internal/platform/db"
)

// Run seeds the store if it is empty. It reports whether anything was
// inserted. All rows commit in one transaction.
func Run(ctx context.Context, pool *pgxpool.Pool, hasher *auth.Hasher) (bool, error) {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := hasher.Hash("password")
	if err != nil {
		return false, fmt.Errorf("hash seed password: %w", err)
	}

	err = db.WithTx(ctx, pool, func(ctx context.Context) error {
		tx := db.TxFromContext(ctx)

		profUserID, err := insertUser(ctx, tx, "dra.ana@example.com", hash, "Dra. Ana Silva", "profissional")
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO profiles (user_id, especialidade, crp_crm, codigo, is_medico)
			VALUES ($1, 'psiquiatria', '12345', 'PROF-ANA', TRUE)`, profUserID); err != nil {
			return err
		}
		var professionalID int64
		if err := tx.QueryRow(ctx,
			`INSERT INTO professionals (user_id) VALUES ($1) RETURNING id`, profUserID).Scan(&professionalID); err != nil {
			return err
		}

		patientUserID, err := insertUser(ctx, tx, "joao@example.com", hash, "João Santos", "paciente")
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO profiles (user_id, codigo) VALUES ($1, 'PAC-JS')`, patientUserID); err != nil {
			return err
		}
		var patientID int64
		if err := tx.QueryRow(ctx,
			`INSERT INTO patients (user_id) VALUES ($1) RETURNING id`, patientUserID).Scan(&patientID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO patient_professionals (patient_id, professional_id, status)
			VALUES ($1, $2, 'active')`, patientID, professionalID); err != nil {
			return err
		}

		// Within one transaction NOW() is the transaction timestamp, so
		// created_at defaults would collide and leave newest-first queries
		// with no defined order. Hand out explicit increasing stamps instead.
		ts := newStamps(time.Now().UTC())

		// Three daily records: today, yesterday, two days ago, with moods
		// 7, 6, 5.
		today := time.Now().UTC().Truncate(24 * time.Hour)
		recordIDs := make([]int64, 3)
		for i := 0; i < 3; i++ {
			if err := tx.QueryRow(ctx, `
				INSERT INTO daily_records (patient_id, data, mood, sleep, energy, created_at)
				VALUES ($1, $2, $3, 7, 6, $4)
				RETURNING id`,
				patientID, today.AddDate(0, 0, -i), 7-i%3, ts.next()).Scan(&recordIDs[i]); err != nil {
				return err
			}
		}

		// Alerts on the two newest records, high then medium; the later
		// stamp makes the medium alert the newest.
		for i, severity := range []string{"high", "medium"} {
			if _, err := tx.Exec(ctx, `
				INSERT INTO clinical_alerts (record_id, profissional_id, severity, created_at)
				VALUES ($1, $2, $3, $4)`, recordIDs[i], professionalID, severity, ts.next()); err != nil {
				return err
			}
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO link_requests (patient_id, professional_id, status, created_at)
			VALUES ($1, $2, 'pending', $3)`, patientID, professionalID, ts.next())
		return err
	})
	if err != nil {
		return false, fmt.Errorf("seed database: %w", err)
	}
	return true, nil
}

// stamps hands out strictly increasing timestamps so that rows inserted in
// one transaction keep their insertion order under ORDER BY created_at DESC.
type stamps struct{ t time.Time }

func newStamps(base time.Time) *stamps { return &stamps{t: base} }

func (s *stamps) next() time.Time {
	s.t = s.t.Add(time.Millisecond)
	return s.t
}

func insertUser(ctx context.Context, tx pgx.Tx, email, hash, nome, role string) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO users (email, hashed_password, nome, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, email, hash, nome, role).Scan(&id)
	return id, err
}
