package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements are idempotent so EnsureSchema can run on every boot.
// Statement order respects foreign-key dependencies.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		nome TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'paciente',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		telefone TEXT,
		especialidade TEXT,
		crp_crm TEXT,
		codigo TEXT,
		is_medico BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS patients (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS professionals (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS patient_professionals (
		id BIGSERIAL PRIMARY KEY,
		patient_id BIGINT REFERENCES patients(id),
		professional_id BIGINT REFERENCES professionals(id),
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS daily_records (
		id BIGSERIAL PRIMARY KEY,
		patient_id BIGINT REFERENCES patients(id),
		data DATE NOT NULL,
		mood INTEGER NOT NULL DEFAULT 5,
		sleep INTEGER NOT NULL DEFAULT 7,
		energy INTEGER NOT NULL DEFAULT 6,
		medication_adherence INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS clinical_alerts (
		id BIGSERIAL PRIMARY KEY,
		record_id BIGINT REFERENCES daily_records(id),
		profissional_id BIGINT REFERENCES professionals(id),
		severity TEXT NOT NULL DEFAULT 'medium',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS link_requests (
		id BIGSERIAL PRIMARY KEY,
		patient_id BIGINT REFERENCES patients(id),
		professional_id BIGINT REFERENCES professionals(id),
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_records_patient ON daily_records(patient_id)`,
	`CREATE INDEX IF NOT EXISTS idx_daily_records_data ON daily_records(data)`,
}

// EnsureSchema creates every table the application needs if it does not
// already exist. The UNIQUE constraint on users.email doubles as the
// storage-layer backstop for concurrent signups with the same address.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
