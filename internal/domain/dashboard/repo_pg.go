package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Beggas2/Alento/internal/domain/identity"
	"github.com/Beggas2/Alento/internal/domain/records"
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

func (r *repoPG) CountPatients(ctx context.Context) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patients`).Scan(&n)
	return n, err
}

func (r *repoPG) CountActiveLinks(ctx context.Context) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM patient_professionals WHERE status = 'active'`).Scan(&n)
	return n, err
}

func (r *repoPG) CountRecordsOn(ctx context.Context, day time.Time) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM daily_records WHERE data = $1::date`, day).Scan(&n)
	return n, err
}

func (r *repoPG) RecentAlerts(ctx context.Context, limit int) ([]ClinicalAlert, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, record_id, severity, created_at
		FROM clinical_alerts
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	alerts := []ClinicalAlert{}
	for rows.Next() {
		var a ClinicalAlert
		if err := rows.Scan(&a.ID, &a.RecordID, &a.Severity, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *repoPG) RecentPatientUsers(ctx context.Context, limit int) ([]*identity.User, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT u.id, u.email, u.nome, u.role, u.created_at,
			p.id, p.telefone, p.especialidade, p.crp_crm, p.codigo, p.is_medico
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.role = 'paciente'
		ORDER BY u.created_at DESC, u.id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*identity.User{}
	for rows.Next() {
		var u identity.User
		var profileID *int64
		var telefone, especialidade, crpCrm, codigo *string
		var isMedico *bool
		if err := rows.Scan(&u.ID, &u.Email, &u.Nome, &u.Role, &u.CreatedAt,
			&profileID, &telefone, &especialidade, &crpCrm, &codigo, &isMedico); err != nil {
			return nil, err
		}
		if profileID != nil {
			u.Profile = &identity.Profile{
				ID:            *profileID,
				UserID:        u.ID,
				Telefone:      telefone,
				Especialidade: especialidade,
				CrpCrm:        crpCrm,
				Codigo:        codigo,
			}
			if isMedico != nil {
				u.Profile.IsMedico = *isMedico
			}
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *repoPG) ProfessionalLinks(ctx context.Context) ([]ProfessionalInfo, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT pr.id, u.nome, p.especialidade, p.codigo, COALESCE(p.is_medico, FALSE)
		FROM patient_professionals pp
		JOIN professionals pr ON pr.id = pp.professional_id
		JOIN users u ON u.id = pr.user_id
		LEFT JOIN profiles p ON p.user_id = u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Empty lists serialize as [] rather than null.
	infos := []ProfessionalInfo{}
	for rows.Next() {
		var info ProfessionalInfo
		if err := rows.Scan(&info.ID, &info.Nome, &info.Especialidade, &info.Codigo, &info.IsMedico); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (r *repoPG) RecentRecords(ctx context.Context, limit int) ([]*records.DailyRecord, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, data, mood, sleep, energy, medication_adherence, created_at
		FROM daily_records
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []*records.DailyRecord{}
	for rows.Next() {
		var rec records.DailyRecord
		var day time.Time
		if err := rows.Scan(&rec.ID, &rec.PatientID, &day, &rec.Mood, &rec.Sleep,
			&rec.Energy, &rec.MedicationAdherence, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Data = records.Date{Time: day}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}

func (r *repoPG) RecentLinkRequests(ctx context.Context, limit int) ([]LinkRequest, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, professional_id, status, created_at
		FROM link_requests
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs := []LinkRequest{}
	for rows.Next() {
		var lr LinkRequest
		if err := rows.Scan(&lr.ID, &lr.PatientID, &lr.ProfessionalID, &lr.Status, &lr.CreatedAt); err != nil {
			return nil, err
		}
		reqs = append(reqs, lr)
	}
	return reqs, rows.Err()
}
