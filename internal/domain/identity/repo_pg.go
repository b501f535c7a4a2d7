package identity

import (
	"context"
	"errors"

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

func (r *repoPG) CreateUser(ctx context.Context, u *User) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO users (email, hashed_password, nome, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		u.Email, u.HashedPassword, u.Nome, u.Role).Scan(&u.ID, &u.CreatedAt)
}

func (r *repoPG) CreateProfile(ctx context.Context, p *Profile) error {
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO profiles (user_id, telefone, especialidade, crp_crm, codigo, is_medico)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		p.UserID, p.Telefone, p.Especialidade, p.CrpCrm, p.Codigo, p.IsMedico).Scan(&p.ID)
}

func (r *repoPG) CreatePatient(ctx context.Context, userID int64) (*Patient, error) {
	p := &Patient{UserID: userID}
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patients (user_id) VALUES ($1)
		RETURNING id, created_at`, userID).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repoPG) CreateProfessional(ctx context.Context, userID int64) (*Professional, error) {
	p := &Professional{UserID: userID}
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO professionals (user_id) VALUES ($1)
		RETURNING id, created_at`, userID).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

const userWithProfileCols = `u.id, u.email, u.hashed_password, u.nome, u.role, u.created_at,
	p.id, p.user_id, p.telefone, p.especialidade, p.crp_crm, p.codigo, p.is_medico`

func scanUserWithProfile(row pgx.Row) (*User, error) {
	var u User
	var profileID, profileUserID *int64
	var telefone, especialidade, crpCrm, codigo *string
	var isMedico *bool
	err := row.Scan(&u.ID, &u.Email, &u.HashedPassword, &u.Nome, &u.Role, &u.CreatedAt,
		&profileID, &profileUserID, &telefone, &especialidade, &crpCrm, &codigo, &isMedico)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if profileID != nil {
		u.Profile = &Profile{
			ID:            *profileID,
			UserID:        *profileUserID,
			Telefone:      telefone,
			Especialidade: especialidade,
			CrpCrm:        crpCrm,
			Codigo:        codigo,
		}
		if isMedico != nil {
			u.Profile.IsMedico = *isMedico
		}
	}
	return &u, nil
}

func (r *repoPG) UserByEmail(ctx context.Context, email string) (*User, error) {
	return scanUserWithProfile(r.conn(ctx).QueryRow(ctx, `
		SELECT `+userWithProfileCols+`
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.email = $1`, email))
}

func (r *repoPG) UserByID(ctx context.Context, id int64) (*User, error) {
	return scanUserWithProfile(r.conn(ctx).QueryRow(ctx, `
		SELECT `+userWithProfileCols+`
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE u.id = $1`, id))
}
