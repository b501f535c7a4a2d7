package identity

import (
	"time"
)

// Role values are kept exactly as the frontend sends them.
const (
	RolePatient      = "paciente"
	RoleProfessional = "profissional"
)

// User maps to the users table. The bcrypt hash never leaves the server.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	Nome           string    `db:"nome" json:"nome"`
	Role           string    `db:"role" json:"role"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	Profile        *Profile  `json:"profile"`
}

// Profile maps to the profiles table. Exactly one per user; all clinical
// credential fields are optional.
type Profile struct {
	ID            int64   `db:"id" json:"id"`
	UserID        int64   `db:"user_id" json:"-"`
	Telefone      *string `db:"telefone" json:"telefone"`
	Especialidade *string `db:"especialidade" json:"especialidade"`
	CrpCrm        *string `db:"crp_crm" json:"crp_crm"`
	Codigo        *string `db:"codigo" json:"codigo"`
	IsMedico      bool    `db:"is_medico" json:"is_medico"`
}

// Patient maps to the patients table: the role-specific wrapper that anchors
// daily records and care links.
type Patient struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Professional maps to the professionals table.
type Professional struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SignupRequest is the JSON body of POST /auth/signup.
type SignupRequest struct {
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Nome          string  `json:"nome"`
	Role          string  `json:"role"`
	Especialidade *string `json:"especialidade"`
	CrpCrm        *string `json:"crp_crm"`
}

// AuthResponse is returned by both signup and login.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}
