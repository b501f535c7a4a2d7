package identity

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups when no matching row exists.
var ErrNotFound = errors.New("not found")

type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	CreateProfile(ctx context.Context, p *Profile) error
	CreatePatient(ctx context.Context, userID int64) (*Patient, error)
	CreateProfessional(ctx context.Context, userID int64) (*Professional, error)
	// UserByEmail and UserByID load the user with its profile attached,
	// or ErrNotFound.
	UserByEmail(ctx context.Context, email string) (*User, error)
	UserByID(ctx context.Context, id int64) (*User, error)
}
