package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Beggas2/Alento/internal/platform/auth"
)

var (
	// ErrEmailTaken means signup was attempted with an already registered
	// email address.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// indistinguishably, so login leaks nothing about account existence.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized means a bearer token failed to resolve to a user.
	ErrUnauthorized = errors.New("could not validate credentials")
)

// TxRunner runs fn atomically. Production wires db.WithTx; tests pass nil
// to run fn directly.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type Service struct {
	repo   Repository
	hasher *auth.Hasher
	tokens *auth.TokenIssuer
	tx     TxRunner
}

func NewService(repo Repository, hasher *auth.Hasher, tokens *auth.TokenIssuer, tx TxRunner) *Service {
	if tx == nil {
		tx = func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}
	}
	return &Service{repo: repo, hasher: hasher, tokens: tokens, tx: tx}
}

// Signup registers a new account: user, profile, and a patient row for the
// patient role or a professional row for any other role string, all created
// in one transaction. The duplicate
// check here is racy on purpose; the UNIQUE constraint on users.email is
// the storage-layer backstop.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (string, *User, error) {
	if _, err := s.repo.UserByEmail(ctx, req.Email); err == nil {
		return "", nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return "", nil, err
	}

	role := req.Role
	if role == "" {
		role = RolePatient
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Email:          req.Email,
		HashedPassword: hash,
		Nome:           req.Nome,
		Role:           role,
	}
	code := generatedCode(role, time.Now())
	profile := &Profile{
		Especialidade: req.Especialidade,
		CrpCrm:        req.CrpCrm,
		Codigo:        &code,
		IsMedico:      role == RoleProfessional,
	}

	err = s.tx(ctx, func(ctx context.Context) error {
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return err
		}
		profile.UserID = user.ID
		if err := s.repo.CreateProfile(ctx, profile); err != nil {
			return err
		}
		if role == RolePatient {
			_, err := s.repo.CreatePatient(ctx, user.ID)
			return err
		}
		_, err := s.repo.CreateProfessional(ctx, user.ID)
		return err
	})
	if err != nil {
		return "", nil, err
	}
	user.Profile = profile

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Login verifies the credentials and returns a fresh token plus the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !s.hasher.Verify(password, user.HashedPassword) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// CurrentUser loads the account a verified token subject refers to.
func (s *Service) CurrentUser(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// ResolveToken verifies a bearer token end to end: signature, expiry,
// subject claim, and that the subject still exists.
func (s *Service) ResolveToken(ctx context.Context, token string) (*User, error) {
	id, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return s.CurrentUser(ctx, id)
}

// SubjectExists implements auth.SubjectChecker for the bearer middleware.
func (s *Service) SubjectExists(ctx context.Context, id int64) (bool, error) {
	_, err := s.repo.UserByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// generatedCode builds the synthetic profile code assigned at signup,
// e.g. AUTO-PRO-1735689600.
func generatedCode(role string, now time.Time) string {
	prefix := role
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("AUTO-%s-%d", strings.ToUpper(prefix), now.Unix())
}
