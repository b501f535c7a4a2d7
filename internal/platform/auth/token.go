package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every way a bearer token can fail verification:
// bad signature, expiry, missing subject, malformed subject.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenIssuer mints and verifies the access tokens this server hands out.
// Tokens carry exactly two claims: sub (stringified user id) and exp.
type TokenIssuer struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
}

// NewTokenIssuer builds an issuer for the configured HMAC algorithm. The
// algorithm name must be one of HS256, HS384, HS512 (config validates this
// before the server starts, but the constructor double-checks).
func NewTokenIssuer(secret, algorithm string, ttl time.Duration) (*TokenIssuer, error) {
	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &TokenIssuer{secret: []byte(secret), method: method, ttl: ttl}, nil
}

// Issue signs a token for the given subject with the default TTL.
func (t *TokenIssuer) Issue(subjectID int64) (string, error) {
	return t.IssueWithTTL(subjectID, t.ttl)
}

// IssueWithTTL signs a token for the given subject expiring after ttl.
func (t *TokenIssuer) IssueWithTTL(subjectID int64, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(subjectID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	return jwt.NewWithClaims(t.method, claims).SignedString(t.secret)
}

// Parse verifies signature and expiry and returns the subject user id.
// Any failure, including a missing or non-numeric sub claim, comes back
// as ErrInvalidToken so callers cannot leak why verification failed.
func (t *TokenIssuer) Parse(tokenStr string) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{t.method.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return 0, ErrInvalidToken
	}

	if claims.Subject == "" {
		return 0, ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}
