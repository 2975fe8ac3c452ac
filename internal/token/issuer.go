package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/devjh/commboard/internal/domain"
)

// Payload is the identity carried inside every token.
type Payload struct {
	UserID uint
	Email  string
	Role   string
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies bearer tokens. The secret is explicit
// construction state, never a package global.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (i *Issuer) IssueAccess(p Payload) (string, error) {
	signed, _, err := i.Issue(p, i.accessTTL)
	return signed, err
}

// IssueRefresh also returns the expiry embedded in the token, so the
// stored refresh_token row and the signed claim share a single source
// of truth.
func (i *Issuer) IssueRefresh(p Payload) (string, time.Time, error) {
	return i.Issue(p, i.refreshTTL)
}

// Issue encodes the payload with an expiry of now+ttl and signs it.
// The jti claim makes tokens minted within the same second distinct
// strings, which the refresh_token table's unique index relies on.
func (i *Issuer) Issue(p Payload, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		UserID: p.UserID,
		Email:  p.Email,
		Role:   p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify decodes a token string. Bad signature, wrong algorithm,
// malformed input and expiry all surface as domain.ErrTokenInvalid.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	return claims, nil
}
