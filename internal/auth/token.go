package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"

	"jobboard-engine/internal/domain"
)

var ErrUnauthorized = errors.New("unauthorized")

type Claims struct {
	ID   string      `json:"id"`
	Role domain.Role `json:"role"`
	jwt.StandardClaims
}

// Tokens issues and verifies HS256 bearer tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) (*Tokens, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwt secret must be at least 16 bytes")
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (t *Tokens) Issue(u domain.User) (string, error) {
	now := t.now()
	claims := &Claims{
		ID:   u.ID,
		Role: u.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(t.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}

// Verify parses raw and returns the caller it identifies. Any failure is ErrUnauthorized.
func (t *Tokens) Verify(raw string) (domain.Caller, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !tkn.Valid {
		return domain.Caller{}, ErrUnauthorized
	}
	if claims.ID == "" || !claims.Role.Valid() {
		return domain.Caller{}, ErrUnauthorized
	}
	return domain.Caller{ID: claims.ID, Role: claims.Role}, nil
}
