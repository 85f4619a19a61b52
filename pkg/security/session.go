package security

import (
	"errors"
	"fmt"
	"time"

	"clippie/media-api/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long an issued session stays valid
const DefaultSessionTTL = 24 * time.Hour

var ErrSessionInvalid = errors.New("session token invalid or expired")

// Sessions issues and resolves signed session tokens. Both directions
// are pure functions of the token and the signing secret, no state is
// kept anywhere
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessions(secret string) *Sessions {
	return &Sessions{
		secret: []byte(secret),
		ttl:    DefaultSessionTTL,
		now:    time.Now,
	}
}

// SetNow replaces the clock. Only meant for tests
func (s *Sessions) SetNow(now func() time.Time) { s.now = now }

// Issue encodes the identity into a signed HS256 token valid for the
// session TTL
func (s *Sessions) Issue(id model.Identity) (string, error) {
	now := s.now()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  id.ID,
		"email":    id.Email,
		"username": id.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.ttl).Unix(),
	})

	return t.SignedString(s.secret)
}

// Resolve validates signature and expiry and returns the embedded
// identity. Anything off returns ErrSessionInvalid, callers treat that
// as anonymous
func (s *Sessions) Resolve(token string) (*model.Identity, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, ErrSessionInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrSessionInvalid
	}

	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return nil, ErrSessionInvalid
	}

	email, _ := claims["email"].(string)
	username, _ := claims["username"].(string)

	return &model.Identity{
		ID:       id,
		Email:    email,
		Username: username,
	}, nil
}
