// Package jwt issues and verifies the signed bearer tokens used by both the
// REST API and the realtime handshake.
package jwt

import (
	"errors"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is what a verified token binds a session to.
type Identity struct {
	UserID uuid.UUID
	Name   string
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the user id and display name.
func (m *Manager) Issue(identity Identity) (string, error) {
	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.MapClaims{
		"sub":  identity.UserID.String(),
		"name": identity.Name,
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	})
	return token.SignedString(m.secret)
}

// Parse verifies signature and expiry and returns the bound identity. Any
// failure maps to ErrInvalidToken; callers do not distinguish malformed
// from expired beyond logging.
func (m *Manager) Parse(raw string) (*Identity, error) {
	token, err := jwtgo.Parse(raw, func(t *jwtgo.Token) (any, error) {
		if _, ok := t.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwtgo.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidToken
	}

	name, _ := claims["name"].(string)

	return &Identity{UserID: userID, Name: name}, nil
}
