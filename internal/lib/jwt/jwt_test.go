package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestManagerRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)
	identity := Identity{UserID: uuid.New(), Name: "alice"}

	token, err := m.Issue(identity)
	require.NoError(t, err)

	parsed, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, identity.UserID, parsed.UserID)
	require.Equal(t, "alice", parsed.Name)
}

func TestManagerExpiredToken(t *testing.T) {
	m := NewManager("secret", -time.Minute)

	token, err := m.Issue(Identity{UserID: uuid.New(), Name: "alice"})
	require.NoError(t, err)

	_, err = m.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestManagerWrongSecret(t *testing.T) {
	token, err := NewManager("secret", time.Hour).Issue(Identity{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour).Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestManagerGarbageToken(t *testing.T) {
	m := NewManager("secret", time.Hour)

	_, err := m.Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("")
	require.ErrorIs(t, err, ErrInvalidToken)
}
