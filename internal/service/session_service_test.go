package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quillhub/internal/config"
	"quillhub/internal/models"
)

var sessionCfg = config.Session{
	Duration:    30 * 24 * time.Hour,
	RenewWindow: 15 * 24 * time.Hour,
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newSessionFixture(t *testing.T) (*fakeStore, *clock, SessionService) {
	t.Helper()
	store := newFakeStore()
	store.users[1] = &models.User{UserID: 1, Email: "w@example.com"}
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	return store, c, NewSessionService(fakeSessions{store}, sessionCfg, WithClock(c.now))
}

func TestSessionService_GenerateToken(t *testing.T) {
	_, _, svc := newSessionFixture(t)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := svc.GenerateToken()
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^[a-z2-7]{32}$`), token)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}

func TestSessionService_CreateStoresHashOnly(t *testing.T) {
	store, c, svc := newSessionFixture(t)

	session, err := svc.Create(context.Background(), "token", 1)
	require.NoError(t, err)

	assert.Equal(t, HashToken("token"), session.ID)
	assert.Equal(t, c.t.Add(sessionCfg.Duration), session.ExpiresAt)
	assert.NotContains(t, store.sessions, "token")
	assert.Contains(t, store.sessions, HashToken("token"))
}

func TestSessionService_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown token", func(t *testing.T) {
		_, _, svc := newSessionFixture(t)

		session, user, err := svc.Validate(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, session)
		assert.Nil(t, user)
	})

	t.Run("fresh session is not extended", func(t *testing.T) {
		store, c, svc := newSessionFixture(t)
		_, err := svc.Create(ctx, "tok", 1)
		require.NoError(t, err)

		c.t = c.t.Add(10 * 24 * time.Hour)
		session, user, err := svc.Validate(ctx, "tok")
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, int64(1), user.UserID)
		assert.Zero(t, store.updates)
	})

	t.Run("renewal window extends expiry", func(t *testing.T) {
		store, c, svc := newSessionFixture(t)
		_, err := svc.Create(ctx, "tok", 1)
		require.NoError(t, err)

		c.t = c.t.Add(16 * 24 * time.Hour)
		session, _, err := svc.Validate(ctx, "tok")
		require.NoError(t, err)

		want := c.t.Add(sessionCfg.Duration)
		assert.Equal(t, want, session.ExpiresAt)
		assert.Equal(t, want, store.sessions[HashToken("tok")].ExpiresAt)
		assert.Equal(t, 1, store.updates)
	})

	t.Run("expired session is deleted", func(t *testing.T) {
		store, c, svc := newSessionFixture(t)
		_, err := svc.Create(ctx, "tok", 1)
		require.NoError(t, err)

		c.t = c.t.Add(sessionCfg.Duration)
		session, user, err := svc.Validate(ctx, "tok")
		require.NoError(t, err)
		assert.Nil(t, session)
		assert.Nil(t, user)
		assert.Empty(t, store.sessions)
	})

	t.Run("storage error propagates", func(t *testing.T) {
		store, _, svc := newSessionFixture(t)
		store.failErr = errors.New("db down")

		_, _, err := svc.Validate(ctx, "tok")
		assert.EqualError(t, err, "db down")
	})
}

func TestSessionService_Invalidate(t *testing.T) {
	ctx := context.Background()
	store, _, svc := newSessionFixture(t)

	_, err := svc.Create(ctx, "a", 1)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "b", 1)
	require.NoError(t, err)

	require.NoError(t, svc.Invalidate(ctx, "a"))
	require.NoError(t, svc.Invalidate(ctx, "a"))
	assert.Len(t, store.sessions, 1)

	require.NoError(t, svc.InvalidateAllForUser(ctx, 1))
	assert.Empty(t, store.sessions)
}
