package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/logging"
	"github.com/dmitrijs2005/pokedex/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var misty = &models.User{ID: "u-misty", Email: "misty@cerulean.city", Nickname: "misty", Name: "Misty"}

func TestSession_RoundTrip(t *testing.T) {
	eachBackend(t, func(t *testing.T, e *env) {
		ctx := context.Background()

		none, err := e.session.Current(ctx)
		require.NoError(t, err)
		assert.Nil(t, none)

		_, err = e.session.Login(ctx, misty)
		require.NoError(t, err)

		got, err := e.session.Current(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "u-misty", got.UserID)
		assert.Equal(t, "misty", got.Nickname)
		assert.Nil(t, got.ExpiresAt)

		require.NoError(t, e.session.Logout(ctx))
		got, err = e.session.Current(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestSession_SurvivesRestart(t *testing.T) {
	for _, backend := range []string{"sqlite", "kv"} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, backend)

			first := newEnv(t, cfg)
			u, err := first.auth.Register(ctx, ashRequest())
			require.NoError(t, err)
			require.NoError(t, first.store.Close())

			second := newEnv(t, cfg)
			cur, err := second.auth.CurrentUser(ctx)
			require.NoError(t, err)
			require.NotNil(t, cur)
			assert.Equal(t, u.ID, cur.ID)
		})
	}
}

func TestSession_CorruptValueIsDiscarded(t *testing.T) {
	eachBackend(t, func(t *testing.T, e *env) {
		ctx := context.Background()
		require.NoError(t, e.store.Metadata().Set(ctx, common.KeyCurrentUser, []byte(`{"id":"legacy"}`)))

		got, err := e.session.Current(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)

		raw, err := e.store.Metadata().Get(ctx, common.KeyCurrentUser)
		require.NoError(t, err)
		assert.Nil(t, raw)
	})
}

func TestSession_WrongSecretIsDiscarded(t *testing.T) {
	e := newEnv(t, testConfig(t, "kv"))
	ctx := context.Background()

	other := NewSessionService(e.store.Metadata(), []byte("another-secret"), 0, logging.Nop())
	_, err := other.Login(ctx, misty)
	require.NoError(t, err)

	got, err := e.session.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSession_Expiry(t *testing.T) {
	e := newEnv(t, testConfig(t, "sqlite"))
	ctx := context.Background()

	s := NewSessionService(e.store.Metadata(), []byte("k"), time.Hour, logging.Nop()).(*sessionService)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	sess, err := s.Login(ctx, misty)
	require.NoError(t, err)
	require.NotNil(t, sess.ExpiresAt)
	assert.True(t, sess.ExpiresAt.Equal(base.Add(time.Hour)))

	s.now = func() time.Time { return base.Add(30 * time.Minute) }
	got, err := s.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)

	s.now = func() time.Time { return base.Add(2 * time.Hour) }
	got, err = s.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
