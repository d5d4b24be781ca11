package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lera-app/ticketing-api/internal/model"
	"github.com/lera-app/ticketing-api/internal/utils"
)

func TestSessionLifecycle(t *testing.T) {
	f := openTestDB(t)
	sessions := NewSessionRepo(f.Users.DB)
	ctx := context.Background()

	userID := f.newUser(ctx, model.RoleAttendee)

	tok, err := utils.NewSessionToken(1)
	require.NoError(t, err)
	hash := utils.HashSessionRaw(tok.Raw)

	require.NoError(t, sessions.Store(ctx, userID, hash, tok.Exp))

	got, err := sessions.Lookup(ctx, hash)
	require.NoError(t, err)
	require.Equal(t, userID, got)

	// an unknown token never resolves
	_, err = sessions.Lookup(ctx, utils.HashSessionRaw("never-issued"))
	require.ErrorIs(t, err, sql.ErrNoRows)

	// revocation kills the session immediately
	require.NoError(t, sessions.Revoke(ctx, hash))
	_, err = sessions.Lookup(ctx, hash)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSessionExpiry(t *testing.T) {
	f := openTestDB(t)
	sessions := NewSessionRepo(f.Users.DB)
	ctx := context.Background()

	userID := f.newUser(ctx, model.RoleAttendee)

	tok, err := utils.NewSessionToken(1)
	require.NoError(t, err)
	hash := utils.HashSessionRaw(tok.Raw)

	// store it already expired
	require.NoError(t, sessions.Store(ctx, userID, hash, time.Now().UTC().Add(-time.Minute)))
	_, err = sessions.Lookup(ctx, hash)
	require.ErrorIs(t, err, sql.ErrNoRows)

	purged, err := sessions.PurgeExpired(ctx, 0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, purged, int64(1))
}
