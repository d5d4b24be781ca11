package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/lera-app/ticketing-api/internal/model"
	"github.com/lera-app/ticketing-api/internal/utils"
)

func TestUserRegisterAndLookup(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	username := "reg_" + suffix
	email := "reg_" + suffix + "@example.com"

	id, err := f.Users.Create(ctx, username, email, "correct-horse", model.RoleAttendee, 4)
	require.NoError(t, err)

	byName, err := f.Users.GetByIdentifier(ctx, username)
	require.NoError(t, err)
	require.Equal(t, id, byName.ID)
	require.True(t, utils.VerifyPassword(byName.PasswordHash, "correct-horse"))
	require.False(t, utils.VerifyPassword(byName.PasswordHash, "wrong"))

	// login works with the email too, case-insensitively
	byEmail, err := f.Users.GetByIdentifier(ctx, "REG_"+suffix+"@example.com")
	require.NoError(t, err)
	require.Equal(t, id, byEmail.ID)
}

func TestUserDuplicateDetection(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	suffix := uuid.NewString()[:8]
	username := "dup_" + suffix
	email := "dup_" + suffix + "@example.com"

	_, err := f.Users.Create(ctx, username, email, "pw-one", model.RoleAttendee, 4)
	require.NoError(t, err)

	_, err = f.Users.Create(ctx, username, "other_"+email, "pw-two", model.RoleAttendee, 4)
	require.ErrorIs(t, err, ErrUsernameExists)

	_, err = f.Users.Create(ctx, "other_"+username, email, "pw-two", model.RoleAttendee, 4)
	require.ErrorIs(t, err, ErrEmailExists)
}

func TestUserUpdateProfile(t *testing.T) {
	f := openTestDB(t)
	ctx := context.Background()

	id := f.newUser(ctx, model.RoleAttendee)
	newName := "renamed_" + uuid.NewString()[:8]

	got, err := f.Users.UpdateProfile(ctx, id, &newName, nil)
	require.NoError(t, err)
	require.Equal(t, newName, got.Username)

	// email untouched when not supplied
	orig, err := f.Users.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, got.Email, orig.Email)
}
