package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid user",
			userName: "Maria Farias",
			email:    "maria@example.com",
			password: "secret-password",
			wantErr:  nil,
		},
		{
			name:     "empty name",
			userName: "",
			email:    "maria@example.com",
			password: "secret-password",
			wantErr:  ErrEmptyName,
		},
		{
			name:     "empty email",
			userName: "Maria Farias",
			email:    "",
			password: "secret-password",
			wantErr:  ErrEmptyEmail,
		},
		{
			name:     "invalid email format",
			userName: "Maria Farias",
			email:    "not-an-email",
			password: "secret-password",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "email without domain dot",
			userName: "Maria Farias",
			email:    "maria@localhost",
			password: "secret-password",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "empty password",
			userName: "Maria Farias",
			email:    "maria@example.com",
			password: "",
			wantErr:  ErrEmptyPassword,
		},
		{
			name:     "password over bcrypt limit",
			userName: "Maria Farias",
			email:    "maria@example.com",
			password: strings.Repeat("x", 73),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.userName, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, user)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.Equal(t, tt.userName, user.Name)
			assert.Equal(t, tt.email, user.Email)
			assert.Equal(t, UserStatusActive, user.Status)
			assert.False(t, user.CreatedAt.IsZero())
			assert.Equal(t, user.CreatedAt, user.UpdatedAt)
		})
	}
}

func TestUserValidateLoadedFromStore(t *testing.T) {
	t.Parallel()

	// A user loaded from the database has no plaintext password, only the
	// hash. That must pass validation.
	user, err := NewUser("Maria Farias", "maria@example.com", "secret-password")
	require.NoError(t, err)

	user.Password = ""
	user.HashedPassword = "$2a$10$abcdefghijklmnopqrstuv"
	assert.NoError(t, user.Validate())

	// Hash missing as well: invalid.
	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}

func TestUserValidateStatus(t *testing.T) {
	t.Parallel()

	user, err := NewUser("Maria Farias", "maria@example.com", "secret-password")
	require.NoError(t, err)

	user.Status = UserStatusInactive
	assert.NoError(t, user.Validate())

	user.Status = UserStatus("suspended")
	assert.ErrorIs(t, user.Validate(), ErrInvalidUserStatus)
}
