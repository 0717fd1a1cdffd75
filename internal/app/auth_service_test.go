package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpione/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), newTestTokens(t))
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(RegisterInput{Username: "alice", Email: "A@X.com", Password: "pw123"})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "pw123", user.PasswordHash)

	result, err := svc.Login(LoginInput{Email: "a@x.com", Password: "pw123"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", result.TokenType)
	assert.Equal(t, "alice", result.Username)
	assert.NotEmpty(t, result.AccessToken)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := newAuthService(t)

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{name: "empty username", input: RegisterInput{Email: "a@x.com", Password: "pw"}},
		{name: "empty email", input: RegisterInput{Username: "alice", Password: "pw"}},
		{name: "empty password", input: RegisterInput{Username: "alice", Email: "a@x.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(tt.input)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw123"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Username: "alice", Email: "other@x.com", Password: "pw123"})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Register(RegisterInput{Username: "bob", Email: "a@x.com", Password: "pw123"})
	assert.ErrorIs(t, err, ErrUserExists)
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestAuthService_LoginGenericFailure(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw123"})
	require.NoError(t, err)

	_, badPassword := svc.Login(LoginInput{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, badPassword, ErrInvalidCredential)

	_, unknownEmail := svc.Login(LoginInput{Email: "nobody@x.com", Password: "pw123"})
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredential)

	assert.Equal(t, badPassword.Error(), unknownEmail.Error())
}

func TestAuthService_TokenCarriesUsername(t *testing.T) {
	db := newTestDB(t)
	tokens := newTestTokens(t)
	svc := NewAuthService(repository.NewUserRepository(db), tokens)

	_, err := svc.Register(RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw123"})
	require.NoError(t, err)

	// Login is by email, but the issued token is scoped to the username.
	result, err := svc.Login(LoginInput{Email: "a@x.com", Password: "pw123"})
	require.NoError(t, err)

	username, err := tokens.Verify(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestAuthService_GetUserByID(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(RegisterInput{Username: "alice", Email: "a@x.com", Password: "pw123"})
	require.NoError(t, err)

	found, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "alice", found.Username)

	absent, err := svc.GetUserByID(user.ID + 1)
	require.NoError(t, err)
	assert.Nil(t, absent)

	_, err = svc.GetUserByID(0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
