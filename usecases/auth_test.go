package usecases

import (
	"context"
	"testing"
	"time"

	"motor-monitor/cache"
	"motor-monitor/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(t *testing.T) (*AuthUseCase, *cache.SessionStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &fakeUsers{users: map[string]entities.User{
		"admin": {ID: 1, Username: "admin", Password: string(hash), Role: entities.RoleAdministrator},
	}}
	sessions := cache.NewSessionStore(time.Hour)
	uc, err := NewAuthUseCase(users, sessions, []byte("test-secret"))
	require.NoError(t, err)
	return uc, sessions
}

func TestLoginAndAuthenticate(t *testing.T) {
	uc, sessions := newTestAuth(t)

	issued, err := uc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, "admin", issued.Session.Username)
	assert.Equal(t, entities.RoleAdministrator, issued.Session.Role)
	assert.Equal(t, 1, sessions.Len())

	session, err := uc.Authenticate(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, issued.Session.ID, session.ID)
	assert.Equal(t, uint(1), session.UserID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	uc, sessions := newTestAuth(t)

	_, err := uc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), "nobody", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Equal(t, 0, sessions.Len())
}

func TestLogoutEndsSession(t *testing.T) {
	uc, sessions := newTestAuth(t)

	issued, err := uc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	uc.Logout(issued.Token)
	assert.Equal(t, 0, sessions.Len())

	_, err = uc.Authenticate(issued.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// logging out twice or with garbage is harmless
	uc.Logout(issued.Token)
	uc.Logout("not-a-token")
}

func TestAuthenticateRejectsForeignTokens(t *testing.T) {
	uc, _ := newTestAuth(t)

	_, err := uc.Authenticate("")
	assert.ErrorIs(t, err, ErrUnauthorized)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "whatever",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = uc.Authenticate(forged)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// correctly signed but pointing at no session
	orphan, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        "no-such-session",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = uc.Authenticate(orphan)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNewAuthUseCaseRequiresSecret(t *testing.T) {
	_, err := NewAuthUseCase(&fakeUsers{}, cache.NewSessionStore(time.Hour), nil)
	assert.Error(t, err)
}
