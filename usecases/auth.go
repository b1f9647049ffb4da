package usecases

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"motor-monitor/cache"
	"motor-monitor/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

// IssuedSession is what a successful login hands back to the client.
type IssuedSession struct {
	Token   string
	Session cache.Session
}

// AuthUseCase checks credentials and maps signed tokens onto server-held sessions.
type AuthUseCase struct {
	users     repositories.UserRepository
	sessions  *cache.SessionStore
	secret    []byte
	dummyHash []byte
}

func NewAuthUseCase(users repositories.UserRepository, sessions *cache.SessionStore, secret []byte) (*AuthUseCase, error) {
	if len(secret) == 0 {
		return nil, errors.New("session secret is required")
	}
	// compared against for unknown usernames
	dummy, err := bcrypt.GenerateFromPassword([]byte("motor-monitor-dummy"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AuthUseCase{users: users, sessions: sessions, secret: secret, dummyHash: dummy}, nil
}

// Login verifies the credentials and opens a session. Unknown users and
// wrong passwords both yield ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (*IssuedSession, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := uc.sessions.Create(user.ID, user.Username, user.Role)
	token, err := uc.sign(session)
	if err != nil {
		uc.sessions.Delete(session.ID)
		return nil, err
	}
	return &IssuedSession{Token: token, Session: session}, nil
}

// Authenticate resolves a token to its live session.
func (uc *AuthUseCase) Authenticate(token string) (cache.Session, error) {
	claims, err := uc.parse(token)
	if err != nil {
		return cache.Session{}, ErrUnauthorized
	}
	session, ok := uc.sessions.Get(claims.ID)
	if !ok {
		return cache.Session{}, ErrUnauthorized
	}
	return session, nil
}

// Logout destroys the session behind the token, expired or not.
func (uc *AuthUseCase) Logout(token string) {
	claims, err := uc.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return
	}
	uc.sessions.Delete(claims.ID)
}

func (uc *AuthUseCase) sign(session cache.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   strconv.FormatUint(uint64(session.UserID), 10),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

func (uc *AuthUseCase) parse(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return uc.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if claims.ID == "" {
		return nil, ErrUnauthorized
	}
	return claims, nil
}
