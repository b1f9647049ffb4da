package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"motor-monitor/cache"
	"motor-monitor/entities"
	"motor-monitor/repositories"
	"motor-monitor/usecases"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type staticUsers struct{ user entities.User }

func (s staticUsers) GetByUsername(_ context.Context, username string) (*entities.User, error) {
	if username != s.user.Username {
		return nil, repositories.ErrNotFound
	}
	u := s.user
	return &u, nil
}

func (s staticUsers) GetByID(context.Context, uint) (*entities.User, error) {
	return nil, repositories.ErrNotFound
}

func newRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("operator123"), bcrypt.MinCost)
	require.NoError(t, err)
	auth, err := usecases.NewAuthUseCase(
		staticUsers{user: entities.User{ID: 2, Username: "operator", Password: string(hash), Role: entities.RoleOperator}},
		cache.NewSessionStore(time.Hour),
		[]byte("middleware-secret"),
	)
	require.NoError(t, err)
	issued, err := auth.Login(context.Background(), "operator", "operator123")
	require.NoError(t, err)

	r := gin.New()
	r.Use(RequireSession(auth))
	whoami := func(c *gin.Context) {
		session, ok := CurrentSession(c)
		require.True(t, ok)
		c.String(http.StatusOK, session.Username)
	}
	r.GET("/api/zones", whoami)
	r.GET("/zones", whoami)
	r.GET("/ws", whoami)
	return r, issued.Token
}

func TestRequireSessionRejectsAnonymous(t *testing.T) {
	r, _ := newRouter(t)

	for _, path := range []string{"/api/zones", "/ws"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/zones", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireSessionAcceptsEveryCarrier(t *testing.T) {
	r, token := newRouter(t)

	cookie := httptest.NewRequest(http.MethodGet, "/zones", nil)
	cookie.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})

	bearer := httptest.NewRequest(http.MethodGet, "/api/zones", nil)
	bearer.Header.Set("Authorization", "Bearer "+token)

	query := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)

	for _, req := range []*http.Request{cookie, bearer, query} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, req.URL.String())
		assert.Equal(t, "operator", w.Body.String())
	}
}

func TestBearerHeaderWinsOverStaleCookie(t *testing.T) {
	r, token := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/zones", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expired.session.token"})
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "operator", w.Body.String())
}

func TestRequireSessionRejectsGarbageToken(t *testing.T) {
	r, _ := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/zones", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
