package middlewares

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAccessLoggerMasksQueryToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	r := gin.New()
	r.Use(AccessLogger(&buf))
	r.GET("/ws", func(c *gin.Context) { c.Status(http.StatusUnauthorized) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token=eyJhbGciOiJIUzI1NiJ9.secret.sig&v=2", nil))

	line := buf.String()
	assert.Contains(t, line, "/ws?")
	assert.Contains(t, line, "token=REDACTED")
	assert.Contains(t, line, "v=2")
	assert.Contains(t, line, "401")
	assert.NotContains(t, line, "secret")
}

func TestRedactToken(t *testing.T) {
	cases := map[string]string{
		"/api/zones":           "/api/zones",
		"/ws?token=abc":        "/ws?token=REDACTED",
		"/ws?a=1&token=abc":    "/ws?a=1&token=REDACTED",
		"/api/motors/1?page=2": "/api/motors/1?page=2",
		"/ws?token=%zz":        "/ws?REDACTED",
	}
	for in, want := range cases {
		assert.Equal(t, want, redactToken(in), in)
	}
}
