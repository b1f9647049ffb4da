package middlewares

import (
	"net/http"
	"strings"

	"motor-monitor/cache"
	"motor-monitor/usecases"

	"github.com/gin-gonic/gin"
)

// SessionCookie carries the session token for browser clients.
const SessionCookie = "motor_session"

const sessionKey = "session"

// TokenFromRequest looks for the session token in the Authorization header,
// then the cookie, then the token query parameter.
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	return c.Query("token")
}

// RequireSession lets the request through only with a live session. API and
// websocket requests are refused with 401, page requests go to /login.
func RequireSession(auth *usecases.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := auth.Authenticate(TokenFromRequest(c))
		if err != nil {
			path := c.Request.URL.Path
			if strings.HasPrefix(path, "/api") || path == "/ws" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
				return
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// CurrentSession returns the session RequireSession attached to the request.
func CurrentSession(c *gin.Context) (cache.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return cache.Session{}, false
	}
	session, ok := v.(cache.Session)
	return session, ok
}
