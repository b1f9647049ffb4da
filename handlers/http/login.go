package httpHandler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"motor-monitor/middlewares"
	"motor-monitor/usecases"

	"github.com/gin-gonic/gin"
)

type LoginHandler struct {
	auth         *usecases.AuthUseCase
	secureCookie bool
	logger       *slog.Logger
}

func NewLoginHandler(auth *usecases.AuthUseCase, secureCookie bool, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{auth: auth, secureCookie: secureCookie, logger: logger}
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

// ShowLogin handles GET /login
func (h *LoginHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login handles POST /login (form)
func (h *LoginHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusOK, "login.html", gin.H{"error": "Invalid credentials"})
		return
	}

	issued, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, usecases.ErrInvalidCredentials) {
		h.logger.Info("login refused", "username", req.Username)
		c.HTML(http.StatusOK, "login.html", gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		h.logger.Error("login failed", "username", req.Username, "error", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"error": "Login is unavailable, try again later"})
		return
	}

	h.setCookie(c, issued.Token, int(time.Until(issued.Session.ExpiresAt).Seconds()))
	h.logger.Info("user logged in", "username", issued.Session.Username)
	c.Redirect(http.StatusFound, "/zones")
}

// Logout handles GET /logout
func (h *LoginHandler) Logout(c *gin.Context) {
	h.auth.Logout(middlewares.TokenFromRequest(c))
	h.setCookie(c, "", -1)
	c.Redirect(http.StatusFound, "/login")
}

// APILogin handles POST /api/auth/login for non-browser clients
func (h *LoginHandler) APILogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	issued, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, usecases.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		h.logger.Error("api login failed", "username", req.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     issued.Token,
		ExpiresAt: issued.Session.ExpiresAt,
		Username:  issued.Session.Username,
		Role:      issued.Session.Role,
	})
}

// Session handles GET /api/session
func (h *LoginHandler) Session(c *gin.Context) {
	session, ok := middlewares.CurrentSession(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":  session.UserID,
		"username": session.Username,
		"role":     session.Role,
	})
}

func (h *LoginHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.SessionCookie, value, maxAge, "/", "", h.secureCookie, true)
}
