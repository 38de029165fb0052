package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/uwezo/shop-backend/internal/config"
	"github.com/uwezo/shop-backend/internal/dto"
	"github.com/uwezo/shop-backend/internal/middleware"
	"github.com/uwezo/shop-backend/internal/model"
	"github.com/uwezo/shop-backend/internal/service"
	"github.com/uwezo/shop-backend/internal/session"
)

type AuthHandler struct {
	authService *service.AuthService
	sessions    session.Store
	cfg         *config.Config
	log         *slog.Logger
}

func NewAuthHandler(authService *service.AuthService, sessions session.Store, cfg *config.Config, log *slog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, cfg: cfg, log: log}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	sess, err := h.sessions.Create(c.Request.Context(), session.Identity{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	})
	if err != nil {
		internalError(c, h.log, err)
		return
	}

	h.setSessionCookie(c, sess.Token, int(h.cfg.Session.TTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "user": toUserResponse(user)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.Session.CookieName); err == nil && token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			h.log.Error("destroy session", "error", err)
		}
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	user, err := h.authService.Profile(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		internalError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// CSRFToken hands the caller the token it must echo on state-changing
// requests via the X-CSRF-Token header.
func (h *AuthHandler) CSRFToken(c *gin.Context) {
	token := session.CSRFToken(h.cfg.Session.Secret, middleware.GetSessionToken(c))
	c.JSON(http.StatusOK, gin.H{"csrf_token": token})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, value, maxAge, "/", "", h.cfg.Production(), true)
}

func toUserResponse(user *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
}
