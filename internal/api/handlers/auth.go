package handlers

import (
	"koyomi/internal/api/middleware"
	"koyomi/internal/config"
	"koyomi/internal/models"
	"koyomi/internal/services"
	"koyomi/internal/token"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService     *services.AuthService
	activityService *services.ActivityService
	cfg             *config.Config
	sessionSigner   *token.Signer
	rememberSigner  *token.Signer
}

func NewAuthHandler(authService *services.AuthService, activityService *services.ActivityService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		activityService: activityService,
		cfg:             cfg,
		sessionSigner:   token.NewSigner(cfg.Session.Secret),
		rememberSigner:  token.NewSigner(cfg.RememberMe.Secret),
	}
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// Login authenticates credentials and establishes a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	sid, err := h.authService.CreateSession(user)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create session"})
		return
	}
	signedSID, err := h.sessionSigner.Sign(sid)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to create session"})
		return
	}
	middleware.SetSessionCookie(c, h.cfg, signedSID)

	if req.RememberMe {
		raw, err := h.authService.IssueRememberToken(user.ID)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to issue remember-me token"})
			return
		}
		signedToken, err := h.rememberSigner.Sign(raw)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to issue remember-me token"})
			return
		}
		middleware.SetRememberCookie(c, h.cfg, signedToken)
	}

	if err := h.authService.MarkLogin(user.ID); err != nil {
		c.JSON(500, gin.H{"error": "Failed to update login time"})
		return
	}

	h.activityService.Record(models.ActivityLogin, "logged in", user.ID, map[string]any{
		"remember_me": req.RememberMe,
	})

	c.JSON(200, gin.H{"user": user.Snapshot()})
}

// Logout is idempotent: cookies are cleared whether or not a live session
// existed.
func (h *AuthHandler) Logout(c *gin.Context) {
	if signed, err := c.Cookie(h.cfg.Session.CookieName); err == nil {
		if sid, ok := h.sessionSigner.Unsign(signed); ok {
			h.authService.DestroySession(sid)
		}
	}

	if user, ok := middleware.Identity(c); ok {
		_ = h.authService.ForgetRememberToken(user.ID)
	}

	middleware.ClearAuthCookies(c, h.cfg)
	c.JSON(200, gin.H{"message": "Logged out"})
}

// GetMe returns the resolved identity.
func (h *AuthHandler) GetMe(c *gin.Context) {
	user, ok := middleware.Identity(c)
	if !ok {
		c.JSON(401, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(200, user)
}
