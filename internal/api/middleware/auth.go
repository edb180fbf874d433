package middleware

import (
	"net/http"
	"strings"

	"koyomi/internal/authz"
	"koyomi/internal/config"
	"koyomi/internal/models"
	"koyomi/internal/services"
	"koyomi/internal/token"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identity returns the resolved user for the request, if any.
func Identity(c *gin.Context) (models.SessionUser, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return models.SessionUser{}, false
	}
	user, ok := value.(models.SessionUser)
	return user, ok
}

// CurrentUser resolves the request identity from the session cookie, falling
// back to the remember-me cookie. It never denies; absent identity is left
// for RequireLoginFor to judge.
func CurrentUser(cfg *config.Config, authService *services.AuthService) gin.HandlerFunc {
	sessionSigner := token.NewSigner(cfg.Session.Secret)
	rememberSigner := token.NewSigner(cfg.RememberMe.Secret)

	return func(c *gin.Context) {
		// Session path: signed cookie -> store lookup. A hit refreshes both
		// the cookie max-age and the store TTL.
		if signed, err := c.Cookie(cfg.Session.CookieName); err == nil {
			if sid, ok := sessionSigner.Unsign(signed); ok {
				if user, ok := authService.LookupSession(sid); ok {
					setSessionCookie(c, cfg, signed)
					authService.TouchSession(sid)
					c.Set(identityKey, user)
					c.Next()
					return
				}
			}
		}

		// Remember-me path: signed cookie -> unexpired token on an enabled
		// account. A match materializes a fresh session, as login would.
		if signed, err := c.Cookie(cfg.RememberMe.CookieName); err == nil {
			if raw, ok := rememberSigner.Unsign(signed); ok {
				if user, err := authService.RedeemRememberToken(raw); err == nil {
					if sid, err := authService.CreateSession(user); err == nil {
						if signedSID, err := sessionSigner.Sign(sid); err == nil {
							setSessionCookie(c, cfg, signedSID)
						}
						_ = authService.MarkLogin(user.ID)
						c.Set(identityKey, user.Snapshot())
					}
				}
			}
		}

		c.Next()
	}
}

// RequireLoginFor denies unauthenticated requests whose path starts with any
// protected prefix. Authenticated requests always pass; role checks belong
// to RequirePermission.
func RequireLoginFor(prefixes []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := Identity(c); ok {
			c.Next()
			return
		}
		path := c.Request.URL.Path
		for _, prefix := range prefixes {
			if strings.HasPrefix(path, prefix) {
				c.JSON(401, gin.H{"error": "Authentication required"})
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// RequirePermission gates a route group on the authorization policy.
func RequirePermission(perm authz.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := Identity(c)
		if !ok {
			c.JSON(401, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		if !authz.Allow(user.Role, perm) {
			c.JSON(403, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// SetSessionCookie writes the signed session id cookie with the configured
// sliding max-age.
func SetSessionCookie(c *gin.Context, cfg *config.Config, signedSID string) {
	setSessionCookie(c, cfg, signedSID)
}

func setSessionCookie(c *gin.Context, cfg *config.Config, signedSID string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cfg.Session.CookieName, signedSID, cfg.Session.TTLSeconds, "/", "", cfg.SecureCookies(), true)
}

// SetRememberCookie writes the signed remember-me cookie with its fixed
// lifetime.
func SetRememberCookie(c *gin.Context, cfg *config.Config, signedToken string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cfg.RememberMe.CookieName, signedToken, cfg.RememberMe.TTLDays*24*60*60, "/", "", cfg.SecureCookies(), true)
}

// ClearAuthCookies expires both cookies.
func ClearAuthCookies(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(cfg.Session.CookieName, "", -1, "/", "", cfg.SecureCookies(), true)
	c.SetCookie(cfg.RememberMe.CookieName, "", -1, "/", "", cfg.SecureCookies(), true)
}
