package services

import (
	"encoding/json"
	"errors"
	"time"

	"koyomi/internal/config"
	"koyomi/internal/models"
	"koyomi/internal/session"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionPayload is the JSON document kept in the session store under the
// signed session id. ExpiresAt (unix millis) is optional; when present the
// store derives the TTL from it instead of the default.
type SessionPayload struct {
	User      models.SessionUser `json:"user"`
	ExpiresAt int64              `json:"expiresAt,omitempty"`
}

type AuthService struct {
	db    *gorm.DB
	store session.Store
	cfg   *config.Config
	now   func() time.Time
}

func NewAuthService(db *gorm.DB, store session.Store, cfg *config.Config) *AuthService {
	return &AuthService{db: db, store: store, cfg: cfg, now: time.Now}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.Security.BcryptCost)
	return string(bytes), err
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// Authenticate verifies credentials and returns the user. A disabled account
// with correct credentials fails with ErrAccountDisabled, not
// ErrInvalidCredentials, so the caller can answer 403 instead of 401.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	if !user.Enabled {
		return nil, ErrAccountDisabled
	}

	return &user, nil
}

// CreateSession materializes a fresh session for the user and returns the
// raw (unsigned) session id.
func (s *AuthService) CreateSession(user *models.User) (string, error) {
	sid := uuid.NewString()
	payload, err := json.Marshal(SessionPayload{User: user.Snapshot()})
	if err != nil {
		return "", err
	}
	s.store.Set(s.sessionKey(sid), payload)
	return sid, nil
}

// LookupSession resolves a session id to the stored user snapshot.
// A malformed payload counts as absent.
func (s *AuthService) LookupSession(sid string) (models.SessionUser, bool) {
	raw, ok := s.store.Get(s.sessionKey(sid))
	if !ok {
		return models.SessionUser{}, false
	}
	var payload SessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.SessionUser{}, false
	}
	if payload.User.ID == 0 {
		return models.SessionUser{}, false
	}
	return payload.User, true
}

// TouchSession slides the session TTL.
func (s *AuthService) TouchSession(sid string) {
	s.store.Touch(s.sessionKey(sid))
}

// DestroySession removes the session.
func (s *AuthService) DestroySession(sid string) {
	s.store.Destroy(s.sessionKey(sid))
}

// ClearSessions removes every session under the configured key prefix.
func (s *AuthService) ClearSessions() {
	s.store.Clear(s.cfg.Session.KeyPrefix)
}

// MarkLogin stamps the user's last-login time.
func (s *AuthService) MarkLogin(userID uint) error {
	now := s.now()
	return s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_login_at", now).Error
}

// IssueRememberToken creates a new long-lived token for the user,
// overwriting any previous one, and returns the raw token. The raw token is
// what gets signed into the cookie; the column stores it unsigned.
func (s *AuthService) IssueRememberToken(userID uint) (string, error) {
	raw := uuid.NewString()
	expiresAt := s.now().AddDate(0, 0, s.cfg.RememberMe.TTLDays)
	err := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"remember_token":      raw,
		"remember_expires_at": expiresAt,
	}).Error
	if err != nil {
		return "", err
	}
	return raw, nil
}

// RedeemRememberToken resolves a raw remember-me token to its user. Expired
// tokens and disabled accounts are both treated as no match; disabling a
// user invalidates silent re-authentication even though the token row stays.
func (s *AuthService) RedeemRememberToken(raw string) (*models.User, error) {
	if raw == "" {
		return nil, ErrNotFound
	}
	var user models.User
	err := s.db.Where("remember_token = ? AND remember_expires_at >= ? AND enabled = ?",
		raw, s.now(), true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ForgetRememberToken invalidates the user's remember-me token.
func (s *AuthService) ForgetRememberToken(userID uint) error {
	return s.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"remember_token":      "",
		"remember_expires_at": nil,
	}).Error
}

// CreateDefaultUser seeds the admin account from config when the users
// table is empty.
func (s *AuthService) CreateDefaultUser() error {
	var count int64
	if err := s.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	cfg := s.cfg.DefaultUser
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	hash, err := s.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	role := cfg.Role
	if !models.ValidRole(role) {
		role = models.RoleAdmin
	}

	name := cfg.Name
	if name == "" {
		name = "admin"
	}

	user := &models.User{
		Email:        cfg.Email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		Enabled:      true,
	}
	return s.db.Create(user).Error
}

func (s *AuthService) sessionKey(sid string) string {
	return s.cfg.Session.KeyPrefix + sid
}
