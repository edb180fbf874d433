package services

import (
	"errors"

	"koyomi/internal/config"
	"koyomi/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	db   *gorm.DB
	auth *AuthService
	cfg  *config.Config
}

func NewUserService(db *gorm.DB, auth *AuthService, cfg *config.Config) *UserService {
	return &UserService{db: db, auth: auth, cfg: cfg}
}

// List returns all users ordered by id.
func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Get fetches a single user.
func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create adds a user. The pre-check on email and name gives a friendly
// early rejection; the unique indexes remain the source of truth and
// concurrent duplicates surface through isDuplicate on insert.
func (s *UserService) Create(email, name, password, role string) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, invalidField("role", "unknown role")
	}

	var count int64
	s.db.Model(&models.User{}).Where("email = ? OR name = ?", email, name).Count(&count)
	if count > 0 {
		return nil, ErrConflict
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		Enabled:      true,
	}
	if err := s.db.Create(user).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

// Update changes a user's email, name or role. Empty fields are left as-is.
func (s *UserService) Update(id uint, email, name, role string) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	if name != "" {
		user.Name = name
	}
	if role != "" {
		if !models.ValidRole(role) {
			return nil, invalidField("role", "unknown role")
		}
		user.Role = role
	}

	if err := s.db.Save(user).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

// SetEnabled flips the account flag. Disabling also blocks remember-me
// redemption without clearing the token row.
func (s *UserService) SetEnabled(id uint, enabled bool) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	user.Enabled = enabled
	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword sets a new password without checking the old one (admin
// operation).
func (s *UserService) ResetPassword(id uint, password string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("password_hash", hash).Error
}

// ChangePassword verifies the current password before setting the new one
// (profile operation).
func (s *UserService) ChangePassword(id uint, current, next string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}
	if !s.auth.VerifyPassword(user.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	hash, err := s.auth.HashPassword(next)
	if err != nil {
		return err
	}
	return s.db.Model(user).Update("password_hash", hash).Error
}

// UpdateProfile edits the user's own display fields.
func (s *UserService) UpdateProfile(id uint, name, bio, avatarPath string) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	user.Bio = bio
	user.AvatarPath = avatarPath
	if err := s.db.Save(user).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return user, nil
}

// Delete removes a user and their comments. A user who still owns events
// cannot be deleted; the events must be reassigned or removed first.
func (s *UserService) Delete(id uint) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	var eventCount int64
	if err := s.db.Model(&models.Event{}).Where("creator_id = ?", user.ID).Count(&eventCount).Error; err != nil {
		return err
	}
	if eventCount > 0 {
		return ErrConflict
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("creator_id = ?", user.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
