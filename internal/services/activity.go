package services

import (
	"log/slog"

	"koyomi/internal/models"

	"gorm.io/gorm"
)

type ActivityService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewActivityService(db *gorm.DB, logger *slog.Logger) *ActivityService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityService{db: db, logger: logger}
}

// Record appends an entry to the activity log. Recording is best-effort:
// a failed insert is logged and swallowed so it never fails the action it
// describes.
func (s *ActivityService) Record(activityType, description string, userID uint, meta map[string]any) {
	activity := &models.Activity{
		Type:        activityType,
		Description: description,
		UserID:      userID,
	}
	activity.SetMetadata(meta)

	if err := s.db.Create(activity).Error; err != nil {
		s.logger.Error("failed to record activity",
			"type", activityType,
			"user_id", userID,
			"error", err,
		)
	}
}

// Recent returns the newest entries for the dashboard feed.
func (s *ActivityService) Recent(limit int) ([]models.Activity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var activities []models.Activity
	err := s.db.Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}
