package services

import (
	"errors"

	"koyomi/internal/authz"
	"koyomi/internal/models"

	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// ListForEvent returns an event's comments oldest first, with creators
// preloaded for display.
func (s *CommentService) ListForEvent(eventID uint) ([]models.Comment, error) {
	var exists int64
	if err := s.db.Model(&models.Event{}).Where("id = ?", eventID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	var comments []models.Comment
	err := s.db.Where("event_id = ?", eventID).
		Preload("Creator").
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Create attaches a comment to an event.
func (s *CommentService) Create(eventID, creatorID uint, content string) (*models.Comment, error) {
	if content == "" {
		return nil, invalidField("content", "content is required")
	}

	var exists int64
	if err := s.db.Model(&models.Event{}).Where("id = ?", eventID).Count(&exists).Error; err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, ErrNotFound
	}

	comment := &models.Comment{
		Content:   content,
		EventID:   eventID,
		CreatorID: creatorID,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment. Allowed for the comment's creator and for
// moderators; everyone else gets ErrForbidden. The bool result reports
// whether the delete was a moderation action by someone other than the
// creator.
func (s *CommentService) Delete(id uint, actor models.SessionUser) (bool, error) {
	var comment models.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	isCreator := comment.CreatorID == actor.ID
	if !isCreator && !authz.Allow(actor.Role, authz.ModerateComments) {
		return false, ErrForbidden
	}

	if err := s.db.Delete(&comment).Error; err != nil {
		return false, err
	}
	return !isCreator, nil
}
