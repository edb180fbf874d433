package services

import (
	"errors"
	"time"

	"koyomi/internal/calendar"
	"koyomi/internal/models"

	"gorm.io/gorm"
)

type EventService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db, now: time.Now}
}

// EventInput carries the client-submitted date/time components. Times are
// interpreted in the display timezone; see internal/calendar.
type EventInput struct {
	Title       string
	IsAllDay    bool
	StartDate   string
	StartTime   string
	EndDate     string
	EndTime     string
	CategoryID  int
	Description string
	URL         string
}

// normalize builds the stored UTC interval from the input components.
func (s *EventService) normalize(input EventInput) (start, end time.Time, err error) {
	if input.IsAllDay {
		start, err = calendar.ParseDate(input.StartDate)
		if err != nil {
			return start, end, invalidField("startDate", "invalid start date")
		}
		if input.EndDate == "" {
			return start, end, invalidField("endDate", "end date is required for all-day events")
		}
		end, err = calendar.ParseDate(input.EndDate)
		if err != nil {
			return start, end, invalidField("endDate", "invalid end date")
		}
		return start, end, nil
	}

	start, err = calendar.ParseDateTime(input.StartDate, input.StartTime)
	if err != nil {
		return start, end, invalidField("startDate", "invalid start date or time")
	}

	// A timed event may omit its end entirely; it then starts and ends on
	// the same instant.
	if input.EndDate == "" && input.EndTime == "" {
		return start, start, nil
	}

	endDate := input.EndDate
	if endDate == "" {
		endDate = input.StartDate
	}
	end, err = calendar.ParseDateTime(endDate, input.EndTime)
	if err != nil {
		return start, end, invalidField("endDate", "invalid end date or time")
	}
	return start, end, nil
}

func (s *EventService) validate(start, end time.Time, allDay bool) error {
	if err := calendar.ValidateInterval(start, end, allDay); err != nil {
		return &ValidationError{Field: "period", Err: err}
	}
	if err := calendar.ValidateStartWindow(start, s.now()); err != nil {
		return &ValidationError{Field: "startDate", Err: err}
	}
	return nil
}

// Create validates and persists a new event.
func (s *EventService) Create(input EventInput, creatorID uint) (*models.Event, error) {
	start, end, err := s.normalize(input)
	if err != nil {
		return nil, err
	}
	if err := s.validate(start, end, input.IsAllDay); err != nil {
		return nil, err
	}

	event := &models.Event{
		Title:       input.Title,
		StartAt:     start,
		EndAt:       end,
		IsAllDay:    input.IsAllDay,
		CategoryID:  input.CategoryID,
		Description: input.Description,
		URL:         input.URL,
		CreatorID:   creatorID,
	}
	if err := s.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// Update revalidates and rewrites an existing event.
func (s *EventService) Update(id uint, input EventInput) (*models.Event, error) {
	event, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	start, end, err := s.normalize(input)
	if err != nil {
		return nil, err
	}
	if err := s.validate(start, end, input.IsAllDay); err != nil {
		return nil, err
	}

	event.Title = input.Title
	event.StartAt = start
	event.EndAt = end
	event.IsAllDay = input.IsAllDay
	event.CategoryID = input.CategoryID
	event.Description = input.Description
	event.URL = input.URL

	if err := s.db.Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// Get fetches a single event.
func (s *EventService) Get(id uint) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// Delete removes an event and cascades to its comments.
func (s *EventService) Delete(id uint) error {
	event, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(event).Error
	})
}

// FindOverlapping returns every event whose [start, end) interval intersects
// the [from, to) window: the event starts inside the window, ends inside it,
// or fully spans it. Ordered by start instant, then id as the deterministic
// tie-break. Each row carries its comment count.
func (s *EventService) FindOverlapping(from, to time.Time) ([]models.Event, error) {
	var events []models.Event
	err := s.db.Model(&models.Event{}).
		Select("events.*, (SELECT COUNT(*) FROM comments WHERE comments.event_id = events.id) AS comment_count").
		Where("(start_at >= ? AND start_at < ?) OR (end_at > ? AND end_at <= ?) OR (start_at < ? AND end_at > ?)",
			from, to, from, to, from, to).
		Order("start_at ASC, id ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
