package models

import (
	"encoding/json"
	"time"
)

// Event stores its interval as UTC instants. End is exclusive; for all-day
// events it is midnight of the day after the last included day.
type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	StartAt     time.Time `json:"start_at" gorm:"not null;index"`
	EndAt       time.Time `json:"end_at" gorm:"not null;index"`
	IsAllDay    bool      `json:"is_all_day" gorm:"not null;default:false"`
	CategoryID  int       `json:"category_id" gorm:"not null;default:0"`
	Description string    `json:"description" gorm:"type:text"`
	URL         string    `json:"url" gorm:"type:varchar(500)"`
	CreatorID   uint      `json:"creator_id" gorm:"not null;index"`
	Creator     User      `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Populated by the overlap query's subselect, never persisted.
	CommentCount int64 `json:"comment_count" gorm:"->;-:migration"`
}

type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	EventID   uint      `json:"event_id" gorm:"not null;index"`
	CreatorID uint      `json:"creator_id" gorm:"not null;index"`
	Creator   User      `json:"creator,omitempty" gorm:"foreignKey:CreatorID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Activity is an append-only log entry feeding the admin dashboard.
// Rows are never mutated or deleted.
type Activity struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"type:varchar(50);not null;index"`
	Description string    `json:"description" gorm:"type:varchar(500)"`
	Metadata    string    `json:"-" gorm:"type:text"`
	UserID      uint      `json:"user_id" gorm:"index"`
	User        User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}

// Activity type tags.
const (
	ActivityLogin         = "login"
	ActivityEventCreate   = "event_create"
	ActivityEventUpdate   = "event_update"
	ActivityEventDelete   = "event_delete"
	ActivityUserCreate    = "user_create"
	ActivityUserUpdate    = "user_update"
	ActivityUserDelete    = "user_delete"
	ActivityCommentDelete = "comment_delete"
)

// SetMetadata marshals the key/value pairs into the metadata column.
func (a *Activity) SetMetadata(meta map[string]any) {
	if len(meta) == 0 {
		a.Metadata = ""
		return
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return
	}
	a.Metadata = string(data)
}

// MetadataMap unmarshals the metadata column; malformed or empty metadata
// yields an empty map.
func (a *Activity) MetadataMap() map[string]any {
	meta := map[string]any{}
	if a.Metadata == "" {
		return meta
	}
	if err := json.Unmarshal([]byte(a.Metadata), &meta); err != nil {
		return map[string]any{}
	}
	return meta
}
