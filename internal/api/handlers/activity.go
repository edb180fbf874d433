package handlers

import (
	"strconv"

	"koyomi/internal/models"
	"koyomi/internal/services"

	"github.com/gin-gonic/gin"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

type ActivityResponse struct {
	ID          uint           `json:"id"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	UserID      uint           `json:"userId"`
	UserName    string         `json:"userName"`
	CreatedAt   string         `json:"createdAt"`
}

// Recent returns the dashboard feed, newest first.
func (h *ActivityHandler) Recent(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	activities, err := h.activityService.Recent(limit)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load activity feed"})
		return
	}

	responses := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		responses = append(responses, renderActivity(a))
	}
	c.JSON(200, gin.H{"activities": responses})
}

func renderActivity(a models.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		Type:        a.Type,
		Description: a.Description,
		Metadata:    a.MetadataMap(),
		UserID:      a.UserID,
		UserName:    a.User.Name,
		CreatedAt:   a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
