package handlers

import (
	"strconv"

	"koyomi/internal/api/middleware"
	"koyomi/internal/calendar"
	"koyomi/internal/config"
	"koyomi/internal/models"
	"koyomi/internal/services"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService    *services.EventService
	activityService *services.ActivityService
	palette         *calendar.Palette
}

func NewEventHandler(eventService *services.EventService, activityService *services.ActivityService, cfg *config.Config) *EventHandler {
	return &EventHandler{
		eventService:    eventService,
		activityService: activityService,
		palette:         calendar.NewPalette(cfg.Calendar.Colors, cfg.Calendar.DefaultColor),
	}
}

type EventRequest struct {
	Title       string `json:"title" binding:"required"`
	IsAllDay    bool   `json:"isAllDay"`
	StartDate   string `json:"startDate" binding:"required"`
	StartTime   string `json:"startTime"`
	EndDate     string `json:"endDate"`
	EndTime     string `json:"endTime"`
	CategoryID  int    `json:"categoryId"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

func (r EventRequest) input() services.EventInput {
	return services.EventInput{
		Title:       r.Title,
		IsAllDay:    r.IsAllDay,
		StartDate:   r.StartDate,
		StartTime:   r.StartTime,
		EndDate:     r.EndDate,
		EndTime:     r.EndTime,
		CategoryID:  r.CategoryID,
		Description: r.Description,
		URL:         r.URL,
	}
}

// EventResponse is an event normalized into the display timezone.
type EventResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Start        string `json:"start"`
	End          string `json:"end"`
	IsAllDay     bool   `json:"isAllDay"`
	CategoryID   int    `json:"categoryId"`
	Color        string `json:"color"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	CreatorID    uint   `json:"creatorId"`
	CommentCount int64  `json:"commentCount"`
}

func (h *EventHandler) render(e models.Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Start:        calendar.FormatInstant(e.StartAt, e.IsAllDay),
		End:          calendar.FormatInstant(e.EndAt, e.IsAllDay),
		IsAllDay:     e.IsAllDay,
		CategoryID:   e.CategoryID,
		Color:        h.palette.ColorFor(e.CategoryID),
		Description:  e.Description,
		URL:          e.URL,
		CreatorID:    e.CreatorID,
		CommentCount: e.CommentCount,
	}
}

// List returns events overlapping the requested display date range.
// Public read; no identity required.
func (h *EventHandler) List(c *gin.Context) {
	startParam := c.Query("start")
	endParam := c.Query("end")
	if startParam == "" || endParam == "" {
		c.JSON(400, gin.H{"error": "start and end are required"})
		return
	}

	from, err := calendar.ParseDate(startParam)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid start date"})
		return
	}
	to, err := calendar.ParseDate(endParam)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid end date"})
		return
	}
	if !from.Before(to) {
		c.JSON(400, gin.H{"error": "start must be before end"})
		return
	}

	events, err := h.eventService.FindOverlapping(from, to)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to query events"})
		return
	}

	responses := make([]EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, h.render(e))
	}
	c.JSON(200, gin.H{"events": responses})
}

// Get returns a single event.
func (h *EventHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid event ID"})
		return
	}

	event, err := h.eventService.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, h.render(*event))
}

// Create adds an event (admin surface).
func (h *EventHandler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, _ := middleware.Identity(c)
	event, err := h.eventService.Create(req.input(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.activityService.Record(models.ActivityEventCreate, "created event "+event.Title, user.ID, map[string]any{
		"event_id": event.ID,
	})

	c.JSON(201, h.render(*event))
}

// Update rewrites an event (admin surface).
func (h *EventHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid event ID"})
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	event, err := h.eventService.Update(uint(id), req.input())
	if err != nil {
		respondError(c, err)
		return
	}

	user, _ := middleware.Identity(c)
	h.activityService.Record(models.ActivityEventUpdate, "updated event "+event.Title, user.ID, map[string]any{
		"event_id": event.ID,
	})

	c.JSON(200, h.render(*event))
}

// Delete removes an event and its comments (admin surface).
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid event ID"})
		return
	}

	if err := h.eventService.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	user, _ := middleware.Identity(c)
	h.activityService.Record(models.ActivityEventDelete, "deleted event", user.ID, map[string]any{
		"event_id": uint(id),
	})

	c.JSON(200, gin.H{"message": "Event deleted"})
}
