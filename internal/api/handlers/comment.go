package handlers

import (
	"strconv"

	"koyomi/internal/api/middleware"
	"koyomi/internal/models"
	"koyomi/internal/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService  *services.CommentService
	activityService *services.ActivityService
}

func NewCommentHandler(commentService *services.CommentService, activityService *services.ActivityService) *CommentHandler {
	return &CommentHandler{
		commentService:  commentService,
		activityService: activityService,
	}
}

type CommentResponse struct {
	ID          uint   `json:"id"`
	Content     string `json:"content"`
	EventID     uint   `json:"eventId"`
	CreatorID   uint   `json:"creatorId"`
	CreatorName string `json:"creatorName"`
	CreatedAt   string `json:"createdAt"`
}

func renderComment(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:          comment.ID,
		Content:     comment.Content,
		EventID:     comment.EventID,
		CreatorID:   comment.CreatorID,
		CreatorName: comment.Creator.Name,
		CreatedAt:   comment.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// List returns an event's comments. Public read.
func (h *CommentHandler) List(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid event ID"})
		return
	}

	comments, err := h.commentService.ListForEvent(uint(eventID))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, renderComment(comment))
	}
	c.JSON(200, gin.H{"comments": responses})
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create posts a comment on an event. Members only.
func (h *CommentHandler) Create(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid event ID"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, ok := middleware.Identity(c)
	if !ok {
		c.JSON(401, gin.H{"error": "Authentication required"})
		return
	}

	comment, err := h.commentService.Create(uint(eventID), user.ID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, renderComment(*comment))
}

// Delete removes a comment: allowed for its creator, moderators and admins.
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid comment ID"})
		return
	}

	user, ok := middleware.Identity(c)
	if !ok {
		c.JSON(401, gin.H{"error": "Authentication required"})
		return
	}

	moderated, err := h.commentService.Delete(uint(id), user)
	if err != nil {
		respondError(c, err)
		return
	}

	if moderated {
		h.activityService.Record(models.ActivityCommentDelete, "removed a comment", user.ID, map[string]any{
			"comment_id": uint(id),
		})
	}

	c.JSON(200, gin.H{"message": "Comment deleted"})
}
