package handlers

import (
	"strconv"

	"koyomi/internal/api/middleware"
	"koyomi/internal/models"
	"koyomi/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService     *services.UserService
	activityService *services.ActivityService
}

func NewUserHandler(userService *services.UserService, activityService *services.ActivityService) *UserHandler {
	return &UserHandler{
		userService:     userService,
		activityService: activityService,
	}
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// List returns all users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to get users"})
		return
	}
	c.JSON(200, gin.H{"users": users})
}

// Get returns a specific user.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user ID"})
		return
	}

	user, err := h.userService.Get(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, user)
}

// Create adds a user.
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.userService.Create(req.Email, req.Name, req.Password, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	actor, _ := middleware.Identity(c)
	h.activityService.Record(models.ActivityUserCreate, "created user "+user.Name, actor.ID, map[string]any{
		"target_user_id": user.ID,
	})

	c.JSON(201, user)
}

// Update edits a user's email, name or role.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.userService.Update(uint(id), req.Email, req.Name, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	actor, _ := middleware.Identity(c)
	h.activityService.Record(models.ActivityUserUpdate, "updated user "+user.Name, actor.ID, map[string]any{
		"target_user_id": user.ID,
	})

	c.JSON(200, user)
}

// SetEnabled enables or disables an account. Disabling also stops
// remember-me re-authentication.
func (h *UserHandler) SetEnabled(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user ID"})
		return
	}

	var req SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		c.JSON(400, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.userService.SetEnabled(uint(id), *req.Enabled)
	if err != nil {
		respondError(c, err)
		return
	}

	actor, _ := middleware.Identity(c)
	h.activityService.Record(models.ActivityUserUpdate, "changed account status for "+user.Name, actor.ID, map[string]any{
		"target_user_id": user.ID,
		"enabled":        user.Enabled,
	})

	c.JSON(200, user)
}

// ResetPassword sets a new password without checking the old one.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user ID"})
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.userService.ResetPassword(uint(id), req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{"message": "Password updated"})
}

// Delete removes a user and their comments.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.userService.Delete(uint(id)); err != nil {
		respondError(c, err)
		return
	}

	actor, _ := middleware.Identity(c)
	h.activityService.Record(models.ActivityUserDelete, "deleted user", actor.ID, map[string]any{
		"target_user_id": uint(id),
	})

	c.JSON(200, gin.H{"message": "User deleted"})
}
