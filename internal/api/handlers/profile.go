package handlers

import (
	"koyomi/internal/api/middleware"
	"koyomi/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	userService *services.UserService
}

func NewProfileHandler(userService *services.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

type UpdateProfileRequest struct {
	Name       string `json:"name"`
	Bio        string `json:"bio"`
	AvatarPath string `json:"avatarPath"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// Get returns the caller's full profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(401, gin.H{"error": "Authentication required"})
		return
	}

	user, err := h.userService.Get(identity.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, user)
}

// Update edits the caller's own display fields.
func (h *ProfileHandler) Update(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(401, gin.H{"error": "Authentication required"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(identity.ID, req.Name, req.Bio, req.AvatarPath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, user)
}

// ChangePassword verifies the current password before replacing it.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		c.JSON(401, gin.H{"error": "Authentication required"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.userService.ChangePassword(identity.ID, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Password updated"})
}
