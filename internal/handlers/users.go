package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/middleware"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

type UserHandler struct {
	accounts Accounts
	responder
}

// GetProfile returns the authenticated user's profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.accounts.Profile(c.Request.Context(), middleware.Identity(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.accounts.UpdateProfile(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

// UpdateUser is UpdateProfile addressed by user id. Only the caller's own id
// is accepted.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	if c.Param("id") != middleware.Identity(c).UserID {
		h.fail(c, apperrors.Forbidden("You can only update your own profile"))
		return
	}
	h.UpdateProfile(c)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.accounts.ChangePassword(c.Request.Context(), middleware.Identity(c), req); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
