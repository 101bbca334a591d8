package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/middleware"
)

type ModerationHandler struct {
	moderation Moderation
	responder
}

func (h *ModerationHandler) ApprovePost(c *gin.Context) {
	post, err := h.moderation.Approve(c.Request.Context(), middleware.Identity(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *ModerationHandler) RejectPost(c *gin.Context) {
	post, err := h.moderation.Reject(c.Request.Context(), middleware.Identity(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
