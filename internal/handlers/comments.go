package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/middleware"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

type CommentHandler struct {
	interactions Interactions
	responder
}

// CreateComment appends a comment to a post and returns the updated post
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req models.CreateCommentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	actor := middleware.Identity(c)
	if err := checkBodyUser(req.UserID, actor.UserID); err != nil {
		h.fail(c, err)
		return
	}

	post, err := h.interactions.AddComment(c.Request.Context(), actor, c.Param("id"), req.Text, req.ProfileImage)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}
