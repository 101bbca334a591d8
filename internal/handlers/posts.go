package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/middleware"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/service"
)

type PostHandler struct {
	queries      Queries
	editor       Editor
	moderation   Moderation
	interactions Interactions
	responder
}

// GetPosts returns every post, optionally filtered by ?status= and ?q=.
func (h *PostHandler) GetPosts(c *gin.Context) {
	posts, err := h.queries.ListAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, service.Search(posts, c.Query("q")))
}

// GetFeed returns approved posts, newest first.
func (h *PostHandler) GetFeed(c *gin.Context) {
	posts, err := h.queries.ListApproved(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, service.Search(posts, c.Query("q")))
}

func (h *PostHandler) GetPostsByStatus(c *gin.Context) {
	posts, err := h.moderation.ListByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.queries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost submits a report for moderation (PROTECTED)
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if !h.bindJSON(c, &req) {
		return
	}

	post, err := h.moderation.Submit(c.Request.Context(), middleware.Identity(c), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost edits descriptive fields; status, likes and comments are refused.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	var req models.UpdatePostRequest
	if !h.bindJSON(c, &req) {
		return
	}

	post, err := h.editor.Update(c.Request.Context(), middleware.Identity(c), c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.editor.Delete(c.Request.Context(), middleware.Identity(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// LikePost toggles the caller's like. A body userId, when sent, must match
// the authenticated user.
func (h *PostHandler) LikePost(c *gin.Context) {
	var req models.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(c, apperrors.Wrap(apperrors.ErrValidation, bindingMessage(err), err))
		return
	}

	actor := middleware.Identity(c)
	if err := checkBodyUser(req.UserID, actor.UserID); err != nil {
		h.fail(c, err)
		return
	}

	post, err := h.interactions.ToggleLike(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func checkBodyUser(bodyUserID, actorID string) error {
	if bodyUserID != "" && bodyUserID != actorID {
		return apperrors.Forbidden("userId does not match the authenticated user")
	}
	return nil
}
