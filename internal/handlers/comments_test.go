package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

func TestCreateComment(t *testing.T) {
	f := newFixture(&tester)
	f.interactions.On("AddComment", tester, postID, "Stay safe", "https://img.example/p.png").
		Return(&models.Post{ID: postID, Comments: []models.Comment{{ID: 1, Text: "Stay safe"}}}, nil)

	w := f.do(http.MethodPost, "/posts/"+postID+"/comment",
		`{"userId":"`+tester.UserID+`","text":"Stay safe","profileImage":"https://img.example/p.png"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"text":"Stay safe"`)
	f.interactions.AssertExpectations(t)
}

func TestCreateCommentBlankText(t *testing.T) {
	f := newFixture(&tester)
	f.interactions.On("AddComment", tester, postID, "   ", "").
		Return(nil, apperrors.Validation("Comment text is required"))

	w := f.do(http.MethodPost, "/posts/"+postID+"/comment", `{"text":"   "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Comment text is required", decodeError(t, w).Message)
}

func TestCreateCommentRejectsOtherUser(t *testing.T) {
	f := newFixture(&tester)

	w := f.do(http.MethodPost, "/posts/"+postID+"/comment", `{"userId":"intruder","text":"hi"}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
	f.interactions.AssertNotCalled(t, "AddComment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
