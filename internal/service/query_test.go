package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/auth"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

func postAt(title string, created time.Time) models.Post {
	return models.Post{ID: uuid.NewString(), Title: title, CreatedAt: created}
}

func titles(posts []models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Title)
	}
	return out
}

func TestSortByRecency(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	posts := []models.Post{
		postAt("A", t1),
		postAt("B", t2),
		postAt("C", t1),
		postAt("D", t2),
	}
	SortByRecency(posts)

	assert.Equal(t, []string{"B", "D", "A", "C"}, titles(posts))
}

func TestSearch(t *testing.T) {
	posts := []models.Post{
		{Title: "River overflow", Description: "Water rising", Category: "Floods", Location: "Riverside"},
		{Title: "Tremor", Description: "Buildings shook", Category: "Earthquake", Location: "Galle"},
		{Title: "Heat", Description: "Dry season wildfire", Category: "Fire", Location: "Hill Country"},
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"floo", []string{"River overflow"}},
		{"FLOO", []string{"River overflow"}},
		{"shook", []string{"Tremor"}},
		{"galle", []string{"Tremor"}},
		{"tremor", []string{"Tremor"}},
		{"r", []string{"River overflow", "Tremor", "Heat"}},
		{"zzz", []string{}},
		{"", []string{"River overflow", "Tremor", "Heat"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(Search(posts, tt.query)))
		})
	}
}

func TestListApprovedOnlyApproved(t *testing.T) {
	ctx := context.Background()
	store := newMemPostStore()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	statuses := []models.PostStatus{models.StatusApproved, models.StatusPending, models.StatusApproved, models.StatusRejected}
	for i, status := range statuses {
		require.NoError(t, store.Create(ctx, &models.Post{
			Title:     string(status) + string(rune('0'+i)),
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	feed, err := NewQueryService(store).ListApproved(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"approved2", "approved0"}, titles(feed))
}

func TestListAllFilter(t *testing.T) {
	ctx := context.Background()
	store := newMemPostStore()
	for _, status := range []models.PostStatus{models.StatusApproved, models.StatusPending, models.StatusRejected} {
		require.NoError(t, store.Create(ctx, &models.Post{Title: string(status), Status: status}))
	}
	svc := NewQueryService(store)

	tests := []struct {
		filter string
		want   int
	}{
		{"", 3},
		{"All", 3},
		{"all", 3},
		{"pending", 1},
		{"Approved", 1},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			posts, err := svc.ListAll(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, posts, tt.want)
		})
	}

	_, err := svc.ListAll(ctx, "archived")
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	store := newMemPostStore()
	post := seedPost(t, store)
	svc := NewQueryService(store)

	found, err := svc.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, found.Title)

	_, err = svc.Get(ctx, "bogus")
	assert.Equal(t, apperrors.ErrNotFound, apperrors.CodeOf(err))
}

func TestUpcomingExpiresAfterDisasterDate(t *testing.T) {
	ctx := context.Background()
	store := newMemPostStore()
	moderation := NewModerationService(store, &recordingNotifier{}, zap.NewNop())
	queries := NewQueryService(store)

	submitted := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	moderation.now = fixedClock(submitted)
	queries.now = fixedClock(submitted)

	req := validReport()
	date := submitted.Add(time.Hour)
	req.DisasterDate = &date
	post, err := moderation.Submit(ctx, alice, req)
	require.NoError(t, err)
	assert.True(t, post.IsUpcoming)

	got, err := queries.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, got.IsUpcoming)

	queries.now = fixedClock(date.Add(time.Minute))
	got, err = queries.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, got.IsUpcoming)

	all, err := queries.ListAll(ctx, FilterAll)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsUpcoming)

	moderation.now = fixedClock(date.Add(time.Minute))
	approved, err := moderation.Approve(ctx, admin, post.ID)
	require.NoError(t, err)
	assert.False(t, approved.IsUpcoming)
}

func TestReportLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newMemPostStore()
	moderation := NewModerationService(store, &recordingNotifier{}, zap.NewNop())
	interactions := NewInteractionService(store, zap.NewNop())
	queries := NewQueryService(store)

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	moderation.now = fixedClock(base)
	older, err := moderation.Submit(ctx, alice, models.CreatePostRequest{
		Title: "Older", Description: "Earlier report", Category: "Storm", Location: "Jaffna",
	})
	require.NoError(t, err)
	_, err = moderation.Approve(ctx, admin, older.ID)
	require.NoError(t, err)

	moderation.now = fixedClock(base.Add(time.Hour))
	post, err := moderation.Submit(ctx, alice, models.CreatePostRequest{
		Title: "River overflow", Description: "Water rising", Category: "Floods", Location: "Riverside",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, post.Status)

	feed, err := queries.ListApproved(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Older"}, titles(feed))

	_, err = moderation.Approve(ctx, admin, post.ID)
	require.NoError(t, err)

	feed, err = queries.ListApproved(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"River overflow", "Older"}, titles(feed))
	assert.Equal(t, []string{"River overflow"}, titles(Search(feed, "floo")))

	u1 := auth.Identity{UserID: uuid.NewString(), Username: "u1"}
	liked, err := interactions.ToggleLike(ctx, u1, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{u1.UserID}, []string(liked.Likes))

	unliked, err := interactions.ToggleLike(ctx, u1, post.ID)
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)
}
