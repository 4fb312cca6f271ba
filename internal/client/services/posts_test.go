package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/snapfeed/internal/client/api"
	"github.com/dmitrijs2005/snapfeed/internal/client/broadcast"
	"github.com/dmitrijs2005/snapfeed/internal/client/models"
	"github.com/dmitrijs2005/snapfeed/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostService(fc *fakeClient) (*PostService, *broadcast.Broadcaster) {
	b := broadcast.New()
	return NewPostService(fc, b, logging.Discard()), b
}

func stored(t *testing.T, b *broadcast.Broadcaster, id string) models.Post {
	t.Helper()
	p, ok := b.GetUpdatedPost(id)
	require.True(t, ok, "post %s not published", id)
	return p
}

func TestFeed(t *testing.T) {
	fc := &fakeClient{FeedRet: []models.Post{{ID: "p1"}, {ID: "p2"}}}
	s, b := newPostService(fc)

	posts, err := s.Feed(context.Background(), "T", 0)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, 1, fc.LastPage)
	assert.Equal(t, DefaultPageSize, fc.LastLimit)
	assert.Equal(t, "T", fc.LastToken)

	// Reads are not published.
	assert.Equal(t, uint64(0), b.Revision())
}

func TestFeed_Error(t *testing.T) {
	fc := &fakeClient{FeedErr: api.ErrUnavailable}
	s, _ := newPostService(fc)

	_, err := s.Feed(context.Background(), "T", 2)
	assert.ErrorIs(t, err, api.ErrUnavailable)
	assert.Equal(t, 2, fc.LastPage)
}

func TestGet(t *testing.T) {
	fc := &fakeClient{GetPostRet: models.Post{ID: "p1"}}
	s, _ := newPostService(fc)

	p, err := s.Get(context.Background(), "T", "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	fc.GetPostErr = api.ErrNotFound
	_, err = s.Get(context.Background(), "T", "p9")
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestCreate_PublishesServerCopy(t *testing.T) {
	fc := &fakeClient{CreateRet: models.Post{ID: "new", Description: "hi"}}
	s, b := newPostService(fc)

	p, err := s.Create(context.Background(), "T", "hi", []string{"a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "new", p.ID)
	assert.Equal(t, []string{"a.jpg"}, fc.LastMedia)
	assert.Equal(t, "hi", stored(t, b, "new").Description)
}

func TestCreate_Error(t *testing.T) {
	fc := &fakeClient{CreateErr: errors.New("too large")}
	s, b := newPostService(fc)

	_, err := s.Create(context.Background(), "T", "hi", nil)
	require.Error(t, err)
	assert.Equal(t, uint64(0), b.Revision())
}

func TestToggleLike_OptimisticThenConfirmed(t *testing.T) {
	original := models.Post{ID: "p1", Likes: []string{"a"}}
	fc := &fakeClient{LikeRet: models.Post{ID: "p1", Likes: []string{"a", "me"}, Description: "server"}}
	s, b := newPostService(fc)

	fc.InFlight = func() {
		assert.Equal(t, []string{"a", "me"}, stored(t, b, "p1").Likes)
		assert.Empty(t, stored(t, b, "p1").Description)
	}

	got, err := s.ToggleLike(context.Background(), "T", original, "me")
	require.NoError(t, err)
	assert.Equal(t, 1, fc.MutationsCalled)
	assert.Equal(t, "server", got.Description)
	assert.Equal(t, "server", stored(t, b, "p1").Description)
	assert.Equal(t, []string{"a"}, original.Likes)
}

func TestToggleLike_Unlike(t *testing.T) {
	fc := &fakeClient{}
	s, b := newPostService(fc)

	fc.InFlight = func() {
		assert.Empty(t, stored(t, b, "p1").Likes)
	}
	got, err := s.ToggleLike(context.Background(), "T", models.Post{ID: "p1", Likes: []string{"me"}}, "me")
	require.NoError(t, err)
	// Empty server answer keeps the prediction.
	assert.Empty(t, got.Likes)
	assert.Equal(t, "p1", got.ID)
}

func TestToggleLike_RevertedOnError(t *testing.T) {
	original := models.Post{ID: "p1", Likes: []string{"a"}}
	fc := &fakeClient{LikeErr: api.ErrUnavailable}
	s, b := newPostService(fc)

	got, err := s.ToggleLike(context.Background(), "T", original, "me")

	assert.ErrorIs(t, err, api.ErrUnavailable)
	assert.Equal(t, original, got)
	assert.Equal(t, []string{"a"}, stored(t, b, "p1").Likes)
	assert.Equal(t, uint64(2), b.Revision())
}

func TestToggleLike_NoID(t *testing.T) {
	fc := &fakeClient{}
	s, b := newPostService(fc)

	_, err := s.ToggleLike(context.Background(), "T", models.Post{}, "me")
	assert.ErrorIs(t, err, ErrNoPostID)
	assert.Zero(t, fc.MutationsCalled)
	assert.Equal(t, uint64(0), b.Revision())
}

func TestToggleFavorite(t *testing.T) {
	fc := &fakeClient{FavoriteRet: models.Post{ID: "p1", Favorites: []string{"me"}}}
	s, b := newPostService(fc)

	fc.InFlight = func() {
		assert.Equal(t, []string{"me"}, stored(t, b, "p1").Favorites)
	}
	got, err := s.ToggleFavorite(context.Background(), "T", models.Post{ID: "p1"}, "me")
	require.NoError(t, err)
	assert.True(t, got.FavoritedBy("me"))

	fc.FavoriteErr = errors.New("boom")
	_, err = s.ToggleFavorite(context.Background(), "T", got, "me")
	require.Error(t, err)
	assert.Equal(t, []string{"me"}, stored(t, b, "p1").Favorites)
}

func TestAddComment_Provisional(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	confirmed := models.Post{ID: "p1", Comments: []models.Comment{{ID: "c1", Comment: "nice"}}}
	fc := &fakeClient{CommentRet: confirmed}
	s, b := newPostService(fc)
	s.now = func() time.Time { return now }

	fc.InFlight = func() {
		p := stored(t, b, "p1")
		require.Len(t, p.Comments, 1)
		c := p.Comments[0]
		assert.True(t, strings.HasPrefix(c.ID, ProvisionalPrefix))
		assert.Equal(t, "nice", c.Comment)
		assert.Equal(t, "me@x.com", c.User.Email())
		assert.True(t, c.CreatedAt.Equal(now))
	}

	got, err := s.AddComment(context.Background(), "T", models.Post{ID: "p1"}, models.User{"email": "me@x.com"}, "  nice ")
	require.NoError(t, err)
	assert.Equal(t, "nice", fc.LastText)
	assert.Equal(t, "c1", got.Comments[0].ID)
	assert.Equal(t, "c1", stored(t, b, "p1").Comments[0].ID)
}

func TestAddComment_RevertedOnError(t *testing.T) {
	fc := &fakeClient{CommentErr: errors.New("boom")}
	s, b := newPostService(fc)

	_, err := s.AddComment(context.Background(), "T", models.Post{ID: "p1"}, models.User{"email": "me@x.com"}, "nice")
	require.Error(t, err)
	assert.Empty(t, stored(t, b, "p1").Comments)
}

func TestAddComment_Empty(t *testing.T) {
	fc := &fakeClient{}
	s, _ := newPostService(fc)

	_, err := s.AddComment(context.Background(), "T", models.Post{ID: "p1"}, nil, "   ")
	assert.ErrorIs(t, err, ErrEmptyComment)
	assert.Zero(t, fc.MutationsCalled)
}
