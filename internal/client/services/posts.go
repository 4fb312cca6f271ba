package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/snapfeed/internal/client/models"
	"github.com/dmitrijs2005/snapfeed/internal/logging"
	"github.com/google/uuid"
)

// DefaultPageSize is the number of posts fetched per feed page.
const DefaultPageSize = 10

// ProvisionalPrefix marks ids generated locally before the server assigns one.
const ProvisionalPrefix = "tmp-"

var (
	ErrEmptyComment = errors.New("comment is empty")
	ErrNoPostID     = errors.New("post has no id")
)

// PostClient is the subset of the backend API used for posts.
type PostClient interface {
	Feed(ctx context.Context, token string, page, limit int) ([]models.Post, error)
	GetPost(ctx context.Context, token, postID string) (models.Post, error)
	CreatePost(ctx context.Context, token, description string, mediaPaths []string) (models.Post, error)
	LikePost(ctx context.Context, token, postID string) (models.Post, error)
	CommentPost(ctx context.Context, token, postID, text string) (models.Post, error)
	FavoritePost(ctx context.Context, token, postID string) (models.Post, error)
}

// Publisher receives every post snapshot a mutation produces.
type Publisher interface {
	UpdatePost(post models.Post)
}

type PostService struct {
	client   PostClient
	posts    Publisher
	log      logging.Logger
	pageSize int
	now      func() time.Time
}

func NewPostService(client PostClient, posts Publisher, log logging.Logger) *PostService {
	return &PostService{
		client:   client,
		posts:    posts,
		log:      log.With("component", "posts"),
		pageSize: DefaultPageSize,
		now:      time.Now,
	}
}

// Feed returns one page of the signed-in user's feed. Pages start at 1.
func (s *PostService) Feed(ctx context.Context, token string, page int) ([]models.Post, error) {
	if page < 1 {
		page = 1
	}
	posts, err := s.client.Feed(ctx, token, page, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("feed error: %w", err)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, token, postID string) (models.Post, error) {
	post, err := s.client.GetPost(ctx, token, postID)
	if err != nil {
		return models.Post{}, fmt.Errorf("get post error: %w", err)
	}
	return post, nil
}

// Create uploads a new post and publishes the server's copy.
func (s *PostService) Create(ctx context.Context, token, description string, mediaPaths []string) (models.Post, error) {
	post, err := s.client.CreatePost(ctx, token, description, mediaPaths)
	if err != nil {
		return models.Post{}, fmt.Errorf("create post error: %w", err)
	}
	s.posts.UpdatePost(post)
	return post, nil
}

// ToggleLike adds or removes userID from the post's likes.
func (s *PostService) ToggleLike(ctx context.Context, token string, post models.Post, userID string) (models.Post, error) {
	return s.mutate(ctx, "like", post, post.WithLikeToggled(userID), func() (models.Post, error) {
		return s.client.LikePost(ctx, token, post.ID)
	})
}

// ToggleFavorite adds or removes userID from the post's favorites.
func (s *PostService) ToggleFavorite(ctx context.Context, token string, post models.Post, userID string) (models.Post, error) {
	return s.mutate(ctx, "favorite", post, post.WithFavoriteToggled(userID), func() (models.Post, error) {
		return s.client.FavoritePost(ctx, token, post.ID)
	})
}

// AddComment appends text as author. Until the server answers the comment
// carries a provisional id.
func (s *PostService) AddComment(ctx context.Context, token string, post models.Post, author models.User, text string) (models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return post, ErrEmptyComment
	}

	provisional := models.Comment{
		ID:        ProvisionalPrefix + uuid.NewString(),
		User:      author.Clone(),
		Comment:   text,
		CreatedAt: s.now(),
	}
	return s.mutate(ctx, "comment", post, post.WithComment(provisional), func() (models.Post, error) {
		return s.client.CommentPost(ctx, token, post.ID, text)
	})
}

// mutate publishes optimistic, runs call and then publishes either the
// server's snapshot or original again.
func (s *PostService) mutate(ctx context.Context, op string, original, optimistic models.Post, call func() (models.Post, error)) (models.Post, error) {
	if original.ID == "" {
		return original, ErrNoPostID
	}

	s.posts.UpdatePost(optimistic)

	confirmed, err := call()
	if err != nil {
		s.log.Warn(ctx, "reverting optimistic update", "op", op, "post_id", original.ID, "error", err)
		s.posts.UpdatePost(original)
		return original, fmt.Errorf("%s error: %w", op, err)
	}

	// Some backends answer with an empty body; keep the prediction then.
	if confirmed.ID == "" {
		confirmed = optimistic
	}
	s.posts.UpdatePost(confirmed)
	return confirmed, nil
}
