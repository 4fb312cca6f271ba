package api

import (
	"context"

	"github.com/dmitrijs2005/snapfeed/internal/client/models"
)

// SignInResponse is the backend's answer to a sign-in. Token is empty when
// the backend declined without an error status.
type SignInResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type Client interface {
	SignIn(ctx context.Context, creds models.Credentials) (*SignInResponse, error)
	SignUp(ctx context.Context, form models.SignUpForm) (models.User, error)

	Feed(ctx context.Context, token string, page, limit int) ([]models.Post, error)
	GetPost(ctx context.Context, token, postID string) (models.Post, error)
	CreatePost(ctx context.Context, token, description string, mediaPaths []string) (models.Post, error)
	LikePost(ctx context.Context, token, postID string) (models.Post, error)
	CommentPost(ctx context.Context, token, postID, text string) (models.Post, error)
	FavoritePost(ctx context.Context, token, postID string) (models.Post, error)

	GetProfile(ctx context.Context, token, userID string) (models.Profile, error)
	FollowUser(ctx context.Context, token, userID string) (models.Profile, error)
	SearchUsers(ctx context.Context, token, query string) ([]models.User, error)
}
