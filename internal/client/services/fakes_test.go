package services

import (
	"context"

	"github.com/dmitrijs2005/snapfeed/internal/client/models"
)

// fakeClient implements PostClient and ProfileClient for unit tests.
type fakeClient struct {
	FeedRet []models.Post
	FeedErr error

	GetPostRet models.Post
	GetPostErr error

	CreateRet models.Post
	CreateErr error

	LikeRet models.Post
	LikeErr error

	CommentRet models.Post
	CommentErr error

	FavoriteRet models.Post
	FavoriteErr error

	ProfileRet models.Profile
	ProfileErr error

	FollowRet models.Profile
	FollowErr error

	SearchRet []models.User
	SearchErr error

	// InFlight runs while a mutation request is outstanding.
	InFlight func()

	LastToken       string
	LastPostID      string
	LastPage        int
	LastLimit       int
	LastText        string
	LastMedia       []string
	LastUserID      string
	LastQuery       string
	MutationsCalled int
}

func (f *fakeClient) inFlight() {
	f.MutationsCalled++
	if f.InFlight != nil {
		f.InFlight()
	}
}

func (f *fakeClient) Feed(_ context.Context, token string, page, limit int) ([]models.Post, error) {
	f.LastToken, f.LastPage, f.LastLimit = token, page, limit
	return f.FeedRet, f.FeedErr
}

func (f *fakeClient) GetPost(_ context.Context, token, postID string) (models.Post, error) {
	f.LastToken, f.LastPostID = token, postID
	return f.GetPostRet, f.GetPostErr
}

func (f *fakeClient) CreatePost(_ context.Context, token, description string, mediaPaths []string) (models.Post, error) {
	f.LastToken, f.LastText, f.LastMedia = token, description, mediaPaths
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) LikePost(_ context.Context, token, postID string) (models.Post, error) {
	f.LastToken, f.LastPostID = token, postID
	f.inFlight()
	return f.LikeRet, f.LikeErr
}

func (f *fakeClient) CommentPost(_ context.Context, token, postID, text string) (models.Post, error) {
	f.LastToken, f.LastPostID, f.LastText = token, postID, text
	f.inFlight()
	return f.CommentRet, f.CommentErr
}

func (f *fakeClient) FavoritePost(_ context.Context, token, postID string) (models.Post, error) {
	f.LastToken, f.LastPostID = token, postID
	f.inFlight()
	return f.FavoriteRet, f.FavoriteErr
}

func (f *fakeClient) GetProfile(_ context.Context, token, userID string) (models.Profile, error) {
	f.LastToken, f.LastUserID = token, userID
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) FollowUser(_ context.Context, token, userID string) (models.Profile, error) {
	f.LastToken, f.LastUserID = token, userID
	f.inFlight()
	return f.FollowRet, f.FollowErr
}

func (f *fakeClient) SearchUsers(_ context.Context, token, query string) ([]models.User, error) {
	f.LastToken, f.LastQuery = token, query
	return f.SearchRet, f.SearchErr
}
