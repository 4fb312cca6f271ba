package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/snapfeed/internal/client/models"
	"github.com/dmitrijs2005/snapfeed/internal/logging"
)

var ErrEmptyQuery = errors.New("search query is empty")

// ProfileClient is the subset of the backend API used for profiles.
type ProfileClient interface {
	GetProfile(ctx context.Context, token, userID string) (models.Profile, error)
	FollowUser(ctx context.Context, token, userID string) (models.Profile, error)
	SearchUsers(ctx context.Context, token, query string) ([]models.User, error)
}

// ProfileService keeps the last known copy of each visited profile so that
// a follow can be shown before the server confirms it.
type ProfileService struct {
	client ProfileClient
	log    logging.Logger

	mu       sync.RWMutex
	profiles map[string]models.Profile
}

func NewProfileService(client ProfileClient, log logging.Logger) *ProfileService {
	return &ProfileService{
		client:   client,
		log:      log.With("component", "profiles"),
		profiles: make(map[string]models.Profile),
	}
}

func (s *ProfileService) Get(ctx context.Context, token, userID string) (models.Profile, error) {
	p, err := s.client.GetProfile(ctx, token, userID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("get profile error: %w", err)
	}
	s.remember(userID, p)
	return p, nil
}

// Cached returns the last known copy of the profile of userID.
func (s *ProfileService) Cached(userID string) (models.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return models.Profile{}, false
	}
	return p.Clone(), true
}

func (s *ProfileService) remember(userID string, p models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[userID] = p.Clone()
}

// ToggleFollow makes followerID follow or unfollow the owner of profile.
func (s *ProfileService) ToggleFollow(ctx context.Context, token string, profile models.Profile, followerID string) (models.Profile, error) {
	target := profile.User.ID()
	if target == "" {
		return profile, errors.New("profile has no user id")
	}

	s.remember(target, profile.WithFollowToggled(followerID))

	confirmed, err := s.client.FollowUser(ctx, token, target)
	if err != nil {
		s.log.Warn(ctx, "reverting optimistic follow", "user_id", target, "error", err)
		s.remember(target, profile)
		return profile, fmt.Errorf("follow error: %w", err)
	}
	if confirmed.User == nil {
		confirmed = profile.WithFollowToggled(followerID)
	}
	s.remember(target, confirmed)
	return confirmed, nil
}

func (s *ProfileService) Search(ctx context.Context, token, query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	users, err := s.client.SearchUsers(ctx, token, query)
	if err != nil {
		return nil, fmt.Errorf("search error: %w", err)
	}
	return users, nil
}
