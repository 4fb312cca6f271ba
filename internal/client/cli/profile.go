package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/snapfeed/internal/client/api"
	"github.com/dmitrijs2005/snapfeed/internal/client/models"
)

// Profile shows a user's profile, the signed-in user's by default. The
// profile's posts become the current listing.
func (a *App) Profile(ctx context.Context, args []string) error {
	_, me := a.me()
	userID := me
	if len(args) > 0 {
		userID = args[0]
	}

	p, err := a.profiles.Get(ctx, a.token(), userID)
	if err != nil {
		a.alerts.Alert("Could not load profile", api.Message(err))
		return err
	}

	renderProfile(a.out, p, me)
	if len(p.Posts) > 0 {
		a.setListing(p.Posts, 0)
		a.list()
	}
	return nil
}

// Follow toggles following a user.
func (a *App) Follow(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: follow <user-id>")
		return errUsage
	}
	userID := args[0]
	_, me := a.me()

	p, ok := a.profiles.Cached(userID)
	if !ok {
		var err error
		if p, err = a.profiles.Get(ctx, a.token(), userID); err != nil {
			a.alerts.Alert("Follow failed", api.Message(err))
			return err
		}
	}
	if p.User.ID() == "" {
		// The backend may omit the id on the profile it was fetched by.
		p.User = p.User.Clone()
		if p.User == nil {
			p.User = models.User{}
		}
		p.User["id"] = userID
	}

	updated, err := a.profiles.ToggleFollow(ctx, a.token(), p, me)
	if err != nil {
		a.alerts.Alert("Follow failed", api.Message(err))
		return err
	}
	if updated.FollowedBy(me) {
		a.printf("Now following %s\n", updated.User.Display())
	} else {
		a.printf("Unfollowed %s\n", updated.User.Display())
	}
	return nil
}

// Search lists users matching the query.
func (a *App) Search(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	if query == "" {
		printlnFn("Usage: search <query>")
		return errUsage
	}

	users, err := a.profiles.Search(ctx, a.token(), query)
	if err != nil {
		a.alerts.Alert("Search failed", api.Message(err))
		return err
	}
	renderUsers(a.out, users)
	return nil
}
