package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/snapfeed/internal/client/api"
	"github.com/dmitrijs2005/snapfeed/internal/client/models"
)

var errUsage = errors.New("usage")

// Feed fetches and lists a page of the feed: "feed" for the first page,
// "feed <n>" for page n and "feed more" for the next one.
func (a *App) Feed(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		switch {
		case args[0] == "more":
			page = a.page + 1
		default:
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				printlnFn("Usage: feed [page|more]")
				return errUsage
			}
			page = n
		}
	}

	posts, err := a.posts.Feed(ctx, a.token(), page)
	if err != nil {
		a.alerts.Alert("Could not load feed", api.Message(err))
		return err
	}

	a.setListing(posts, page)
	a.printf("Feed, page %d\n", page)
	a.list()
	return nil
}

// setListing replaces the current listing. page is the feed page it came
// from, 0 when it is not a feed page.
func (a *App) setListing(posts []models.Post, page int) {
	a.shown = posts
	a.page = page
	a.view = nil
	a.viewOK = false
}

// listing returns the current listing reconciled with the broadcaster. It is
// only re-derived when the listing or the broadcaster revision changed.
func (a *App) listing() []models.Post {
	rev := a.feed.Revision()
	if !a.viewOK || rev != a.viewRev {
		a.view = a.feed.Reconcile(a.shown)
		a.viewRev = rev
		a.viewOK = true
	}
	return a.view
}

// list renders the current listing through the broadcaster.
func (a *App) list() {
	_, me := a.me()
	renderPosts(a.out, a.listing(), me)
}

// resolvePost turns a list number or a post id into the freshest known
// snapshot of that post.
func (a *App) resolvePost(ctx context.Context, ref string) (models.Post, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(a.shown) {
			return models.Post{}, fmt.Errorf("no post number %d in the current list", n)
		}
		return a.listing()[n-1].Clone(), nil
	}
	if p, ok := a.feed.GetUpdatedPost(ref); ok {
		return p, nil
	}
	for _, p := range a.shown {
		if p.ID == ref {
			return p, nil
		}
	}
	return a.posts.Get(ctx, a.token(), ref)
}

func (a *App) postArg(ctx context.Context, cmd string, args []string) (models.Post, error) {
	if len(args) == 0 {
		printlnFn(fmt.Sprintf("Usage: %s <n|id>", cmd))
		return models.Post{}, errUsage
	}
	p, err := a.resolvePost(ctx, args[0])
	if err != nil {
		a.alerts.Alert("Post not found", api.Message(err))
		return models.Post{}, err
	}
	return p, nil
}

// Show fetches a post and prints it in full.
func (a *App) Show(ctx context.Context, args []string) error {
	ref, err := a.postArg(ctx, "show", args)
	if err != nil {
		return err
	}

	// Prefer a fresh copy, fall back to what we know.
	post, err := a.posts.Get(ctx, a.token(), ref.ID)
	if err != nil {
		a.log.Debug(ctx, "showing cached post", "post_id", ref.ID, "error", err)
		post = ref
	} else if _, known := a.feed.GetUpdatedPost(post.ID); known {
		a.feed.UpdatePost(post)
	}

	_, me := a.me()
	renderPost(a.out, post, me)
	return nil
}

// Post asks for a description and media files and publishes a new post.
func (a *App) Post(ctx context.Context) error {
	description, err := GetMultiline(a.reader, "Enter description", a.out)
	if err != nil {
		return err
	}
	media, err := GetLines(a.reader, "Enter paths of images or videos to attach", a.out)
	if err != nil {
		return err
	}

	var problems []string
	if description == "" && len(media) == 0 {
		problems = append(problems, "A post needs a description or at least one media file")
	}
	for _, path := range media {
		if st, err := os.Stat(path); err != nil || st.IsDir() {
			problems = append(problems, fmt.Sprintf("%s: not a readable file", path))
		}
	}
	if len(problems) > 0 {
		a.alerts.Alert("Cannot create post", strings.Join(problems, "\n"))
		return errors.New(problems[0])
	}

	post, err := a.posts.Create(ctx, a.token(), description, media)
	if err != nil {
		a.alerts.Alert("Cannot create post", api.Message(err))
		return err
	}

	a.setListing(append([]models.Post{post}, a.shown...), a.page)
	a.printf("Posted %s\n", post.ID)
	return nil
}

// Like toggles the signed-in user's like on a post.
func (a *App) Like(ctx context.Context, args []string) error {
	post, err := a.postArg(ctx, "like", args)
	if err != nil {
		return err
	}
	_, me := a.me()

	updated, err := a.posts.ToggleLike(ctx, a.token(), post, me)
	if err != nil {
		a.alerts.Alert("Like failed", api.Message(err))
		return err
	}
	if updated.LikedBy(me) {
		a.printf("Liked %s (%d likes)\n", updated.ID, len(updated.Likes))
	} else {
		a.printf("Unliked %s (%d likes)\n", updated.ID, len(updated.Likes))
	}
	return nil
}

// Favorite toggles the signed-in user's favorite on a post.
func (a *App) Favorite(ctx context.Context, args []string) error {
	post, err := a.postArg(ctx, "fav", args)
	if err != nil {
		return err
	}
	_, me := a.me()

	updated, err := a.posts.ToggleFavorite(ctx, a.token(), post, me)
	if err != nil {
		a.alerts.Alert("Favorite failed", api.Message(err))
		return err
	}
	if updated.FavoritedBy(me) {
		a.printf("Saved %s to favorites\n", updated.ID)
	} else {
		a.printf("Removed %s from favorites\n", updated.ID)
	}
	return nil
}

// Comment adds a comment to a post. The text follows the post reference or
// is prompted for.
func (a *App) Comment(ctx context.Context, args []string) error {
	post, err := a.postArg(ctx, "comment", args)
	if err != nil {
		return err
	}

	text := strings.Join(args[1:], " ")
	if text == "" {
		if text, err = getSimpleText(a.reader, "Enter comment", a.out); err != nil {
			return err
		}
	}
	if strings.TrimSpace(text) == "" {
		a.alerts.Alert("Comment failed", "Comment cannot be empty")
		return errUsage
	}

	author, _ := a.me()
	updated, err := a.posts.AddComment(ctx, a.token(), post, author, text)
	if err != nil {
		a.alerts.Alert("Comment failed", api.Message(err))
		return err
	}
	a.printf("Commented on %s (%d comments)\n", updated.ID, len(updated.Comments))
	return nil
}
