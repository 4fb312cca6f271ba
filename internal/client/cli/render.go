package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/snapfeed/internal/client/models"
	"github.com/dmitrijs2005/snapfeed/internal/client/services"
)

const descriptionPreview = 60

func mark(on bool, s string) string {
	if on {
		return s
	}
	return ""
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > descriptionPreview {
		return string(r[:descriptionPreview-3]) + "..."
	}
	return s
}

func authorOf(p models.Post) string {
	if name := p.Author.Display(); name != "" {
		return name
	}
	return "unknown"
}

// renderPostLine prints one list entry. n is the number the user types to
// refer to the post.
func renderPostLine(w io.Writer, n int, p models.Post, me string) {
	fmt.Fprintf(w, "[%d] %s by %s | likes %d%s | comments %d%s | %s\n",
		n, p.ID, authorOf(p),
		len(p.Likes), mark(p.LikedBy(me), " (you)"),
		len(p.Comments), mark(p.FavoritedBy(me), " | saved"),
		preview(p.Description))
}

func renderPosts(w io.Writer, posts []models.Post, me string) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts yet")
		return
	}
	for i, p := range posts {
		renderPostLine(w, i+1, p, me)
	}
}

func renderPost(w io.Writer, p models.Post, me string) {
	fmt.Fprintf(w, "Post %s by %s", p.ID, authorOf(p))
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(w, " on %s", p.CreatedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintln(w)
	if p.Description != "" {
		fmt.Fprintf(w, "  %s\n", p.Description)
	}
	for _, m := range p.Media {
		fmt.Fprintf(w, "  [%s] %s\n", m.Type, m.URL)
	}
	fmt.Fprintf(w, "  likes %d%s, favorites %d%s\n",
		len(p.Likes), mark(p.LikedBy(me), " (you)"),
		len(p.Favorites), mark(p.FavoritedBy(me), " (you)"))

	if len(p.Comments) == 0 {
		fmt.Fprintln(w, "  no comments")
		return
	}
	fmt.Fprintf(w, "  comments (%d):\n", len(p.Comments))
	for _, c := range p.Comments {
		pending := mark(strings.HasPrefix(c.ID, services.ProvisionalPrefix), " (sending)")
		fmt.Fprintf(w, "    %s: %s%s\n", c.User.Display(), c.Comment, pending)
	}
}

func renderProfile(w io.Writer, p models.Profile, me string) {
	fmt.Fprintf(w, "%s", p.User.Display())
	if email := p.User.Email(); email != "" {
		fmt.Fprintf(w, " <%s>", email)
	}
	if id := p.User.ID(); id != "" {
		fmt.Fprintf(w, " id=%s", id)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  followers %d%s, following %d, posts %d\n",
		len(p.Followers), mark(p.FollowedBy(me), " (you follow)"),
		len(p.Following), len(p.Posts))
}

func renderUsers(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found")
		return
	}
	for i, u := range users {
		fmt.Fprintf(w, "[%d] %s", i+1, u.Display())
		if id := u.ID(); id != "" {
			fmt.Fprintf(w, " id=%s", id)
		}
		if email := u.Email(); email != "" {
			fmt.Fprintf(w, " <%s>", email)
		}
		fmt.Fprintln(w)
	}
}
