package models

import (
	"slices"
	"time"
)

// MediaType tells images and videos apart.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

type Media struct {
	URL  string    `json:"url"`
	Type MediaType `json:"type"`
}

type Comment struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post is a snapshot of one post as last seen from the backend or produced by
// an optimistic mutation. Likes and Favorites hold user ids.
type Post struct {
	ID          string    `json:"id"`
	Author      User      `json:"author,omitempty"`
	Description string    `json:"description"`
	Media       []Media   `json:"media,omitempty"`
	Likes       []string  `json:"likes"`
	Favorites   []string  `json:"favorites,omitempty"`
	Comments    []Comment `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Clone returns a deep copy so that no slice is shared with p.
func (p Post) Clone() Post {
	c := p
	c.Author = p.Author.Clone()
	c.Media = slices.Clone(p.Media)
	c.Likes = slices.Clone(p.Likes)
	c.Favorites = slices.Clone(p.Favorites)
	if p.Comments != nil {
		c.Comments = make([]Comment, len(p.Comments))
		for i, cm := range p.Comments {
			cm.User = cm.User.Clone()
			c.Comments[i] = cm
		}
	}
	return c
}

func (p Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

func (p Post) FavoritedBy(userID string) bool {
	return slices.Contains(p.Favorites, userID)
}

// WithLikeToggled returns a copy of p with userID added to or removed from Likes.
func (p Post) WithLikeToggled(userID string) Post {
	c := p.Clone()
	c.Likes = toggle(c.Likes, userID)
	return c
}

// WithFavoriteToggled returns a copy of p with userID added to or removed
// from Favorites.
func (p Post) WithFavoriteToggled(userID string) Post {
	c := p.Clone()
	c.Favorites = toggle(c.Favorites, userID)
	return c
}

// WithComment returns a copy of p with cm appended.
func (p Post) WithComment(cm Comment) Post {
	c := p.Clone()
	c.Comments = append(c.Comments, cm)
	return c
}

func toggle(ids []string, id string) []string {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return append(ids, id)
}
