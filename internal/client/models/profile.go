package models

import "slices"

// Profile is a user page: the user, their follow graph and their posts.
type Profile struct {
	User      User     `json:"user"`
	Followers []string `json:"followers"`
	Following []string `json:"following"`
	Posts     []Post   `json:"posts,omitempty"`
}

func (p Profile) Clone() Profile {
	c := p
	c.User = p.User.Clone()
	c.Followers = slices.Clone(p.Followers)
	c.Following = slices.Clone(p.Following)
	if p.Posts != nil {
		c.Posts = make([]Post, len(p.Posts))
		for i, post := range p.Posts {
			c.Posts[i] = post.Clone()
		}
	}
	return c
}

func (p Profile) FollowedBy(userID string) bool {
	return slices.Contains(p.Followers, userID)
}

// WithFollowToggled returns a copy of p with userID added to or removed from
// Followers.
func (p Profile) WithFollowToggled(userID string) Profile {
	c := p.Clone()
	c.Followers = toggle(c.Followers, userID)
	return c
}
