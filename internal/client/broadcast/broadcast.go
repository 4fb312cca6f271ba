// Package broadcast keeps the latest known snapshot of every post that some
// part of the client has fetched or mutated, so that other views showing the
// same post can reconcile without a re-fetch.
//
// There are no listeners. Views re-derive their lists through Reconcile
// whenever Revision has moved since they last looked.
package broadcast

import (
	"sync"

	"github.com/dmitrijs2005/snapfeed/internal/client/models"
)

type Broadcaster struct {
	mu    sync.RWMutex
	posts map[string]models.Post
	rev   uint64
}

func New() *Broadcaster {
	return &Broadcaster{posts: make(map[string]models.Post)}
}

// UpdatePost stores post under its id, replacing whatever was there. Posts
// without an id are ignored.
func (b *Broadcaster) UpdatePost(post models.Post) {
	if post.ID == "" {
		return
	}
	snapshot := post.Clone()

	b.mu.Lock()
	defer b.mu.Unlock()

	b.posts[post.ID] = snapshot
	b.rev++
}

func (b *Broadcaster) GetUpdatedPost(id string) (models.Post, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	p, ok := b.posts[id]
	if !ok {
		return models.Post{}, false
	}
	return p.Clone(), true
}

// Revision increases on every stored update.
func (b *Broadcaster) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rev
}

// Reconcile returns local with every post replaced by its stored snapshot,
// if one exists. local itself is not modified.
func (b *Broadcaster) Reconcile(local []models.Post) []models.Post {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Post, len(local))
	for i, p := range local {
		if updated, ok := b.posts[p.ID]; ok && p.ID != "" {
			out[i] = updated.Clone()
		} else {
			out[i] = p
		}
	}
	return out
}
