package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/snapfeed/internal/client/api"
	"github.com/dmitrijs2005/snapfeed/internal/client/broadcast"
	"github.com/dmitrijs2005/snapfeed/internal/client/config"
	"github.com/dmitrijs2005/snapfeed/internal/client/keystore"
	"github.com/dmitrijs2005/snapfeed/internal/client/models"
	"github.com/dmitrijs2005/snapfeed/internal/client/services"
	"github.com/dmitrijs2005/snapfeed/internal/client/session"
	"github.com/dmitrijs2005/snapfeed/internal/common"
	"github.com/dmitrijs2005/snapfeed/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const (
	goodEmail    = "ann@example.com"
	goodPassword = "Aa1!2345"
	myID         = "u1"
)

// ---- fake backend ----

type fakeBackend struct {
	mu        sync.Mutex
	posts     map[string]models.Post
	order     []string
	followers map[string][]string
	signIns   int
	signUps   int
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		posts: map[string]models.Post{
			"p1": {ID: "p1", Author: models.User{"nickname": "bob"}, Description: "first post"},
			"p2": {ID: "p2", Author: models.User{"nickname": "eve"}, Description: "broken post", Likes: []string{"x"}},
		},
		order:     []string{"p1", "p2"},
		followers: map[string][]string{},
	}
}

func (b *fakeBackend) counts() (signIns, signUps int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.signIns, b.signUps
}

func (b *fakeBackend) router() http.Handler {
	r := chi.NewRouter()

	r.Post("/auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var c models.Credentials
		_ = json.NewDecoder(r.Body).Decode(&c)
		b.mu.Lock()
		b.signIns++
		b.mu.Unlock()
		if c.Password != goodPassword {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": "T", "user": map[string]any{"id": myID, "email": c.Email, "nickname": "ann"}})
	})

	r.Post("/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		var f models.SignUpForm
		_ = json.NewDecoder(r.Body).Decode(&f)
		b.mu.Lock()
		b.signUps++
		b.mu.Unlock()
		if f.Email == "taken@example.com" {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "Email already registered"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"user": map[string]any{"email": f.Email, "nickname": f.Nickname}})
	})

	r.Get("/posts/feed", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		posts := []models.Post{}
		if r.URL.Query().Get("page") == "1" {
			for _, id := range b.order {
				posts = append(posts, b.posts[id])
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"posts": posts})
	})

	r.Get("/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		p, ok := b.posts[chi.URLParam(r, "id")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
			return
		}
		writeJSON(w, http.StatusOK, p)
	})

	r.Post("/posts", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		p := models.Post{ID: "p3", Author: models.User{"id": myID}, Description: r.FormValue("description")}
		for range r.MultipartForm.File["media"] {
			p.Media = append(p.Media, models.Media{URL: "https://cdn/x.jpg", Type: models.MediaImage})
		}
		b.posts[p.ID] = p
		b.order = append([]string{p.ID}, b.order...)
		writeJSON(w, http.StatusCreated, p)
	})

	mutate := func(w http.ResponseWriter, r *http.Request, fn func(*models.Post)) {
		id := chi.URLParam(r, "id")
		if id == "p2" {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{})
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		p, ok := b.posts[id]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "Post not found"})
			return
		}
		fn(&p)
		b.posts[id] = p
		writeJSON(w, http.StatusOK, p)
	}
	toggle := func(ids []string) []string {
		if i := slices.Index(ids, myID); i >= 0 {
			return slices.Delete(ids, i, i+1)
		}
		return append(ids, myID)
	}

	r.Post("/posts/{id}/like", func(w http.ResponseWriter, r *http.Request) {
		mutate(w, r, func(p *models.Post) { p.Likes = toggle(p.Likes) })
	})
	r.Post("/posts/{id}/favorite", func(w http.ResponseWriter, r *http.Request) {
		mutate(w, r, func(p *models.Post) { p.Favorites = toggle(p.Favorites) })
	})
	r.Post("/posts/{id}/comments", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Comment string `json:"comment"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		mutate(w, r, func(p *models.Post) {
			p.Comments = append(p.Comments, models.Comment{
				ID: "c1", User: models.User{"nickname": "ann"}, Comment: body.Comment, CreatedAt: time.Now(),
			})
		})
	})

	r.Get("/users/search", func(w http.ResponseWriter, r *http.Request) {
		users := []models.User{}
		if strings.Contains("bob", r.URL.Query().Get("q")) {
			users = append(users, models.User{"id": "u2", "nickname": "bob", "email": "bob@example.com"})
		}
		writeJSON(w, http.StatusOK, map[string]any{"users": users})
	})
	profile := func(id string) models.Profile {
		return models.Profile{
			User:      models.User{"id": id, "nickname": id + "-nick"},
			Followers: slices.Clone(b.followers[id]),
			Posts:     []models.Post{b.posts["p1"]},
		}
	}
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "ghost" {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, profile(id))
	})
	r.Post("/users/{id}/follow", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		b.mu.Lock()
		defer b.mu.Unlock()
		b.followers[id] = toggle(b.followers[id])
		writeJSON(w, http.StatusOK, profile(id))
	})

	return r
}

// ---- app wiring ----

type alert struct{ Title, Message string }

type recAlerter struct {
	mu     sync.Mutex
	alerts []alert
}

func (r *recAlerter) Alert(title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, alert{title, message})
}

type testApp struct {
	*App
	backend *fakeBackend
	store   *keystore.MemoryStore
	out     *bytes.Buffer
	alerts  *recAlerter
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	backend := newFakeBackend()
	srv := httptest.NewServer(backend.router())
	t.Cleanup(srv.Close)

	client, err := api.NewHTTPClient(srv.URL, 5*time.Second, logging.Discard())
	require.NoError(t, err)

	store := keystore.NewMemoryStore()
	alerts := &recAlerter{}
	feed := broadcast.New()
	out := &bytes.Buffer{}

	app := &App{
		config:   &config.Config{},
		log:      logging.Discard(),
		session:  session.NewManager(store, client, alerts, logging.Discard()),
		api:      client,
		posts:    services.NewPostService(client, feed, logging.Discard()),
		profiles: services.NewProfileService(client, logging.Discard()),
		feed:     feed,
		alerts:   alerts,
		reader:   bufio.NewReader(strings.NewReader(input)),
		out:      out,
	}
	return &testApp{App: app, backend: backend, store: store, out: out, alerts: alerts}
}

// signedIn seeds the store with a session and bootstraps it.
func (ta *testApp) signedIn(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, ta.store.Set(ctx, goodEmail, "T", common.TokenService))
	require.NoError(t, ta.store.Set(ctx, goodEmail, `{"id":"u1","email":"ann@example.com","nickname":"ann"}`, common.UserService))
	ta.session.Bootstrap(ctx)
	require.True(t, ta.isLoggedIn())
	return ta
}

func silencePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// stubInputs answers text prompts from texts, in order, and the password
// prompt with password.
func stubInputs(t *testing.T, password string, texts ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	queue := slices.Clone(texts)
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(queue) == 0 {
			return "", io.EOF
		}
		v := queue[0]
		queue = queue[1:]
		return v, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
