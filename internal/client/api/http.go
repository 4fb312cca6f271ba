package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/snapfeed/internal/client/models"
	"github.com/dmitrijs2005/snapfeed/internal/common"
	"github.com/dmitrijs2005/snapfeed/internal/filex"
	"github.com/dmitrijs2005/snapfeed/internal/logging"
	"github.com/google/uuid"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient builds a client for the backend at baseURL. A zero timeout
// means no client-side timeout.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "api"),
	}, nil
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func jsonBody(v any) (io.Reader, string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, "", fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(b), "application/json", nil
}

// do sends one request and decodes a 2xx JSON body into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, token string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done",
		"method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "elapsed", time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mapError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapError(resp *http.Response) error {
	e := &Error{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		e.Message = payload.Message
		if e.Message == "" {
			e.Message = payload.Error
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		e.kind = ErrUnauthorized
	case http.StatusNotFound:
		e.kind = ErrNotFound
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		e.kind = ErrUnavailable
	}
	return e
}

func (c *HTTPClient) SignIn(ctx context.Context, creds models.Credentials) (*SignInResponse, error) {
	body, ct, err := jsonBody(creds)
	if err != nil {
		return nil, err
	}
	var resp SignInResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signin", nil, "", body, ct, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) SignUp(ctx context.Context, form models.SignUpForm) (models.User, error) {
	body, ct, err := jsonBody(form)
	if err != nil {
		return nil, err
	}
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, "", body, ct, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

func (c *HTTPClient) Feed(ctx context.Context, token string, page, limit int) ([]models.Post, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Posts []models.Post `json:"posts"`
	}
	if err := c.do(ctx, http.MethodGet, "/posts/feed", q, token, nil, "", &resp); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

func (c *HTTPClient) GetPost(ctx context.Context, token, postID string) (models.Post, error) {
	var post models.Post
	err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(postID), nil, token, nil, "", &post)
	return post, err
}

// CreatePost uploads description and the files at mediaPaths as one
// multipart request. Each file goes in a "media" part.
func (c *HTTPClient) CreatePost(ctx context.Context, token, description string, mediaPaths []string) (models.Post, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("description", description); err != nil {
		return models.Post{}, fmt.Errorf("encode description: %w", err)
	}
	for _, p := range mediaPaths {
		if err := writeMediaPart(w, p); err != nil {
			return models.Post{}, err
		}
	}
	if err := w.Close(); err != nil {
		return models.Post{}, fmt.Errorf("encode multipart: %w", err)
	}

	var post models.Post
	err := c.do(ctx, http.MethodPost, "/posts", nil, token, &buf, w.FormDataContentType(), &post)
	return post, err
}

func writeMediaPart(w *multipart.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read media %s: %w", path, err)
	}

	ct := filex.MediaType(path)
	if ct == "" {
		ct = mime.TypeByExtension(filepath.Ext(path))
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename=%q`, filepath.Base(path)))
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("encode media %s: %w", path, err)
	}
	_, err = part.Write(data)
	return err
}

func (c *HTTPClient) postAction(ctx context.Context, token, postID, action string, body any) (models.Post, error) {
	var (
		r   io.Reader
		ct  string
		err error
	)
	if body != nil {
		if r, ct, err = jsonBody(body); err != nil {
			return models.Post{}, err
		}
	}
	var post models.Post
	err = c.do(ctx, http.MethodPost, "/posts/"+url.PathEscape(postID)+"/"+action, nil, token, r, ct, &post)
	return post, err
}

// LikePost toggles the caller's like and returns the updated post.
func (c *HTTPClient) LikePost(ctx context.Context, token, postID string) (models.Post, error) {
	return c.postAction(ctx, token, postID, "like", nil)
}

func (c *HTTPClient) CommentPost(ctx context.Context, token, postID, text string) (models.Post, error) {
	return c.postAction(ctx, token, postID, "comments", map[string]string{"comment": text})
}

// FavoritePost toggles the caller's favorite and returns the updated post.
func (c *HTTPClient) FavoritePost(ctx context.Context, token, postID string) (models.Post, error) {
	return c.postAction(ctx, token, postID, "favorite", nil)
}

func (c *HTTPClient) GetProfile(ctx context.Context, token, userID string) (models.Profile, error) {
	var p models.Profile
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, token, nil, "", &p)
	return p, err
}

// FollowUser toggles following userID and returns their updated profile.
func (c *HTTPClient) FollowUser(ctx context.Context, token, userID string) (models.Profile, error) {
	var p models.Profile
	err := c.do(ctx, http.MethodPost, "/users/"+url.PathEscape(userID)+"/follow", nil, token, nil, "", &p)
	return p, err
}

func (c *HTTPClient) SearchUsers(ctx context.Context, token, query string) ([]models.User, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("search query is empty")
	}
	q := url.Values{}
	q.Set("q", query)

	var resp struct {
		Users []models.User `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/search", q, token, nil, "", &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}
