// Package api is a thin HTTP client for the users/posts/comments API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/authorview/internal/logging/events"
	"github.com/atomicstack/authorview/internal/model"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request trace id.
const RequestIDHeader = "X-Request-Id"

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("not found")

// StatusError reports a non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Code == http.StatusNotFound
}

// Client talks to the API rooted at a base URL.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", baseURL)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	c := &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Users returns every user.
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.get(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	if err := model.ValidateAll(users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// UserPosts returns the posts written by userID.
func (c *Client) UserPosts(ctx context.Context, userID int) ([]model.Post, error) {
	q := url.Values{}
	q.Set("userId", strconv.Itoa(userID))
	var posts []model.Post
	if err := c.get(ctx, "/posts", q, &posts); err != nil {
		return nil, err
	}
	if err := model.ValidateAll(posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// PostComments returns the comments attached to postID.
func (c *Client) PostComments(ctx context.Context, postID int) ([]model.Comment, error) {
	q := url.Values{}
	q.Set("postId", strconv.Itoa(postID))
	var comments []model.Comment
	if err := c.get(ctx, "/comments", q, &comments); err != nil {
		return nil, err
	}
	if err := model.ValidateAll(comments); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return comments, nil
}

// CreateComment posts a new comment and returns the stored record.
func (c *Client) CreateComment(ctx context.Context, data model.CommentData) (model.Comment, error) {
	if err := model.Validate(&data); err != nil {
		return model.Comment{}, err
	}
	var created model.Comment
	if err := c.do(ctx, http.MethodPost, "/comments", nil, data, &created); err != nil {
		return model.Comment{}, err
	}
	if err := model.Validate(&created); err != nil {
		return model.Comment{}, fmt.Errorf("decode comment: %w", err)
	}
	return created, nil
}

// DeleteComment removes a comment by id.
func (c *Client) DeleteComment(ctx context.Context, commentID int) error {
	return c.do(ctx, http.MethodDelete, "/comments/"+strconv.Itoa(commentID), nil, nil, nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := *c.baseURL
	endpoint.Path = c.baseURL.Path + path
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	id := uuid.NewString()
	req.Header.Set(RequestIDHeader, id)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	events.Request.Send(id, method, path)
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		events.Request.Failed(id, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	events.Request.Done(id, resp.StatusCode, time.Since(started).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
