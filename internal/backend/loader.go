package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atomicstack/authorview/internal/model"
)

// Kind represents the type of request executed by the loader.
type Kind int

const (
	KindUsers Kind = iota
	KindPosts
	KindComments
	KindCommentCreate
	KindCommentDelete
)

func (k Kind) String() string {
	switch k {
	case KindUsers:
		return "users"
	case KindPosts:
		return "posts"
	case KindComments:
		return "comments"
	case KindCommentCreate:
		return "comment.create"
	case KindCommentDelete:
		return "comment.delete"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Request describes one API call. Key is the user id for posts and the post
// id for comment requests; Seq is the store generation at dispatch time.
type Request struct {
	Kind      Kind
	Key       int
	Seq       int
	Comment   model.CommentData
	CommentID int
}

// Event conveys the result of a request.
type Event struct {
	Request Request
	Data    interface{}
	Err     error
}

// API is the subset of the HTTP client used by the loader.
type API interface {
	Users(ctx context.Context) ([]model.User, error)
	UserPosts(ctx context.Context, userID int) ([]model.Post, error)
	PostComments(ctx context.Context, postID int) ([]model.Comment, error)
	CreateComment(ctx context.Context, data model.CommentData) (model.Comment, error)
	DeleteComment(ctx context.Context, commentID int) error
}

type inflight struct {
	seq    int
	cancel context.CancelFunc
}

// Loader executes requests against the API. A newer posts or comments
// request cancels the in-flight one of the same kind.
type Loader struct {
	api      API
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	inflight map[Kind]inflight
}

// NewLoader creates a loader spacing requests at least minInterval apart.
func NewLoader(api API, minInterval time.Duration) *Loader {
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		api:      api,
		throttle: newThrottle(minInterval),
		ctx:      ctx,
		cancel:   cancel,
		inflight: make(map[Kind]inflight),
	}
}

// Stop cancels every in-flight request.
func (l *Loader) Stop() {
	l.cancel()
}

// Load runs req and blocks until it completes.
func (l *Loader) Load(req Request) Event {
	ctx, done := l.track(req)
	defer done()

	evt := Event{Request: req}
	if err := l.throttle.wait(ctx); err != nil {
		evt.Err = err
		return evt
	}
	switch req.Kind {
	case KindUsers:
		evt.Data, evt.Err = l.api.Users(ctx)
	case KindPosts:
		evt.Data, evt.Err = l.api.UserPosts(ctx, req.Key)
	case KindComments:
		evt.Data, evt.Err = l.api.PostComments(ctx, req.Key)
	case KindCommentCreate:
		evt.Data, evt.Err = l.api.CreateComment(ctx, req.Comment)
	case KindCommentDelete:
		evt.Err = l.api.DeleteComment(ctx, req.CommentID)
	default:
		evt.Err = fmt.Errorf("unsupported request kind %s", req.Kind)
	}
	return evt
}

func (l *Loader) track(req Request) (context.Context, func()) {
	ctx, cancel := context.WithCancel(l.ctx)
	if req.Kind != KindPosts && req.Kind != KindComments {
		return ctx, cancel
	}
	l.mu.Lock()
	prev, ok := l.inflight[req.Kind]
	switch {
	case ok && prev.seq > req.Seq:
		// already superseded
		cancel()
	default:
		if ok {
			prev.cancel()
		}
		l.inflight[req.Kind] = inflight{seq: req.Seq, cancel: cancel}
	}
	l.mu.Unlock()
	return ctx, func() {
		l.mu.Lock()
		if cur, ok := l.inflight[req.Kind]; ok && cur.seq == req.Seq {
			delete(l.inflight, req.Kind)
		}
		l.mu.Unlock()
		cancel()
	}
}
