package dispatcher

import (
	"github.com/atomicstack/authorview/internal/backend"
	"github.com/atomicstack/authorview/internal/logging"
	"github.com/atomicstack/authorview/internal/logging/events"
	"github.com/atomicstack/authorview/internal/model"
	"github.com/atomicstack/authorview/internal/state"
)

type Result struct {
	UsersUpdated    bool
	PostsUpdated    bool
	CommentsUpdated bool
	// Stale is set when the event belonged to a superseded request.
	Stale bool
	Err   error
}

type Dispatcher struct {
	users    state.UserStore
	posts    state.PostsStore
	comments state.CommentsStore
}

func New(u state.UserStore, p state.PostsStore, c state.CommentsStore) *Dispatcher {
	return &Dispatcher{users: u, posts: p, comments: c}
}

// Handle applies a finished request to the stores. Results whose generation
// no longer matches the store are dropped.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	req := evt.Request
	switch req.Kind {
	case backend.KindUsers:
		return d.handleUsers(evt)
	case backend.KindPosts:
		return d.handlePosts(evt)
	case backend.KindComments:
		return d.handleComments(evt)
	case backend.KindCommentCreate:
		return d.handleCommentCreate(evt)
	case backend.KindCommentDelete:
		return d.handleCommentDelete(evt)
	}
	return Result{}
}

func (d *Dispatcher) handleUsers(evt backend.Event) Result {
	req := evt.Request
	if evt.Err != nil {
		logging.Error(evt.Err)
		events.Users.Failed(evt.Err)
		if !d.users.Fail(req.Seq) {
			return Result{Stale: true}
		}
		return Result{UsersUpdated: true, Err: evt.Err}
	}
	users, _ := evt.Data.([]model.User)
	if !d.users.Resolve(req.Seq, users) {
		return Result{Stale: true}
	}
	events.Users.Loaded(len(users))
	return Result{UsersUpdated: true}
}

func (d *Dispatcher) handlePosts(evt backend.Event) Result {
	req := evt.Request
	if !d.posts.Current(req.Seq, req.Key) {
		events.Posts.Stale(req.Key, req.Seq)
		return Result{Stale: true}
	}
	if evt.Err != nil {
		logging.Error(evt.Err)
		events.Posts.Failed(req.Key, req.Seq, evt.Err)
		if !d.posts.Fail(req.Seq, req.Key) {
			return Result{Stale: true}
		}
		return Result{PostsUpdated: true, Err: evt.Err}
	}
	posts, _ := evt.Data.([]model.Post)
	if !d.posts.Resolve(req.Seq, req.Key, posts) {
		return Result{Stale: true}
	}
	events.Posts.Loaded(req.Key, req.Seq, len(posts))
	return Result{PostsUpdated: true}
}

func (d *Dispatcher) handleComments(evt backend.Event) Result {
	req := evt.Request
	if !d.comments.Current(req.Seq, req.Key) {
		events.Comments.Stale(req.Key, req.Seq)
		return Result{Stale: true}
	}
	if evt.Err != nil {
		logging.Error(evt.Err)
		events.Comments.Failed(req.Key, req.Seq, evt.Err)
		if !d.comments.Fail(req.Seq, req.Key) {
			return Result{Stale: true}
		}
		return Result{CommentsUpdated: true, Err: evt.Err}
	}
	comments, _ := evt.Data.([]model.Comment)
	if !d.comments.Resolve(req.Seq, req.Key, comments) {
		return Result{Stale: true}
	}
	events.Comments.Loaded(req.Key, req.Seq, len(comments))
	return Result{CommentsUpdated: true}
}

func (d *Dispatcher) handleCommentCreate(evt backend.Event) Result {
	req := evt.Request
	if evt.Err != nil {
		logging.Error(evt.Err)
		return Result{Err: evt.Err, Stale: !d.comments.Current(req.Seq, req.Key)}
	}
	comment, ok := evt.Data.(model.Comment)
	if !ok || !d.comments.Append(req.Seq, req.Key, comment) {
		return Result{Stale: true}
	}
	return Result{CommentsUpdated: true}
}

func (d *Dispatcher) handleCommentDelete(evt backend.Event) Result {
	req := evt.Request
	if evt.Err != nil {
		logging.Error(evt.Err)
		return Result{Err: evt.Err, Stale: !d.comments.Current(req.Seq, req.Key)}
	}
	if !d.comments.Remove(req.Seq, req.Key, req.CommentID) {
		return Result{Stale: true}
	}
	return Result{CommentsUpdated: true}
}
