// Package controller owns the selection/fetch state machine. It mutates the
// stores in response to user intents and returns the backend requests the
// caller must run; finished requests come back through Apply.
package controller

import (
	"fmt"

	"github.com/atomicstack/authorview/internal/backend"
	"github.com/atomicstack/authorview/internal/data/dispatcher"
	"github.com/atomicstack/authorview/internal/logging/events"
	"github.com/atomicstack/authorview/internal/model"
	"github.com/atomicstack/authorview/internal/state"
)

// Controller is the explicit application context handed to the UI.
type Controller struct {
	users      state.UserStore
	selection  state.Selection
	posts      state.PostsStore
	comments   state.CommentsStore
	dispatcher *dispatcher.Dispatcher
}

// New creates a controller with empty stores.
func New() *Controller {
	users := state.NewUserStore()
	posts := state.NewPostsStore()
	comments := state.NewCommentsStore()
	return &Controller{
		users:      users,
		selection:  state.NewSelection(),
		posts:      posts,
		comments:   comments,
		dispatcher: dispatcher.New(users, posts, comments),
	}
}

// LoadUsers starts the one-off author list fetch.
func (c *Controller) LoadUsers() backend.Request {
	return backend.Request{Kind: backend.KindUsers, Seq: c.users.Begin()}
}

// SelectUser records the author, clears the selected post and its comments,
// and starts a posts fetch for id.
func (c *Controller) SelectUser(id int) backend.Request {
	c.selection.SelectUser(id)
	c.comments.Reset()
	events.Selection.User(id)
	seq := c.posts.Begin(id)
	events.Posts.Fetch(id, seq)
	return backend.Request{Kind: backend.KindPosts, Key: id, Seq: seq}
}

// SelectPost marks id as the open post. The id is not checked against the
// current posts list.
func (c *Controller) SelectPost(id int) {
	c.selection.SelectPost(id)
	events.Selection.Post(id)
}

// ClearPost closes the open post and discards its comments.
func (c *Controller) ClearPost() {
	c.selection.ClearPost()
	c.comments.Reset()
	events.Selection.ClearPost()
}

// LoadComments starts a comments fetch for postID.
func (c *Controller) LoadComments(postID int) backend.Request {
	seq := c.comments.Begin(postID)
	events.Comments.Fetch(postID, seq)
	return backend.Request{Kind: backend.KindComments, Key: postID, Seq: seq}
}

// AddComment validates data and returns the create request for the open post.
func (c *Controller) AddComment(data model.CommentData) (backend.Request, error) {
	postID, ok := c.selection.PostID()
	if !ok {
		return backend.Request{}, fmt.Errorf("no post selected")
	}
	data.PostID = postID
	if err := model.Validate(&data); err != nil {
		return backend.Request{}, err
	}
	events.Comments.Create(postID, data.Name)
	return backend.Request{
		Kind:    backend.KindCommentCreate,
		Key:     postID,
		Seq:     c.comments.Seq(),
		Comment: data,
	}, nil
}

// DeleteComment returns the delete request for commentID on the open post.
func (c *Controller) DeleteComment(commentID int) backend.Request {
	events.Comments.Delete(commentID)
	return backend.Request{
		Kind:      backend.KindCommentDelete,
		Key:       c.comments.Key(),
		Seq:       c.comments.Seq(),
		CommentID: commentID,
	}
}

// Apply stores the result of a finished request.
func (c *Controller) Apply(evt backend.Event) dispatcher.Result {
	return c.dispatcher.Handle(evt)
}

// Users returns the author list.
func (c *Controller) Users() []model.User { return c.users.Users() }

// UsersStatus returns the author list fetch status.
func (c *Controller) UsersStatus() state.FetchStatus { return c.users.Status() }

// Posts returns the posts of the current author.
func (c *Controller) Posts() []model.Post { return c.posts.Posts() }

// PostsStatus returns the posts fetch status.
func (c *Controller) PostsStatus() state.FetchStatus { return c.posts.Status() }

// Comments returns the comments of the open post.
func (c *Controller) Comments() []model.Comment { return c.comments.Comments() }

// CommentsStatus returns the comments fetch status.
func (c *Controller) CommentsStatus() state.FetchStatus { return c.comments.Status() }

// CommentsPostID returns the post the comment list belongs to, or 0.
func (c *Controller) CommentsPostID() int { return c.comments.Key() }

// SelectedUserID returns the selected author id.
func (c *Controller) SelectedUserID() (int, bool) { return c.selection.UserID() }

// SelectedPostID returns the selected post id.
func (c *Controller) SelectedPostID() (int, bool) { return c.selection.PostID() }

// UserByID looks an author up in the loaded list.
func (c *Controller) UserByID(id int) (model.User, bool) { return c.users.Find(id) }

// Author returns the selected user when it is present in the author list.
func (c *Controller) Author() (model.User, bool) {
	id, ok := c.selection.UserID()
	if !ok {
		return model.User{}, false
	}
	return c.users.Find(id)
}

// SelectedPost returns the open post when it is present in the posts list.
func (c *Controller) SelectedPost() (model.Post, bool) {
	id, ok := c.selection.PostID()
	if !ok {
		return model.Post{}, false
	}
	return model.FindPost(c.posts.Posts(), id)
}
