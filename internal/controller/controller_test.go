package controller

import (
	"errors"
	"testing"

	"github.com/atomicstack/authorview/internal/backend"
	"github.com/atomicstack/authorview/internal/model"
	"github.com/atomicstack/authorview/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectUserAlwaysClearsPost(t *testing.T) {
	c := New()
	for _, id := range []int{1, 2, 1, 1} {
		c.SelectPost(42)
		req := c.SelectUser(id)
		assert.Equal(t, backend.KindPosts, req.Kind)
		assert.Equal(t, id, req.Key)
		_, ok := c.SelectedPostID()
		assert.False(t, ok)
		assert.Equal(t, state.StatusLoading, c.PostsStatus())
	}
}

func TestFetchStatusTransitions(t *testing.T) {
	c := New()
	assert.Equal(t, state.StatusIdle, c.PostsStatus())

	req := c.SelectUser(1)
	assert.Equal(t, state.StatusLoading, c.PostsStatus())
	c.Apply(backend.Event{Request: req, Err: errors.New("offline")})
	assert.Equal(t, state.StatusFailed, c.PostsStatus())

	// Selecting a post or re-applying the old result must not restart loading.
	c.SelectPost(3)
	c.Apply(backend.Event{Request: req, Data: []model.Post{{ID: 1, UserID: 1}}})
	assert.Equal(t, state.StatusFailed, c.PostsStatus())

	req = c.SelectUser(1)
	assert.Equal(t, state.StatusLoading, c.PostsStatus())
	c.Apply(backend.Event{Request: req, Data: []model.Post{{ID: 1, UserID: 1}, {ID: 2, UserID: 1}}})
	assert.Equal(t, state.StatusIdle, c.PostsStatus())
	assert.Equal(t, []model.Post{{ID: 1, UserID: 1}, {ID: 2, UserID: 1}}, c.Posts())
}

func TestLastSelectedUserWins(t *testing.T) {
	c := New()
	first := c.SelectUser(1)
	second := c.SelectUser(2)

	c.Apply(backend.Event{Request: second, Data: []model.Post{{ID: 20, UserID: 2}}})
	res := c.Apply(backend.Event{Request: first, Data: []model.Post{{ID: 10, UserID: 1}}})
	assert.True(t, res.Stale)
	assert.Equal(t, []model.Post{{ID: 20, UserID: 2}}, c.Posts())
}

func TestSelectPostWithoutMatch(t *testing.T) {
	c := New()
	req := c.SelectUser(1)
	c.Apply(backend.Event{Request: req, Data: []model.Post{{ID: 10, UserID: 1}}})

	c.SelectPost(99)
	id, ok := c.SelectedPostID()
	require.True(t, ok)
	assert.Equal(t, 99, id)
	_, found := c.SelectedPost()
	assert.False(t, found)

	c.SelectPost(10)
	post, found := c.SelectedPost()
	require.True(t, found)
	assert.Equal(t, 10, post.ID)
}

func TestAuthorDerivedFromUsers(t *testing.T) {
	c := New()
	req := c.LoadUsers()
	c.Apply(backend.Event{Request: req, Data: []model.User{{ID: 1, Name: "Ann"}}})

	_, ok := c.Author()
	assert.False(t, ok)
	c.SelectUser(1)
	author, ok := c.Author()
	require.True(t, ok)
	assert.Equal(t, "Ann", author.Name)
}

func TestCommentsFollowOpenPost(t *testing.T) {
	c := New()
	posts := c.SelectUser(1)
	c.Apply(backend.Event{Request: posts, Data: []model.Post{{ID: 10, UserID: 1}}})
	c.SelectPost(10)
	req := c.LoadComments(10)
	c.Apply(backend.Event{Request: req, Data: []model.Comment{{ID: 1, PostID: 10}}})
	assert.Len(t, c.Comments(), 1)
	assert.Equal(t, 10, c.CommentsPostID())

	c.ClearPost()
	assert.Empty(t, c.Comments())

	c.SelectPost(10)
	req = c.LoadComments(10)
	c.Apply(backend.Event{Request: req, Data: []model.Comment{{ID: 1, PostID: 10}}})
	c.SelectUser(2)
	assert.Empty(t, c.Comments(), "switching author discards comments")
}

func TestAddComment(t *testing.T) {
	c := New()
	_, err := c.AddComment(model.CommentData{Name: "a", Email: "a@example.com", Body: "b"})
	require.Error(t, err, "no post selected")

	posts := c.SelectUser(1)
	c.Apply(backend.Event{Request: posts, Data: []model.Post{{ID: 10, UserID: 1}}})
	c.SelectPost(10)
	load := c.LoadComments(10)
	c.Apply(backend.Event{Request: load, Data: []model.Comment{}})

	_, err = c.AddComment(model.CommentData{Name: "a", Email: "nope", Body: "b"})
	require.Error(t, err)

	req, err := c.AddComment(model.CommentData{Name: "a", Email: "a@example.com", Body: "b"})
	require.NoError(t, err)
	assert.Equal(t, 10, req.Comment.PostID)
	c.Apply(backend.Event{Request: req, Data: model.Comment{ID: 5, PostID: 10, Name: "a"}})
	require.Len(t, c.Comments(), 1)

	del := c.DeleteComment(5)
	c.Apply(backend.Event{Request: del})
	assert.Empty(t, c.Comments())
}

// Scenario from the selection walkthrough: no user, select 1, load one post,
// open it, switch to user 2.
func TestSelectionScenario(t *testing.T) {
	c := New()
	_, ok := c.SelectedUserID()
	require.False(t, ok)

	req := c.SelectUser(1)
	require.Equal(t, state.StatusLoading, c.PostsStatus())
	c.Apply(backend.Event{Request: req, Data: []model.Post{{ID: 10, UserID: 1, Title: "hello"}}})
	require.Len(t, c.Posts(), 1)

	c.SelectPost(10)
	post, ok := c.SelectedPost()
	require.True(t, ok)
	assert.Equal(t, "hello", post.Title)

	next := c.SelectUser(2)
	_, ok = c.SelectedPostID()
	assert.False(t, ok)
	assert.Equal(t, 2, next.Key)
	assert.Equal(t, state.StatusLoading, c.PostsStatus())
}
