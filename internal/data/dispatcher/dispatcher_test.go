package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/authorview/internal/backend"
	"github.com/atomicstack/authorview/internal/model"
	"github.com/atomicstack/authorview/internal/state"
	"github.com/google/go-cmp/cmp"
)

func newDispatcher() (*Dispatcher, state.UserStore, state.PostsStore, state.CommentsStore) {
	u := state.NewUserStore()
	p := state.NewPostsStore()
	c := state.NewCommentsStore()
	return New(u, p, c), u, p, c
}

func TestHandlePostsSuccess(t *testing.T) {
	d, _, posts, _ := newDispatcher()
	seq := posts.Begin(1)
	want := []model.Post{{ID: 10, UserID: 1, Title: "a"}, {ID: 11, UserID: 1, Title: "b"}}

	res := d.Handle(backend.Event{Request: backend.Request{Kind: backend.KindPosts, Key: 1, Seq: seq}, Data: want})
	if !res.PostsUpdated || res.Stale {
		t.Fatalf("expected posts update, got %+v", res)
	}
	if diff := cmp.Diff(want, posts.Posts()); diff != "" {
		t.Fatalf("posts mismatch (-want +got):\n%s", diff)
	}
	if posts.Status() != state.StatusIdle {
		t.Fatalf("expected idle status, got %s", posts.Status())
	}
}

func TestHandlePostsFailureKeepsList(t *testing.T) {
	d, _, posts, _ := newDispatcher()
	seq := posts.Begin(1)
	prev := []model.Post{{ID: 10, UserID: 1}}
	d.Handle(backend.Event{Request: backend.Request{Kind: backend.KindPosts, Key: 1, Seq: seq}, Data: prev})

	seq = posts.Begin(2)
	boom := errors.New("boom")
	res := d.Handle(backend.Event{Request: backend.Request{Kind: backend.KindPosts, Key: 2, Seq: seq}, Err: boom})
	if !errors.Is(res.Err, boom) {
		t.Fatalf("expected error in result, got %+v", res)
	}
	if posts.Status() != state.StatusFailed {
		t.Fatalf("expected failed status, got %s", posts.Status())
	}
	if diff := cmp.Diff(prev, posts.Posts()); diff != "" {
		t.Fatalf("failed fetch must keep the previous list (-want +got):\n%s", diff)
	}
}

func TestHandlePostsDropsStaleResponse(t *testing.T) {
	d, _, posts, _ := newDispatcher()
	stale := posts.Begin(1)
	fresh := posts.Begin(2)

	res := d.Handle(backend.Event{Request: backend.Request{Kind: backend.KindPosts, Key: 1, Seq: stale}, Data: []model.Post{{ID: 1, UserID: 1}}})
	if !res.Stale || res.PostsUpdated {
		t.Fatalf("expected stale result, got %+v", res)
	}
	if posts.Status() != state.StatusLoading {
		t.Fatalf("stale response must not settle the newer request, got %s", posts.Status())
	}

	res = d.Handle(backend.Event{Request: backend.Request{Kind: backend.KindPosts, Key: 1, Seq: stale}, Err: errors.New("late failure")})
	if !res.Stale || posts.Status() != state.StatusLoading {
		t.Fatalf("stale failure must be dropped, got %+v / %s", res, posts.Status())
	}

	want := []model.Post{{ID: 20, UserID: 2}}
	d.Handle(backend.Event{Request: backend.Request{Kind: backend.KindPosts, Key: 2, Seq: fresh}, Data: want})
	if diff := cmp.Diff(want, posts.Posts()); diff != "" {
		t.Fatalf("posts mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleUsers(t *testing.T) {
	d, users, _, _ := newDispatcher()
	seq := users.Begin()
	res := d.Handle(backend.Event{Request: backend.Request{Kind: backend.KindUsers, Seq: seq}, Data: []model.User{{ID: 1, Name: "Ann"}}})
	if !res.UsersUpdated {
		t.Fatalf("expected users update, got %+v", res)
	}
	if len(users.Users()) != 1 {
		t.Fatalf("expected one user, got %d", len(users.Users()))
	}
}

func TestHandleCommentMutations(t *testing.T) {
	d, _, _, comments := newDispatcher()
	seq := comments.Begin(5)
	d.Handle(backend.Event{Request: backend.Request{Kind: backend.KindComments, Key: 5, Seq: seq}, Data: []model.Comment{{ID: 1, PostID: 5}}})

	res := d.Handle(backend.Event{
		Request: backend.Request{Kind: backend.KindCommentCreate, Key: 5, Seq: seq},
		Data:    model.Comment{ID: 2, PostID: 5},
	})
	if !res.CommentsUpdated {
		t.Fatalf("expected comment append, got %+v", res)
	}
	res = d.Handle(backend.Event{Request: backend.Request{Kind: backend.KindCommentDelete, Key: 5, Seq: seq, CommentID: 1}})
	if !res.CommentsUpdated {
		t.Fatalf("expected comment removal, got %+v", res)
	}
	want := []model.Comment{{ID: 2, PostID: 5}}
	if diff := cmp.Diff(want, comments.Comments()); diff != "" {
		t.Fatalf("comments mismatch (-want +got):\n%s", diff)
	}

	comments.Reset()
	res = d.Handle(backend.Event{
		Request: backend.Request{Kind: backend.KindCommentCreate, Key: 5, Seq: seq},
		Data:    model.Comment{ID: 3, PostID: 5},
	})
	if !res.Stale {
		t.Fatalf("expected append after reset to be stale, got %+v", res)
	}
}

func TestHandleCommentsDropsResultForReplacedPost(t *testing.T) {
	d, _, _, comments := newDispatcher()
	stale := comments.Begin(10)
	fresh := comments.Begin(11)

	res := d.Handle(backend.Event{
		Request: backend.Request{Kind: backend.KindComments, Key: 10, Seq: stale},
		Data:    []model.Comment{{ID: 1, PostID: 10}},
	})
	if !res.Stale || res.CommentsUpdated {
		t.Fatalf("expected stale result, got %+v", res)
	}
	if comments.Status() != state.StatusLoading {
		t.Fatalf("stale comments must not settle the newer request, got %s", comments.Status())
	}
	if got := comments.Comments(); len(got) != 0 {
		t.Fatalf("expected no comments while the newer load is pending, got %+v", got)
	}

	res = d.Handle(backend.Event{
		Request: backend.Request{Kind: backend.KindComments, Key: 10, Seq: stale},
		Err:     errors.New("late failure"),
	})
	if !res.Stale || comments.Status() != state.StatusLoading {
		t.Fatalf("stale failure must be dropped, got %+v / %s", res, comments.Status())
	}

	want := []model.Comment{{ID: 2, PostID: 11}}
	res = d.Handle(backend.Event{
		Request: backend.Request{Kind: backend.KindComments, Key: 11, Seq: fresh},
		Data:    want,
	})
	if !res.CommentsUpdated || res.Stale {
		t.Fatalf("expected comments update, got %+v", res)
	}
	if diff := cmp.Diff(want, comments.Comments()); diff != "" {
		t.Fatalf("comments mismatch (-want +got):\n%s", diff)
	}
	if comments.Status() != state.StatusIdle {
		t.Fatalf("expected idle status, got %s", comments.Status())
	}
}
