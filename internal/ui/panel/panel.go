// Package panel decides which of the mutually exclusive UI states each panel
// shows. The functions are pure so the rules can be tested without a
// terminal.
package panel

import "github.com/atomicstack/authorview/internal/state"

// State is the rendered state of a panel.
type State int

const (
	NoUser State = iota
	Loading
	Failed
	Empty
	Posts
)

// Detail states.
const (
	DetailClosed State = iota + 100
	DetailMissing
	DetailOpen
)

// Comment list states.
const (
	CommentsLoading State = iota + 200
	CommentsFailed
	CommentsEmpty
	CommentsList
)

// Messages shown for the placeholder states.
const (
	NoUserText        = "No user selected"
	LoadingText       = "Loading…"
	FailedText        = "Something went wrong!"
	EmptyText         = "No posts yet"
	MissingText       = "Post not found"
	NoCommentsText    = "No comments yet"
	CommentsErrorText = "Unable to load comments"
)

// Input is everything the main panel depends on.
type Input struct {
	UserSelected bool
	Status       state.FetchStatus
	PostCount    int
}

// Main resolves the state of the posts panel.
func Main(in Input) State {
	if !in.UserSelected {
		return NoUser
	}
	switch in.Status {
	case state.StatusLoading:
		return Loading
	case state.StatusFailed:
		return Failed
	}
	if in.PostCount == 0 {
		return Empty
	}
	return Posts
}

// Detail resolves the state of the detail panel.
func Detail(postSelected, postFound bool) State {
	if !postSelected {
		return DetailClosed
	}
	if !postFound {
		return DetailMissing
	}
	return DetailOpen
}

// Comments resolves the state of the comment list inside an open detail.
func Comments(status state.FetchStatus, count int) State {
	switch status {
	case state.StatusLoading:
		return CommentsLoading
	case state.StatusFailed:
		return CommentsFailed
	}
	if count == 0 {
		return CommentsEmpty
	}
	return CommentsList
}

// Text returns the placeholder message for a state, or "" for content states.
func Text(s State) string {
	switch s {
	case NoUser:
		return NoUserText
	case Loading, CommentsLoading:
		return LoadingText
	case Failed:
		return FailedText
	case Empty:
		return EmptyText
	case DetailMissing:
		return MissingText
	case CommentsFailed:
		return CommentsErrorText
	case CommentsEmpty:
		return NoCommentsText
	}
	return ""
}
