package panel

import (
	"testing"

	"github.com/atomicstack/authorview/internal/state"
	"github.com/stretchr/testify/assert"
)

func TestMainPanelStates(t *testing.T) {
	cases := []struct {
		name string
		in   Input
		want State
	}{
		{"no user", Input{}, NoUser},
		{"no user ignores status", Input{Status: state.StatusFailed, PostCount: 3}, NoUser},
		{"loading", Input{UserSelected: true, Status: state.StatusLoading, PostCount: 2}, Loading},
		{"failed keeps old posts hidden", Input{UserSelected: true, Status: state.StatusFailed, PostCount: 2}, Failed},
		{"empty", Input{UserSelected: true, Status: state.StatusIdle}, Empty},
		{"posts", Input{UserSelected: true, Status: state.StatusIdle, PostCount: 1}, Posts},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Main(tc.in))
		})
	}
}

func TestDetail(t *testing.T) {
	assert.Equal(t, DetailClosed, Detail(false, false))
	assert.Equal(t, DetailMissing, Detail(true, false))
	assert.Equal(t, DetailOpen, Detail(true, true))
}

func TestComments(t *testing.T) {
	assert.Equal(t, CommentsLoading, Comments(state.StatusLoading, 4))
	assert.Equal(t, CommentsFailed, Comments(state.StatusFailed, 0))
	assert.Equal(t, CommentsEmpty, Comments(state.StatusIdle, 0))
	assert.Equal(t, CommentsList, Comments(state.StatusIdle, 2))
}

func TestText(t *testing.T) {
	assert.Equal(t, "No user selected", Text(NoUser))
	assert.Equal(t, "Something went wrong!", Text(Failed))
	assert.Equal(t, "No posts yet", Text(Empty))
	assert.Empty(t, Text(Posts))
	assert.Empty(t, Text(DetailOpen))
}
