package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRejectsMissingIdentity(t *testing.T) {
	err := Validate(&Post{UserID: 1, Title: "t"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Post")

	require.NoError(t, Validate(&Post{ID: 1, UserID: 1}))
}

func TestValidateCommentData(t *testing.T) {
	data := CommentData{PostID: 3, Name: "Ann", Email: "ann@example.com", Body: "hi"}
	require.NoError(t, Validate(&data))

	data.Email = "not-an-email"
	require.Error(t, Validate(&data))

	data.Email = "ann@example.com"
	data.Body = ""
	require.Error(t, Validate(&data))
}

func TestValidateAllReportsIndex(t *testing.T) {
	users := []User{{ID: 1, Name: "a"}, {ID: 0, Name: "b"}}
	err := ValidateAll(users)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")
}

func TestFindPost(t *testing.T) {
	posts := []Post{{ID: 10, UserID: 1}, {ID: 11, UserID: 1}}
	p, ok := FindPost(posts, 11)
	require.True(t, ok)
	assert.Equal(t, 11, p.ID)

	_, ok = FindPost(posts, 99)
	assert.False(t, ok)
}

func TestValidateUserNeedsOnlyID(t *testing.T) {
	require.NoError(t, Validate(&User{ID: 2}))
	require.Error(t, Validate(&User{Name: "Ann"}))
}
