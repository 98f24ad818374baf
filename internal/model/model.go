// Package model holds the records served by the posts API.
package model

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// User is an author that can be selected in the client.
type User struct {
	ID       int    `json:"id" yaml:"id" validate:"gt=0"`
	Name     string `json:"name" yaml:"name"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
}

// Post belongs to exactly one user through UserID.
type Post struct {
	ID     int    `json:"id" yaml:"id" validate:"gt=0"`
	UserID int    `json:"userId" yaml:"userId" validate:"gt=0"`
	Title  string `json:"title" yaml:"title"`
	Body   string `json:"body" yaml:"body"`
}

// Comment belongs to exactly one post through PostID.
type Comment struct {
	ID     int    `json:"id" yaml:"id" validate:"gt=0"`
	PostID int    `json:"postId" yaml:"postId" validate:"gt=0"`
	Name   string `json:"name" yaml:"name"`
	Email  string `json:"email" yaml:"email"`
	Body   string `json:"body" yaml:"body"`
}

// CommentData is the payload used to create a comment.
type CommentData struct {
	PostID int    `json:"postId" validate:"gt=0"`
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Body   string `json:"body" validate:"required"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks a single record against its struct tags.
func Validate(v interface{}) error {
	if err := validatorInstance().Struct(v); err != nil {
		return fmt.Errorf("invalid %T: %w", v, err)
	}
	return nil
}

// ValidateAll checks every record of a decoded list.
func ValidateAll[T any](items []T) error {
	for i := range items {
		if err := Validate(&items[i]); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// FindPost returns the post with the given id.
func FindPost(posts []Post, id int) (Post, bool) {
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// FindUser returns the user with the given id.
func FindUser(users []User, id int) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
