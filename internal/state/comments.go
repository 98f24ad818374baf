package state

import "github.com/atomicstack/authorview/internal/model"

// CommentsStore holds the comments of the open post. Key is the post id.
type CommentsStore interface {
	Comments() []model.Comment
	Status() FetchStatus
	Key() int
	Seq() int
	Begin(postID int) int
	Current(seq, postID int) bool
	Resolve(seq, postID int, comments []model.Comment) bool
	Fail(seq, postID int) bool
	// Append and Remove apply mutations only while seq/postID are current.
	Append(seq, postID int, comment model.Comment) bool
	Remove(seq, postID, commentID int) bool
	// Reset discards the list and invalidates in-flight loads.
	Reset()
}

type commentsStore struct {
	list fetchedList[model.Comment]
}

func NewCommentsStore() CommentsStore {
	return &commentsStore{}
}

func (c *commentsStore) Comments() []model.Comment {
	return cloneSlice(c.list.items)
}

func (c *commentsStore) Status() FetchStatus {
	return c.list.status
}

func (c *commentsStore) Key() int {
	return c.list.key
}

func (c *commentsStore) Seq() int {
	return c.list.seq
}

func (c *commentsStore) Begin(postID int) int {
	c.list.items = nil
	return c.list.begin(postID)
}

func (c *commentsStore) Current(seq, postID int) bool {
	return c.list.current(seq, postID)
}

func (c *commentsStore) Resolve(seq, postID int, comments []model.Comment) bool {
	return c.list.resolve(seq, postID, comments)
}

func (c *commentsStore) Fail(seq, postID int) bool {
	return c.list.fail(seq, postID)
}

func (c *commentsStore) Append(seq, postID int, comment model.Comment) bool {
	if !c.list.current(seq, postID) || comment.PostID != postID {
		return false
	}
	c.list.items = append(c.list.items, comment)
	return true
}

func (c *commentsStore) Remove(seq, postID, commentID int) bool {
	if !c.list.current(seq, postID) {
		return false
	}
	for i, existing := range c.list.items {
		if existing.ID == commentID {
			c.list.items = append(c.list.items[:i:i], c.list.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *commentsStore) Reset() {
	c.list.seq++
	c.list.key = 0
	c.list.items = nil
	c.list.status = StatusIdle
}
