package state

import "github.com/atomicstack/authorview/internal/model"

// PostsStore holds the posts of the current author. Key is the user id the
// list was requested for.
type PostsStore interface {
	Posts() []model.Post
	Status() FetchStatus
	Key() int
	Seq() int
	Begin(userID int) int
	Current(seq, userID int) bool
	Resolve(seq, userID int, posts []model.Post) bool
	Fail(seq, userID int) bool
}

type postsStore struct {
	list fetchedList[model.Post]
}

func NewPostsStore() PostsStore {
	return &postsStore{}
}

func (p *postsStore) Posts() []model.Post {
	return cloneSlice(p.list.items)
}

func (p *postsStore) Status() FetchStatus {
	return p.list.status
}

func (p *postsStore) Key() int {
	return p.list.key
}

func (p *postsStore) Seq() int {
	return p.list.seq
}

func (p *postsStore) Begin(userID int) int {
	return p.list.begin(userID)
}

func (p *postsStore) Current(seq, userID int) bool {
	return p.list.current(seq, userID)
}

func (p *postsStore) Resolve(seq, userID int, posts []model.Post) bool {
	return p.list.resolve(seq, userID, posts)
}

func (p *postsStore) Fail(seq, userID int) bool {
	return p.list.fail(seq, userID)
}
