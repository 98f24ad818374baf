package state

import "github.com/atomicstack/authorview/internal/model"

// UserStore holds the author list, fetched once at startup.
type UserStore interface {
	Users() []model.User
	Status() FetchStatus
	Begin() int
	Resolve(seq int, users []model.User) bool
	Fail(seq int) bool
	Find(id int) (model.User, bool)
}

type userStore struct {
	list fetchedList[model.User]
}

func NewUserStore() UserStore {
	return &userStore{}
}

func (s *userStore) Users() []model.User {
	return cloneSlice(s.list.items)
}

func (s *userStore) Status() FetchStatus {
	return s.list.status
}

func (s *userStore) Begin() int {
	return s.list.begin(0)
}

func (s *userStore) Resolve(seq int, users []model.User) bool {
	return s.list.resolve(seq, 0, users)
}

func (s *userStore) Fail(seq int) bool {
	return s.list.fail(seq, 0)
}

func (s *userStore) Find(id int) (model.User, bool) {
	return model.FindUser(s.list.items, id)
}
