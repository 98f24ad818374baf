package state

// Selection holds the selected author and post ids.
type Selection interface {
	UserID() (int, bool)
	PostID() (int, bool)
	// SelectUser records the author and always clears the selected post.
	SelectUser(id int)
	SelectPost(id int)
	ClearPost()
}

type selection struct {
	userID *int
	postID *int
}

func NewSelection() Selection {
	return &selection{}
}

func (s *selection) UserID() (int, bool) {
	if s.userID == nil {
		return 0, false
	}
	return *s.userID, true
}

func (s *selection) PostID() (int, bool) {
	if s.postID == nil {
		return 0, false
	}
	return *s.postID, true
}

func (s *selection) SelectUser(id int) {
	s.userID = &id
	s.postID = nil
}

func (s *selection) SelectPost(id int) {
	s.postID = &id
}

func (s *selection) ClearPost() {
	s.postID = nil
}
