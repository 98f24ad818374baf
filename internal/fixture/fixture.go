// Package fixture serves an in-memory copy of the posts API. It backs the
// integration tests and the authorview-fixture development server.
package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/atomicstack/authorview/internal/model"
	"github.com/gorilla/mux"
	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var defaultData []byte

// Data is the full record set served by a Server.
type Data struct {
	Users    []model.User    `yaml:"users"`
	Posts    []model.Post    `yaml:"posts"`
	Comments []model.Comment `yaml:"comments"`
}

// Load decodes and validates a YAML record set.
func Load(raw []byte) (Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("decode fixture: %w", err)
	}
	if err := model.ValidateAll(data.Users); err != nil {
		return Data{}, fmt.Errorf("fixture users: %w", err)
	}
	if err := model.ValidateAll(data.Posts); err != nil {
		return Data{}, fmt.Errorf("fixture posts: %w", err)
	}
	if err := model.ValidateAll(data.Comments); err != nil {
		return Data{}, fmt.Errorf("fixture comments: %w", err)
	}
	return data, nil
}

// Default returns the embedded record set.
func Default() Data {
	data, err := Load(defaultData)
	if err != nil {
		panic(err)
	}
	return data
}

// Server is a mutable in-memory API.
type Server struct {
	mu            sync.Mutex
	data          Data
	nextCommentID int
	failPosts     map[int]struct{}
	requests      int
}

// NewServer copies data into a new server.
func NewServer(data Data) *Server {
	s := &Server{
		data: Data{
			Users:    append([]model.User(nil), data.Users...),
			Posts:    append([]model.Post(nil), data.Posts...),
			Comments: append([]model.Comment(nil), data.Comments...),
		},
		failPosts: make(map[int]struct{}),
	}
	for _, c := range s.data.Comments {
		if c.ID >= s.nextCommentID {
			s.nextCommentID = c.ID + 1
		}
	}
	if s.nextCommentID == 0 {
		s.nextCommentID = 1
	}
	return s
}

// FailPostsFor makes GET /posts?userId=<userID> answer 500.
func (s *Server) FailPostsFor(userID int) {
	s.mu.Lock()
	s.failPosts[userID] = struct{}{}
	s.mu.Unlock()
}

// Requests returns how many API requests were served.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// Handler returns the router for the API.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.count)
	router.HandleFunc("/users", s.listUsers).Methods(http.MethodGet)
	router.HandleFunc("/posts", s.listPosts).Methods(http.MethodGet)
	router.HandleFunc("/comments", s.listComments).Methods(http.MethodGet)
	router.HandleFunc("/comments", s.createComment).Methods(http.MethodPost)
	router.HandleFunc("/comments/{id:[0-9]+}", s.deleteComment).Methods(http.MethodDelete)
	return router
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := append([]model.User{}, s.data.Users...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := queryInt(r, "userId")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, fail := s.failPosts[userID]; ok && fail {
		http.Error(w, "posts unavailable", http.StatusInternalServerError)
		return
	}
	posts := make([]model.Post, 0, len(s.data.Posts))
	for _, p := range s.data.Posts {
		if ok && p.UserID != userID {
			continue
		}
		posts = append(posts, p)
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := queryInt(r, "postId")
	s.mu.Lock()
	defer s.mu.Unlock()
	comments := make([]model.Comment, 0, len(s.data.Comments))
	for _, c := range s.data.Comments {
		if ok && c.PostID != postID {
			continue
		}
		comments = append(comments, c)
	}
	writeJSON(w, http.StatusOK, comments)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	var data model.CommentData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := model.Validate(&data); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.mu.Lock()
	comment := model.Comment{
		ID:     s.nextCommentID,
		PostID: data.PostID,
		Name:   data.Name,
		Email:  data.Email,
		Body:   data.Body,
	}
	s.nextCommentID++
	s.data.Comments = append(s.data.Comments, comment)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, comment)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.data.Comments {
		if c.ID == id {
			s.data.Comments = append(s.data.Comments[:i], s.data.Comments[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "comment not found", http.StatusNotFound)
}

func queryInt(r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
