package events

import "github.com/atomicstack/authorview/internal/logging"

type RequestTracer struct{}

type UsersTracer struct{}

type PostsTracer struct{}

type CommentsTracer struct{}

type SelectionTracer struct{}

var (
	Request   = RequestTracer{}
	Users     = UsersTracer{}
	Posts     = PostsTracer{}
	Comments  = CommentsTracer{}
	Selection = SelectionTracer{}
)

func (RequestTracer) Send(id, method, path string) {
	logging.Trace("request.send", map[string]interface{}{"id": id, "method": method, "path": path})
}

func (RequestTracer) Done(id string, status int, millis int64) {
	logging.Trace("request.done", map[string]interface{}{"id": id, "status": status, "ms": millis})
}

func (RequestTracer) Failed(id string, err error) {
	logging.Trace("request.failed", map[string]interface{}{"id": id, "error": errString(err)})
}

func (UsersTracer) Loaded(count int) {
	logging.Trace("users.loaded", map[string]interface{}{"count": count})
}

func (UsersTracer) Failed(err error) {
	logging.Trace("users.failed", map[string]interface{}{"error": errString(err)})
}

func (PostsTracer) Fetch(userID, seq int) {
	logging.Trace("posts.fetch", map[string]interface{}{"user": userID, "seq": seq})
}

func (PostsTracer) Loaded(userID, seq, count int) {
	logging.Trace("posts.loaded", map[string]interface{}{"user": userID, "seq": seq, "count": count})
}

func (PostsTracer) Failed(userID, seq int, err error) {
	logging.Trace("posts.failed", map[string]interface{}{"user": userID, "seq": seq, "error": errString(err)})
}

func (PostsTracer) Stale(userID, seq int) {
	logging.Trace("posts.stale", map[string]interface{}{"user": userID, "seq": seq})
}

func (CommentsTracer) Fetch(postID, seq int) {
	logging.Trace("comments.fetch", map[string]interface{}{"post": postID, "seq": seq})
}

func (CommentsTracer) Loaded(postID, seq, count int) {
	logging.Trace("comments.loaded", map[string]interface{}{"post": postID, "seq": seq, "count": count})
}

func (CommentsTracer) Failed(postID, seq int, err error) {
	logging.Trace("comments.failed", map[string]interface{}{"post": postID, "seq": seq, "error": errString(err)})
}

func (CommentsTracer) Stale(postID, seq int) {
	logging.Trace("comments.stale", map[string]interface{}{"post": postID, "seq": seq})
}

func (CommentsTracer) Create(postID int, name string) {
	logging.Trace("comments.create", map[string]interface{}{"post": postID, "name": name})
}

func (CommentsTracer) Delete(commentID int) {
	logging.Trace("comments.delete", map[string]interface{}{"comment": commentID})
}

func (SelectionTracer) User(id int) {
	logging.Trace("selection.user", map[string]interface{}{"user": id})
}

func (SelectionTracer) Post(id int) {
	logging.Trace("selection.post", map[string]interface{}{"post": id})
}

func (SelectionTracer) ClearPost() {
	logging.Trace("selection.post.clear", nil)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
