package cookies

import (
	"time"

	"github.com/kataras/iris/v12/sessions"
)

// SessionStore 基于 iris session 的实现，用于会话级数据（订单确认快照）。
// TTL 由 session 本身的生命周期决定，这里忽略传入值。
type SessionStore struct {
	sess *sessions.Session
}

// NewSessionStore 包装当前请求的 session
func NewSessionStore(sess *sessions.Session) *SessionStore {
	return &SessionStore{sess: sess}
}

func (s *SessionStore) Get(name string) (string, bool) {
	v := s.sess.GetString(name)
	if v == "" {
		return "", false
	}
	return v, true
}

func (s *SessionStore) Set(name, value string, _ time.Duration) {
	s.sess.Set(name, value)
}

func (s *SessionStore) Delete(name string) {
	s.sess.Delete(name)
}
