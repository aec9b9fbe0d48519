package orderform

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-orderform/pkg/form"
)

type session struct {
	id       string
	csrf     string
	form     *form.Form
	lastSeen time.Time
}

// sessionStore keeps one form per browser session and drops sessions idle
// for longer than ttl.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	now      func() time.Time
	newForm  func() *form.Form
}

func newSessionStore(ttl time.Duration, now func() time.Time, newForm func() *form.Form) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		now:      now,
		newForm:  newForm,
	}
}

// get returns the live session for id and refreshes its idle timer.
func (s *sessionStore) get(id string) (*session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(sess.lastSeen) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

func (s *sessionStore) create() *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	sess := &session{
		id:       uuid.NewString(),
		csrf:     uuid.NewString(),
		form:     s.newForm(),
		lastSeen: now,
	}
	s.sessions[sess.id] = sess
	return sess
}

func (s *sessionStore) sweepLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
