package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"quizroom/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Live sessions stay in a local map so the in-process broadcast and
//     mutex logic keep working; Redis carries the join-code index and a
//     liveness marker per game.
//   - The local map stays authoritative for lookups; the Redis keys give
//     operators visibility into live games and their codes.
//   - For true multi-instance play you'd pair this with a pub/sub
//     projector that fans snapshots out across nodes.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
	byCode   map[string]string
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
		byCode:   make(map[string]string),
	}
}

func (s *SessionStore) Put(session *app.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID()] = session
	s.byCode[session.Code()] = session.ID()
	ctx := context.Background()
	// best-effort liveness marker plus code index
	_ = s.client.Set(ctx, s.sessionKey(session.ID()), "1", s.ttl).Err()
	_ = s.client.Set(ctx, s.codeKey(session.Code()), session.ID(), s.ttl).Err()
}

func (s *SessionStore) Get(id string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *SessionStore) GetByCode(code string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byCode[code]
	if !ok {
		return nil, false
	}
	session, ok := s.sessions[id]
	return session, ok
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return
	}
	delete(s.byCode, session.Code())
	delete(s.sessions, id)
	ctx := context.Background()
	_ = s.client.Del(ctx, s.sessionKey(id)).Err()
	_ = s.client.Del(ctx, s.codeKey(session.Code())).Err()
}

func (s *SessionStore) List() []*app.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*app.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		out = append(out, session)
	}
	return out
}

func (s *SessionStore) sessionKey(id string) string {
	return "game:session:" + id
}

func (s *SessionStore) codeKey(code string) string {
	return "game:code:" + code
}
