package memory

import (
	"context"
	"sort"
	"sync"

	"quizroom/internal/domain"
)

// HistoryStore keeps finished-game records in memory.
type HistoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.GameRecord
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{records: make(map[string]domain.GameRecord)}
}

func (s *HistoryStore) Save(_ context.Context, rec domain.GameRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

func (s *HistoryStore) ListByHost(_ context.Context, hostID string, limit, offset int) ([]domain.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.GameRecord
	for _, rec := range s.records {
		if rec.HostID == hostID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndedAt.After(out[j].EndedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (s *HistoryStore) Get(_ context.Context, id string) (domain.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return domain.GameRecord{}, domain.ErrGameNotFound
	}
	return rec, nil
}
