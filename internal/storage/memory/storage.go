// Package memory is the in-memory Storage implementation, the default when
// no redis is configured. The bank dies with the process.
package memory

import (
	"context"
	"sync"

	"github.com/pokerhub/holdem-room/internal/model"
	"github.com/pokerhub/holdem-room/internal/storage"
)

type Storage struct {
	mu   sync.RWMutex
	bank map[model.PlayerID]model.BankRecord
}

var _ storage.Storage = (*Storage)(nil)

func New() *Storage {
	return &Storage{bank: make(map[model.PlayerID]model.BankRecord)}
}

func (s *Storage) LoadBank(_ context.Context) (map[model.PlayerID]model.BankRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[model.PlayerID]model.BankRecord, len(s.bank))
	for id, rec := range s.bank {
		out[id] = rec
	}
	return out, nil
}

func (s *Storage) UpsertRecords(_ context.Context, records map[model.PlayerID]model.BankRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rec := range records {
		s.bank[id] = rec
	}
	return nil
}

func (s *Storage) ClearBank(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bank = make(map[model.PlayerID]model.BankRecord)
	return nil
}
