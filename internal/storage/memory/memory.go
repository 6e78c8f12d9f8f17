// Package memory implements a Store that never touches disk, for tests and
// ephemeral runs.
package memory

import (
	"context"
	"slices"
	"sync"

	"bankledger/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	mu   sync.Mutex
	snap storage.Snapshot
}

func New() *Store {
	return &Store{snap: storage.EmptySnapshot()}
}

func (s *Store) Load(ctx context.Context) (storage.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSnapshot(s.snap), nil
}

func (s *Store) Save(ctx context.Context, snap storage.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = cloneSnapshot(snap)
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = storage.EmptySnapshot()
	return nil
}

func cloneSnapshot(in storage.Snapshot) storage.Snapshot {
	out := storage.EmptySnapshot()
	for id, c := range in.Customers {
		c.AccountNumbers = slices.Clone(c.AccountNumbers)
		out.Customers[id] = c
	}
	for num, a := range in.Accounts {
		if a.InterestRate != nil {
			rate := *a.InterestRate
			a.InterestRate = &rate
		}
		if a.OverdraftLimit != nil {
			limit := *a.OverdraftLimit
			a.OverdraftLimit = &limit
		}
		out.Accounts[num] = a
	}
	return out
}
