// Package jsonfile implements the durable record as two human-readable JSON
// documents, one per collection. Writes replace each document atomically via
// a temp file and rename so a crash mid-write cannot corrupt the record.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"bankledger/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	customerPath string
	accountPath  string
	logger       *slog.Logger
}

func New(customerPath, accountPath string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		customerPath: customerPath,
		accountPath:  accountPath,
		logger:       logger,
	}
}

// Load reads both documents. A missing or unparsable document yields an empty
// collection rather than an error, so a fresh or damaged data directory still
// starts an empty ledger.
func (s *Store) Load(ctx context.Context) (storage.Snapshot, error) {
	snap := storage.EmptySnapshot()

	if err := s.loadDocument(s.customerPath, &snap.Customers); err != nil {
		snap.Customers = make(map[string]storage.CustomerRecord)
	}
	if err := s.loadDocument(s.accountPath, &snap.Accounts); err != nil {
		snap.Accounts = make(map[string]storage.AccountRecord)
	}

	return snap, nil
}

func (s *Store) loadDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Failed to read document, starting empty",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("Failed to parse document, starting empty",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Save overwrites both documents with the full snapshot.
func (s *Store) Save(ctx context.Context, snap storage.Snapshot) error {
	if err := s.saveDocument(s.customerPath, snap.Customers); err != nil {
		return fmt.Errorf("save customers: %w", err)
	}
	if err := s.saveDocument(s.accountPath, snap.Accounts); err != nil {
		return fmt.Errorf("save accounts: %w", err)
	}
	return nil
}

func (s *Store) saveDocument(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Clear deletes both documents. Missing files are not an error.
func (s *Store) Clear(ctx context.Context) error {
	var errs []error
	for _, path := range []string{s.customerPath, s.accountPath} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
