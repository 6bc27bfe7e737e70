package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/phoenixgodbrain/neurogate/internal/domain/model"
	"github.com/phoenixgodbrain/neurogate/pkg/logger"
	"github.com/phoenixgodbrain/neurogate/pkg/metrics"
)

// snapshot is the on-disk shape of the store. Version guards future
// layout changes the same way model.Profile.Version does.
type snapshot struct {
	Version int                         `json:"version"`
	Records map[string]model.UserRecord `json:"records"`
	Paths   map[string]model.Path       `json:"paths"`
}

const snapshotVersion = 1

// FileStore is an in-memory Store backed by a JSON snapshot on disk.
// Every mutation rewrites the snapshot; a load failure at startup
// degrades to an empty store rather than refusing to start.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	records map[string]model.UserRecord
	paths   map[string]model.Path
	log     logger.Logger
}

// NewFileStore creates a store backed by the snapshot file at path.
// An empty path keeps the store memory-only.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:    path,
		records: make(map[string]model.UserRecord),
		paths:   make(map[string]model.Path),
		log:     logger.Get().Named("repository"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

// load reads the snapshot file into memory. Missing files are normal on
// first run; corrupt files are logged and replaced on the next save.
func (s *FileStore) load() {
	if s.path == "" {
		return
	}
	ctx := context.Background()
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			metrics.RecordStoreLoadError()
			s.log.Warn(ctx, "snapshot unreadable, starting empty",
				logger.String("path", s.path),
				logger.Error(err))
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		metrics.RecordStoreLoadError()
		s.log.Warn(ctx, "snapshot corrupt, starting empty",
			logger.String("path", s.path),
			logger.Error(err))
		return
	}
	if snap.Records != nil {
		s.records = snap.Records
	}
	if snap.Paths != nil {
		s.paths = snap.Paths
	}
	s.log.Info(ctx, "snapshot loaded",
		logger.String("path", s.path),
		logger.Int("records", len(s.records)))
}

// persistLocked writes the snapshot atomically. Caller holds s.mu.
func (s *FileStore) persistLocked() error {
	if s.path == "" {
		return nil
	}
	snap := snapshot{
		Version: snapshotVersion,
		Records: s.records,
		Paths:   s.paths,
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		metrics.RecordStoreSaveError()
		return fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		metrics.RecordStoreSaveError()
		return fmt.Errorf("%w: %w", ErrSnapshot, err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		metrics.RecordStoreSaveError()
		return fmt.Errorf("%w: %w", ErrSnapshot, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		metrics.RecordStoreSaveError()
		return fmt.Errorf("%w: %w", ErrSnapshot, err)
	}
	metrics.RecordStoreSave()
	return nil
}

// Load returns the record for an identity.
func (s *FileStore) Load(_ context.Context, email string) (model.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[email]
	if !ok {
		return model.UserRecord{}, ErrNotFound
	}
	return rec, nil
}

// Save writes the record for an identity.
func (s *FileStore) Save(_ context.Context, email string, rec model.UserRecord) error {
	if email == "" {
		return ErrEmptyIdentity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[email] = rec
	return s.persistLocked()
}

// ChosenPath returns the committed path for an identity.
func (s *FileStore) ChosenPath(_ context.Context, email string) (model.Path, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.paths[email]
	if !ok {
		return model.PathNone, nil
	}
	return p, nil
}

// SetChosenPath commits the path for an identity.
func (s *FileStore) SetChosenPath(_ context.Context, email string, p model.Path) error {
	if email == "" {
		return ErrEmptyIdentity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths[email] = p
	return s.persistLocked()
}

// Delete removes the record and chosen path for an identity.
func (s *FileStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, email)
	delete(s.paths, email)
	return s.persistLocked()
}

// Count returns the number of identities tracked.
func (s *FileStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close flushes the snapshot.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked()
}
