package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"nova-suite/internal/apperrors"
	"nova-suite/internal/models"
)

// MaxPresentations bounds storage growth for the slide editor
const MaxPresentations = 50

// PresentationStore persists presentations one per key under the
// presentation_ prefix
type PresentationStore struct {
	mu     sync.Mutex
	kv     *KV
	logger *zap.Logger
}

// NewPresentationStore creates a presentation store over the given key-value
// store
func NewPresentationStore(kv *KV, logger *zap.Logger) *PresentationStore {
	return &PresentationStore{kv: kv, logger: logger}
}

func presentationKey(id int64) string {
	return fmt.Sprintf("%s%d", PresentationPrefix, id)
}

// Save serializes the presentation and writes it under its key, refreshing
// the last-modified timestamp. Last write wins.
func (s *PresentationStore) Save(p *models.Presentation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.Touch()
	data, err := json.Marshal(p)
	if err != nil {
		return apperrors.NewStorageError("failed to serialize presentation").WithCause(err)
	}
	if err := s.kv.Set(presentationKey(p.ID), string(data)); err != nil {
		return apperrors.NewStorageError("failed to persist presentation").WithCause(err)
	}
	return nil
}

// Load returns the presentation with the given id. Absent keys and corrupt
// records both come back as not found.
func (s *PresentationStore) Load(id int64) (*models.Presentation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(presentationKey(id))
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read presentation").WithCause(err)
	}
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("presentation %d not found", id))
	}

	var p models.Presentation
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.logger.Warn("presentation record is corrupt, treating as not found",
			zap.Int64("id", id), zap.Error(err))
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("presentation %d not found", id))
	}
	return &p, nil
}

// Delete removes the presentation with the given id. Idempotent.
func (s *PresentationStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(presentationKey(id)); err != nil {
		return apperrors.NewStorageError("failed to delete presentation").WithCause(err)
	}
	return nil
}

// List scans every key under the presentation_ prefix and returns the decoded
// presentations sorted by last-modified, most recent first. Keys whose suffix
// is not a numeric id (the folders record shares the prefix) and corrupt
// records are skipped.
func (s *PresentationStore) List() ([]*models.Presentation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.kv.ListPrefix(PresentationPrefix)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list presentations").WithCause(err)
	}

	presentations := make([]*models.Presentation, 0, len(entries))
	for key, raw := range entries {
		suffix := strings.TrimPrefix(key, PresentationPrefix)
		if _, err := strconv.ParseInt(suffix, 10, 64); err != nil {
			continue
		}
		var p models.Presentation
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			s.logger.Warn("skipping corrupt presentation record",
				zap.String("key", key), zap.Error(err))
			continue
		}
		presentations = append(presentations, &p)
	}

	sort.Slice(presentations, func(i, j int) bool {
		return presentations[i].LastModified.After(presentations[j].LastModified)
	})
	return presentations, nil
}

// Count returns the number of stored presentations
func (s *PresentationStore) Count() (int, error) {
	list, err := s.List()
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// CanCreateNew reports whether another presentation fits under the cap
func (s *PresentationStore) CanCreateNew() bool {
	count, err := s.Count()
	if err != nil {
		return false
	}
	return count < MaxPresentations
}
