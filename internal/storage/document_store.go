package storage

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"nova-suite/internal/apperrors"
	"nova-suite/internal/models"
)

// MaxDocuments bounds storage growth for the document editor
const MaxDocuments = 100

// DocumentStore persists all rich-text documents inside a single aggregate
// blob, keyed by sanitized name
type DocumentStore struct {
	mu     sync.Mutex
	kv     *KV
	logger *zap.Logger
}

// NewDocumentStore creates a document store over the given key-value store
func NewDocumentStore(kv *KV, logger *zap.Logger) *DocumentStore {
	return &DocumentStore{kv: kv, logger: logger}
}

// load reads the aggregate blob. Absent and corrupt blobs both degrade to an
// empty structure. Must be called with the lock held.
func (s *DocumentStore) load() *models.DocumentFile {
	file := &models.DocumentFile{Documents: make(map[string]*models.Document)}

	raw, ok, err := s.kv.Get(DocumentsKey)
	if err != nil {
		s.logger.Error("failed to read documents blob", zap.Error(err))
		return file
	}
	if !ok {
		return file
	}
	if err := json.Unmarshal([]byte(raw), file); err != nil {
		s.logger.Warn("documents blob is corrupt, using empty structure", zap.Error(err))
		return &models.DocumentFile{Documents: make(map[string]*models.Document)}
	}
	if file.Documents == nil {
		file.Documents = make(map[string]*models.Document)
	}
	return file
}

// save writes the aggregate blob. Must be called with the lock held.
func (s *DocumentStore) save(file *models.DocumentFile) error {
	data, err := json.Marshal(file)
	if err != nil {
		return apperrors.NewStorageError("failed to serialize documents").WithCause(err)
	}
	if err := s.kv.Set(DocumentsKey, string(data)); err != nil {
		return apperrors.NewStorageError("failed to persist documents").WithCause(err)
	}
	return nil
}

// Save stores a document under its sanitized name and returns that name.
// Overwrites replace silently; new documents beyond MaxDocuments are
// rejected before any mutation.
func (s *DocumentStore) Save(name, content string) (string, error) {
	sanitized := models.SanitizeName(name)
	if sanitized == "" {
		return "", apperrors.NewValidationError("document name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	if _, exists := file.Documents[sanitized]; !exists && len(file.Documents) >= MaxDocuments {
		return "", apperrors.NewValidationError("maximum number of documents reached")
	}

	file.Documents[sanitized] = &models.Document{
		Content:        content,
		LastEditDate:   time.Now(),
		CharacterCount: len([]rune(content)),
	}

	if err := s.save(file); err != nil {
		return "", err
	}
	return sanitized, nil
}

// Load returns the document with the given name
func (s *DocumentStore) Load(name string) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	doc, ok := file.Documents[name]
	if !ok {
		return nil, apperrors.NewNotFoundError("document not found: " + name)
	}
	return doc, nil
}

// Delete removes the document with the given name. Idempotent.
func (s *DocumentStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	delete(file.Documents, name)
	return s.save(file)
}

// List returns all documents sorted by last edit date, most recent first
func (s *DocumentStore) List() []models.DocumentInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	infos := make([]models.DocumentInfo, 0, len(file.Documents))
	for name, doc := range file.Documents {
		infos = append(infos, models.DocumentInfo{Name: name, Document: doc})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Document.LastEditDate.After(infos[j].Document.LastEditDate)
	})
	return infos
}

// Count returns the number of stored documents
func (s *DocumentStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.load().Documents)
}

// CanCreateNew reports whether another document fits under the cap
func (s *DocumentStore) CanCreateNew() bool {
	return s.Count() < MaxDocuments
}
