package storage

import (
	"encoding/json"
	"sort"
	"sync"

	"go.uber.org/zap"

	"nova-suite/internal/apperrors"
	"nova-suite/internal/models"
)

// FolderStore persists the single aggregate folders record. It is read and
// written wholesale on every change and is not transactional with the
// presentation keys themselves; dangling ids are filtered at list time.
type FolderStore struct {
	mu     sync.Mutex
	kv     *KV
	logger *zap.Logger
}

// NewFolderStore creates a folder store over the given key-value store
func NewFolderStore(kv *KV, logger *zap.Logger) *FolderStore {
	return &FolderStore{kv: kv, logger: logger}
}

// load reads the folders record, degrading to a fresh structure on absence
// or corruption. The default folder always exists. Must be called with the
// lock held.
func (s *FolderStore) load() *models.FolderFile {
	raw, ok, err := s.kv.Get(FoldersKey)
	if err != nil {
		s.logger.Error("failed to read folders record", zap.Error(err))
		return models.NewFolderFile()
	}
	if !ok {
		return models.NewFolderFile()
	}

	var file models.FolderFile
	if err := json.Unmarshal([]byte(raw), &file); err != nil {
		s.logger.Warn("folders record is corrupt, using empty structure", zap.Error(err))
		return models.NewFolderFile()
	}
	if file.Folders == nil {
		file.Folders = make(map[string]*models.Folder)
	}
	if _, exists := file.Folders[models.DefaultFolder]; !exists {
		file.Folders[models.DefaultFolder] = &models.Folder{
			Name:          models.DefaultFolder,
			Presentations: []int64{},
		}
	}
	return &file
}

// save writes the folders record. Must be called with the lock held.
func (s *FolderStore) save(file *models.FolderFile) error {
	data, err := json.Marshal(file)
	if err != nil {
		return apperrors.NewStorageError("failed to serialize folders").WithCause(err)
	}
	if err := s.kv.Set(FoldersKey, string(data)); err != nil {
		return apperrors.NewStorageError("failed to persist folders").WithCause(err)
	}
	return nil
}

// Create adds a new empty folder
func (s *FolderStore) Create(name string) error {
	if name == "" {
		return apperrors.NewValidationError("folder name cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	if _, exists := file.Folders[name]; exists {
		return apperrors.NewConflictError("folder already exists: " + name)
	}
	file.Folders[name] = &models.Folder{Name: name, Presentations: []int64{}}
	return s.save(file)
}

// Delete removes a folder, moving its members back to the default folder.
// The default folder cannot be deleted.
func (s *FolderStore) Delete(name string) error {
	if name == models.DefaultFolder {
		return apperrors.NewValidationError("the default folder cannot be deleted")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	folder, exists := file.Folders[name]
	if !exists {
		return apperrors.NewNotFoundError("folder not found: " + name)
	}

	def := file.Folders[models.DefaultFolder]
	for _, id := range folder.Presentations {
		if !def.Contains(id) {
			def.Presentations = append(def.Presentations, id)
		}
	}
	delete(file.Folders, name)
	return s.save(file)
}

// Move places a presentation in the given folder, removing it from every
// other folder first so the id appears in at most one non-default folder
func (s *FolderStore) Move(presentationID int64, folderName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	target, exists := file.Folders[folderName]
	if !exists {
		return apperrors.NewNotFoundError("folder not found: " + folderName)
	}

	for _, folder := range file.Folders {
		folder.Remove(presentationID)
	}
	target.Presentations = append(target.Presentations, presentationID)
	return s.save(file)
}

// RemoveEverywhere drops a presentation id from every folder, used when the
// presentation itself is deleted
func (s *FolderStore) RemoveEverywhere(presentationID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	removed := false
	for _, folder := range file.Folders {
		if folder.Remove(presentationID) {
			removed = true
		}
	}
	if !removed {
		return nil
	}
	return s.save(file)
}

// FolderOf returns the name of the folder holding the presentation,
// defaulting to the default folder
func (s *FolderStore) FolderOf(presentationID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	for name, folder := range file.Folders {
		if name == models.DefaultFolder {
			continue
		}
		if folder.Contains(presentationID) {
			return name
		}
	}
	return models.DefaultFolder
}

// List returns all folders sorted by name with the default folder first.
// Ids not present in validIDs are filtered out; a nil validIDs skips the
// filtering.
func (s *FolderStore) List(validIDs map[int64]bool) []*models.Folder {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.load()
	folders := make([]*models.Folder, 0, len(file.Folders))
	for _, folder := range file.Folders {
		if validIDs != nil {
			kept := make([]int64, 0, len(folder.Presentations))
			for _, id := range folder.Presentations {
				if validIDs[id] {
					kept = append(kept, id)
				}
			}
			folder = &models.Folder{Name: folder.Name, Presentations: kept}
		}
		folders = append(folders, folder)
	}
	sort.Slice(folders, func(i, j int) bool {
		if folders[i].Name == models.DefaultFolder {
			return true
		}
		if folders[j].Name == models.DefaultFolder {
			return false
		}
		return folders[i].Name < folders[j].Name
	})
	return folders
}
