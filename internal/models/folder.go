package models

// DefaultFolder is the distinguished folder that always exists and cannot
// be deleted
const DefaultFolder = "default"

// Folder is a named grouping of presentation ids, independent of the
// presentations' own storage records
type Folder struct {
	Name          string  `json:"name"`
	Presentations []int64 `json:"presentations"`
}

// FolderFile is the aggregate record holding every folder, read and written
// wholesale on each change
type FolderFile struct {
	Folders map[string]*Folder `json:"folders"`
}

// NewFolderFile returns a folder file containing only the default folder
func NewFolderFile() *FolderFile {
	return &FolderFile{
		Folders: map[string]*Folder{
			DefaultFolder: {Name: DefaultFolder, Presentations: []int64{}},
		},
	}
}

// Contains reports whether the folder references the given presentation id
func (f *Folder) Contains(id int64) bool {
	for _, p := range f.Presentations {
		if p == id {
			return true
		}
	}
	return false
}

// Remove drops the given presentation id from the folder and reports whether
// it was present
func (f *Folder) Remove(id int64) bool {
	for i, p := range f.Presentations {
		if p == id {
			f.Presentations = append(f.Presentations[:i], f.Presentations[i+1:]...)
			return true
		}
	}
	return false
}
