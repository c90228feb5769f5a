package models

import (
	"strings"
	"time"
)

// Document is a rich-text document. Content is opaque serialized markup
// produced by the client-side editor.
type Document struct {
	Content        string    `json:"content"`
	LastEditDate   time.Time `json:"lastEditDate"`
	CharacterCount int       `json:"characterCount"`
}

// DocumentFile is the aggregate blob holding all documents, keyed by
// sanitized name
type DocumentFile struct {
	Documents map[string]*Document `json:"documents"`
}

// DocumentInfo pairs a document with its name for listing
type DocumentInfo struct {
	Name     string    `json:"name"`
	Document *Document `json:"document"`
}

// SanitizeName strips characters that are illegal in file names and trims
// surrounding whitespace. Names that collide after sanitization overwrite
// each other.
func SanitizeName(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(sanitized)
}
