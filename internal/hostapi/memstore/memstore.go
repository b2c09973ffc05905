// Package memstore is an in-memory reference implementation of
// hostapi.Store, for tests and headless embeddings that have no backing
// document store of their own.
package memstore

import (
	"fmt"
	"sync"

	"github.com/quillcore/editor/internal/hostapi"
)

// Store is a mutex-guarded map of documents keyed by title.
type Store struct {
	mu   sync.RWMutex
	docs map[string]hostapi.Document
}

// New creates an empty Store.
func New() *Store {
	return &Store{docs: make(map[string]hostapi.Document)}
}

// Seed creates a Store pre-populated with docs, keyed by their Title.
func Seed(docs ...hostapi.Document) *Store {
	s := New()
	for _, d := range docs {
		s.docs[d.Title] = d
	}
	return s
}

func (s *Store) GetDocument(title string) (hostapi.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[title]
	if !ok {
		return hostapi.Document{}, hostapi.ErrNotFound
	}
	return d, nil
}

func (s *Store) GetDocumentText(title string) string {
	d, err := s.GetDocument(title)
	if err != nil {
		return ""
	}
	return d.Text
}

func (s *Store) DocumentsWithTag(tag string) []hostapi.Document {
	return s.FilterDocuments(func(d hostapi.Document) bool { return d.HasTag(tag) })
}

func (s *Store) FilterDocuments(pred func(hostapi.Document) bool) []hostapi.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]hostapi.Document, 0)
	for _, d := range s.docs {
		if pred(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) SetText(title, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[title]
	if !ok {
		d = hostapi.Document{Title: title}
	}
	d.Text = text
	s.docs[title] = d
	return nil
}

func (s *Store) AddDocument(doc hostapi.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[doc.Title]; exists {
		return fmt.Errorf("memstore: document %q already exists", doc.Title)
	}
	s.docs[doc.Title] = doc
	return nil
}

func (s *Store) DocumentExists(title string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[title]
	return ok
}

var _ hostapi.Store = (*Store)(nil)
