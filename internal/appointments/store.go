package appointments

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Document is the on-disk layout of the record store. The top-level field is
// named "patients" for backward compatibility with existing data files and
// the booking form, even though the entries are appointments.
type Document struct {
	Patients []Appointment `json:"patients"`
}

// FileStore persists the appointment document as a single JSON file. Every
// mutation rewrites the whole file. A process-local mutex serializes
// load-mutate-save sections; concurrent writers in other processes can still
// lose updates (last writer wins), which is a known limitation of the
// single-file design.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Init ensures the data directory and an empty document exist. Called once at
// startup so first requests never race on file creation.
func (s *FileStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.loadLocked()
	return err
}

// Load deserializes the entire document. A missing file is initialized to an
// empty document.
func (s *FileStore) Load() (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Save serializes the entire document, overwriting the file.
func (s *FileStore) Save(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(doc)
}

// Update runs fn inside a single load-mutate-save critical section. If fn
// returns an error the document is not written back.
func (s *FileStore) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadLocked()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.saveLocked(doc)
}

func (s *FileStore) loadLocked() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		doc := &Document{Patients: []Appointment{}}
		if err := s.saveLocked(doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", s.path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", s.path, err)
	}
	if doc.Patients == nil {
		doc.Patients = []Appointment{}
	}
	return &doc, nil
}

func (s *FileStore) saveLocked(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("store: create data dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", s.path, err)
	}
	return nil
}
