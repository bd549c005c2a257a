package patients

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/skomura/medlabel/pkg/errors"
)

// Store is a file-backed patient-record store. All records live in one
// JSON array; every mutation rewrites the whole file.
type Store struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns the fixed per-user records location,
// ~/.medication_labels.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".medication_labels.json"), nil
}

// NewStore creates a store at path. If path is empty the default
// per-user location is used.
func NewStore(path string) (*Store, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	return &Store{path: path}, nil
}

// Path returns the records file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads all records. A missing file is an empty list, not an error.
func (s *Store) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("read records: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "parse %s", s.path)
	}
	return records, nil
}

// Save replaces the whole record list.
func (s *Store) Save(records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(records)
}

func (s *Store) save(records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

// List returns all records sorted by reading/name.
func (s *Store) List() ([]Record, error) {
	records, err := s.Load()
	if err != nil {
		return nil, err
	}
	Sort(records)
	return records, nil
}

// Get returns the record with the given name.
func (s *Store) Get(name string) (Record, error) {
	records, err := s.Load()
	if err != nil {
		return Record{}, err
	}
	for _, r := range records {
		if r.Name == name {
			return r, nil
		}
	}
	return Record{}, errors.New(errors.ErrCodePatientNotFound, "no saved patient named %q", name)
}

// Upsert inserts the record, replacing any existing record with the same
// name. It reports whether an existing record was updated.
func (s *Store) Upsert(rec Record) (bool, error) {
	if rec.Name == "" {
		return false, errors.New(errors.ErrCodeInvalidName, "patient name is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return false, err
	}
	for i, r := range records {
		if r.Name == rec.Name {
			records[i] = rec
			return true, s.save(records)
		}
	}
	records = append(records, rec)
	return false, s.save(records)
}

// Delete removes the record with the given name.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	for i, r := range records {
		if r.Name == name {
			records = append(records[:i], records[i+1:]...)
			return s.save(records)
		}
	}
	return errors.New(errors.ErrCodePatientNotFound, "no saved patient named %q", name)
}
