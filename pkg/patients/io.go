package patients

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/skomura/medlabel/pkg/errors"
)

// WriteRecords encodes records as an indented JSON array to w. The
// output is the same schema the store uses, so an exported file can be
// re-imported with [ReadRecords] without loss.
func WriteRecords(records []Record, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadRecords decodes a JSON record array from r. Anything that is not
// an array of records is rejected.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRecord, err, "not a patient record list")
	}
	return records, nil
}

// Export writes the store's records to a JSON file at path.
func (s *Store) Export(path string) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteRecords(records, f)
}

// Import replaces the store's records with the list in the JSON file at
// path. The file is validated before anything is overwritten.
func (s *Store) Import(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
		}
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return 0, err
	}
	if err := s.Save(records); err != nil {
		return 0, err
	}
	return len(records), nil
}
