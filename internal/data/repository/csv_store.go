package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v3"

	"github.com/gfragi/book-seat-pay/internal/data/entity"
)

// CSVStore keeps the booking table in a single CSV file, the format the
// parents' association already works with in spreadsheets.
type CSVStore struct {
	path      string
	backupDir string
}

func NewCSVStore(path, backupDir string) *CSVStore {
	return &CSVStore{path: path, backupDir: backupDir}
}

func (s *CSVStore) Load(ctx context.Context) ([]entity.Booking, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		// First run: materialize an empty table so admins find the file
		// where they expect it.
		if err := s.write(nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load", Path: s.path, Err: err}
	}
	defer f.Close()

	records, err := ReadTable(f)
	if err != nil {
		return nil, &StorageError{Op: "load", Path: s.path, Err: err}
	}
	return records, nil
}

func (s *CSVStore) Save(ctx context.Context, records []entity.Booking) error {
	return s.write(records)
}

func (s *CSVStore) Replace(ctx context.Context, records []entity.Booking) (string, error) {
	current, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	ref, err := s.archive(current)
	if err != nil {
		return "", err
	}
	if err := s.write(records); err != nil {
		return "", err
	}
	return ref, nil
}

// write goes through a temp file and rename so a crash mid-write leaves
// the previous table intact.
func (s *CSVStore) write(records []entity.Booking) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	if err := WriteTable(tmp, records); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return &StorageError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

func (s *CSVStore) archive(records []entity.Booking) (string, error) {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return "", &StorageError{Op: "archive", Path: s.backupDir, Err: err}
	}

	base := strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))
	name := fmt.Sprintf("%s-%s-%s.csv", base, time.Now().Format("20060102-150405"), shortuuid.New())

	f, err := os.Create(filepath.Join(s.backupDir, name))
	if err != nil {
		return "", &StorageError{Op: "archive", Path: name, Err: err}
	}
	if err := WriteTable(f, records); err != nil {
		f.Close()
		return "", &StorageError{Op: "archive", Path: name, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &StorageError{Op: "archive", Path: name, Err: err}
	}
	return name, nil
}
