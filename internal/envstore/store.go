package envstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"envhist/internal/logging"
)

// DefaultFileName is the store file created in the user's home directory
// when no path is configured.
const DefaultFileName = ".envhist.json"

// DefaultPath resolves the default store location. Falls back to the
// working directory when the home directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// Store is the file-backed record store. Every mutation loads the full
// document, applies the change, and atomically rewrites the file. There is
// no locking: concurrent writers are last-write-wins by design (single
// operator usage).
type Store struct {
	path        string
	uniqueNames bool
	now         func() time.Time
	log         *slog.Logger
}

// Option configures a Store at Open time.
type Option func(*Store)

// WithUniqueClusterNames makes Add reject a cluster_name that already
// exists in the store (case-insensitive). Off by default: re-testing the
// same cluster name is a legitimate workflow.
func WithUniqueClusterNames() Option {
	return func(s *Store) { s.uniqueNames = true }
}

// WithClock injects the time source. Tests use this to make timestamp
// assertions deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open returns a Store bound to the given file path. The file is not
// touched until the first Load or mutation.
func Open(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		now:  func() time.Time { return time.Now().UTC() },
		log:  logging.New("envstore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads all records from the backing file. A missing file is an empty
// store, not an error. An unparseable file is ErrCorruptStore; the file is
// left untouched so nothing is lost.
func (s *Store) Load() ([]*Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", s.path, err)
	}
	var records []*Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, s.path, err)
	}
	return records, nil
}

// save serializes the full record set and atomically replaces the backing
// file (temp file + rename in the same directory). On any error the
// original file is untouched. Mode 0600: the file holds plaintext
// credentials.
func (s *Store) save(records []*Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".envhist-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("chmod store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	s.log.Debug("store saved", "path", s.path, "records", len(records))
	return nil
}

// validateNew checks the required fields on a record about to be created.
func validateNew(rec *Record) error {
	required := []struct {
		field string
		value string
	}{
		{"cluster_name", rec.ClusterName},
		{"api_url", rec.APIURL},
		{"username", rec.Username},
		{"password", rec.Password},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.field, Reason: "required field is missing"}
		}
	}
	return nil
}

// Add validates rec, assigns an id and timestamps, appends it and persists.
// The input is not mutated; the stored copy is returned.
func (s *Store) Add(rec *Record) (*Record, error) {
	if rec == nil {
		return nil, errors.New("record is nil")
	}
	if err := validateNew(rec); err != nil {
		return nil, err
	}
	cp := rec.Clone()
	if cp.TestStatus == "" {
		cp.TestStatus = StatusUnknown
	} else {
		st, err := ParseStatus(string(cp.TestStatus))
		if err != nil {
			return nil, err
		}
		cp.TestStatus = st
	}

	records, err := s.Load()
	if err != nil {
		return nil, err
	}
	if s.uniqueNames {
		for _, r := range records {
			if strings.EqualFold(r.ClusterName, cp.ClusterName) {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateClusterName, cp.ClusterName)
			}
		}
	}

	now := s.now()
	cp.ID = uuid.NewString()
	cp.CreatedAt = now
	cp.LastUsedAt = now
	records = append(records, cp)
	if err := s.save(records); err != nil {
		return nil, err
	}
	s.log.Info("record added", "id", cp.ID, "cluster", cp.ClusterName)
	return cp.Clone(), nil
}

// Patch is a partial update. Only the fields that remain mutable after
// creation are representable; nil means "leave unchanged".
type Patch struct {
	TestStatus *Status
	Notes      *string
	LastUsedAt *time.Time
}

// Update applies a patch to the record with the given id and persists.
// Update does not move last_used_at unless the patch sets it explicitly
// (that is Touch's job).
func (s *Store) Update(id string, p Patch) (*Record, error) {
	if p.TestStatus != nil {
		st, err := ParseStatus(string(*p.TestStatus))
		if err != nil {
			return nil, err
		}
		p.TestStatus = &st
	}
	records, err := s.Load()
	if err != nil {
		return nil, err
	}
	rec := findByID(records, id)
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if p.LastUsedAt != nil && p.LastUsedAt.Before(rec.CreatedAt) {
		return nil, &ValidationError{Field: "last_used_at", Reason: "must not precede created_at"}
	}
	if p.TestStatus != nil {
		rec.TestStatus = *p.TestStatus
	}
	if p.Notes != nil {
		rec.Notes = *p.Notes
	}
	if p.LastUsedAt != nil {
		rec.LastUsedAt = *p.LastUsedAt
	}
	if err := s.save(records); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// Touch sets last_used_at to now and persists. Called whenever a record is
// selected for reconnection.
func (s *Store) Touch(id string) (*Record, error) {
	records, err := s.Load()
	if err != nil {
		return nil, err
	}
	rec := findByID(records, id)
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	now := s.now()
	if now.After(rec.LastUsedAt) {
		rec.LastUsedAt = now
	}
	if err := s.save(records); err != nil {
		return nil, err
	}
	return rec.Clone(), nil
}

// Delete removes the record with the given id and persists. Deleting an
// absent id is ErrNotFound, not a no-op, so caller bugs surface.
func (s *Store) Delete(id string) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	for i, r := range records {
		if r.ID == id {
			records = append(records[:i], records[i+1:]...)
			if err := s.save(records); err != nil {
				return err
			}
			s.log.Info("record deleted", "id", id)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (*Record, error) {
	records, err := s.Load()
	if err != nil {
		return nil, err
	}
	rec := findByID(records, id)
	if rec == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return rec.Clone(), nil
}

func findByID(records []*Record, id string) *Record {
	for _, r := range records {
		if r.ID == id {
			return r
		}
	}
	return nil
}
