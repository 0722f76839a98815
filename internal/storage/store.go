// Package storage persists the household data model between runs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/hhforecast/household-forecast/internal/domain"
)

// DefaultKey is the storage key used when none is given.
const DefaultKey = "household"

var (
	// ErrLoadFailed means the stored record could not be read or parsed.
	// Load still returns a usable default model alongside it.
	ErrLoadFailed = errors.New("load failed")
	// ErrSaveFailed means the model could not be written. The in-memory model is unaffected.
	ErrSaveFailed = errors.New("save failed")
	// ErrInvalidKey rejects keys that would escape the store directory.
	ErrInvalidKey = errors.New("invalid storage key")
)

// Store loads and saves data models by key.
type Store interface {
	Load(ctx context.Context, key string) (*domain.DataModel, error)
	Save(ctx context.Context, key string, m *domain.DataModel) error
}

// FileStore keeps one JSON document per key under Dir.
type FileStore struct {
	Dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir. The directory is created on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.Dir, key+".json"), nil
}

// Load reads the model stored under key. A missing record yields defaults and no
// error. An unreadable or corrupt record yields defaults and ErrLoadFailed.
func (s *FileStore) Load(ctx context.Context, key string) (*domain.DataModel, error) {
	if err := ctx.Err(); err != nil {
		return domain.DefaultDataModel(), err
	}
	p, err := s.path(key)
	if err != nil {
		return domain.DefaultDataModel(), err
	}

	s.mu.Lock()
	data, err := os.ReadFile(p)
	s.mu.Unlock()
	if errors.Is(err, os.ErrNotExist) {
		return domain.DefaultDataModel(), nil
	}
	if err != nil {
		return domain.DefaultDataModel(), fmt.Errorf("%w: reading %s: %v", ErrLoadFailed, p, err)
	}
	return Decode(data)
}

// Decode parses a stored document. Top-level keys present in data replace the
// defaults; absent keys keep them.
func Decode(data []byte) (*domain.DataModel, error) {
	m := domain.DefaultDataModel()
	if err := json.Unmarshal(data, m); err != nil {
		return domain.DefaultDataModel(), fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	normalize(m)
	return m, nil
}

// normalize replaces null collections so callers can range and append freely.
func normalize(m *domain.DataModel) {
	if m.Accounts == nil {
		m.Accounts = []domain.Account{}
	}
	if m.Families == nil {
		m.Families = []domain.FamilyMember{}
	}
	if m.RecurringExpenses == nil {
		m.RecurringExpenses = []domain.RecurringExpense{}
	}
	if m.Loans == nil {
		m.Loans = []domain.Loan{}
	}
	if m.FutureEvents == nil {
		m.FutureEvents = []domain.FutureEvent{}
	}
	if m.MonthlyBalances == nil {
		m.MonthlyBalances = []domain.MonthlyBalance{}
	}
	if m.Scenarios == nil {
		m.Scenarios = []domain.Scenario{}
	}
	if m.Settings.IncomePlans == nil {
		m.Settings.IncomePlans = map[string]domain.IncomePlan{}
	}
}

// Save writes m under key through a temporary file and rename, so a failed write
// never leaves a truncated record behind.
func (s *FileStore) Save(ctx context.Context, key string, m *domain.DataModel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.path(key)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding: %v", ErrSaveFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	tmp, err := os.CreateTemp(s.Dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing %s: %v", ErrSaveFailed, p, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return nil
}

// Quarantine moves the record under key aside to <key>.json.bad so a later Save
// cannot overwrite it. It returns the new path, or "" when there was no record.
func (s *FileStore) Quarantine(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p, err := s.path(key)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bad := p + ".bad"
	if err := os.Rename(p, bad); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("setting aside %s: %w", p, err)
	}
	return bad, nil
}

// MemoryStore keeps deep copies of models in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	models map[string]*domain.DataModel
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{models: map[string]*domain.DataModel{}}
}

func (s *MemoryStore) Load(ctx context.Context, key string) (*domain.DataModel, error) {
	if err := ctx.Err(); err != nil {
		return domain.DefaultDataModel(), err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.models[key]
	if !ok {
		return domain.DefaultDataModel(), nil
	}
	return m.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, key string, m *domain.DataModel) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[key] = m.Clone()
	return nil
}
