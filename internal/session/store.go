package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("session: key not found")
	ErrCorrupt  = errors.New("session: corrupt store")
)

// Store is a small string key/value store scoped to one user session.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// FileStore keeps all entries of one session in a single yaml file under
// baseDir. The directory is expected to be volatile (runtime dir or tmp).
type FileStore struct {
	baseDir string
	id      string
}

func NewFileStore(baseDir, sessionID string) *FileStore {
	return &FileStore{baseDir: baseDir, id: sessionID}
}

// DefaultDir returns $XDG_RUNTIME_DIR/scrollfield, falling back to the
// system temp dir. Both are cleared at logout or reboot.
func DefaultDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "scrollfield")
	}
	return filepath.Join(os.TempDir(), "scrollfield-"+strconv.Itoa(os.Getuid()))
}

// DefaultID identifies the current session: $SCROLLFIELD_SESSION if set,
// otherwise the parent process (the launching shell).
func DefaultID() string {
	if id := os.Getenv("SCROLLFIELD_SESSION"); id != "" {
		return id
	}
	return strconv.Itoa(os.Getppid())
}

func (s *FileStore) Init() error {
	return os.MkdirAll(s.baseDir, 0700)
}

func (s *FileStore) Path() string {
	return filepath.Join(s.baseDir, fmt.Sprintf("session-%s.yaml", s.id))
}

func (s *FileStore) Get(key string) (string, error) {
	entries, err := s.load()
	if err != nil {
		return "", err
	}
	v, ok := entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set writes value under key. A corrupt file is replaced rather than
// blocking every later write.
func (s *FileStore) Set(key, value string) error {
	entries, err := s.load()
	if errors.Is(err, ErrCorrupt) {
		entries, err = map[string]string{}, nil
	}
	if err != nil {
		return err
	}
	entries[key] = value
	return s.save(entries)
}

func (s *FileStore) Delete(key string) error {
	entries, err := s.load()
	if errors.Is(err, ErrCorrupt) {
		return s.remove()
	}
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	if len(entries) == 0 {
		return s.remove()
	}
	return s.save(entries)
}

func (s *FileStore) remove() error {
	err := os.Remove(s.Path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	entries := map[string]string{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCorrupt, s.Path(), err)
	}
	return entries, nil
}

func (s *FileStore) save(entries map[string]string) error {
	if err := s.Init(); err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return err
	}

	// Write-then-rename so a crash mid-write never leaves a torn file.
	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.Path())
}

// MemoryStore is an in-process Store, used when no session directory is
// usable and in tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
