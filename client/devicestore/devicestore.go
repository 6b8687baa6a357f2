// Package devicestore is the client's persistent key/value storage: the
// place the session token, the cart and the address book survive between
// runs of the app.
package devicestore

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Keys used by the client packages.
const (
	KeyToken          = "token"
	KeyUser           = "user"
	KeyCart           = "cart"
	KeySavedAddresses = "savedAddresses"
	KeyLastOrder      = "lastOrder"
)

// ErrNotFound is returned by Get for a key that was never set or was removed.
var ErrNotFound = errors.New("devicestore: key not found")

// Storage holds raw JSON values by key.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// GetJSON decodes the value at key into v.
func GetJSON(s Storage, key string, v any) error {
	raw, err := s.Get(key)
	if err != nil {
		return err
	}
	return errors.Wrapf(json.Unmarshal(raw, v), "devicestore: decode %s", key)
}

// SetJSON encodes v and stores it at key.
func SetJSON(s Storage, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "devicestore: encode %s", key)
	}
	return s.Set(key, raw)
}

// Memory is a Storage that lives as long as the process.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// File keeps every key in one JSON document on disk, rewritten on each
// change through a temporary file and a rename.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return nil, err
	}
	v, ok := values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (f *File) Set(key string, value []byte) error {
	if !json.Valid(value) {
		return errors.Errorf("devicestore: value for %s is not valid JSON", key)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = json.RawMessage(append([]byte(nil), value...))
	return f.save(values)
}

func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

func (f *File) load() (map[string]json.RawMessage, error) {
	values := make(map[string]json.RawMessage)
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	} else if err != nil {
		return nil, errors.Wrap(err, "devicestore: read")
	}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, errors.Wrapf(err, "devicestore: parse %s", f.path)
	}
	return values, nil
}

func (f *File) save(values map[string]json.RawMessage) error {
	raw, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "devicestore: encode")
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrap(err, "devicestore: create directory")
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".devicestore-*")
	if err != nil {
		return errors.Wrap(err, "devicestore: create temp file")
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "devicestore: write")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "devicestore: close")
	}
	return errors.Wrap(os.Rename(tmp.Name(), f.path), "devicestore: rename")
}
