package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// FileStore keeps one JSON document per key in a data directory.
type FileStore struct {
	dir  string
	mu   sync.RWMutex
	subs map[int]func(string)
	next int
	log  *logrus.Entry
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{
		dir:  dir,
		subs: make(map[int]func(string)),
		log:  logrus.WithField("component", "storage"),
	}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// validKey rejects keys that could name a file outside the data directory.
func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func (s *FileStore) Get(key string, dest any) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.mu.RLock()
	data, err := os.ReadFile(s.path(key))
	s.mu.RUnlock()
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read %q: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.log.WithField("key", key).WithError(err).Warn("malformed stored value")
		return ErrMalformed
	}
	return nil
}

func (s *FileStore) Put(key string, value any) error {
	if err := validKey(key); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	s.mu.Lock()
	err = writeAtomic(s.path(key), data)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	s.notify(key)
	return nil
}

func (s *FileStore) Delete(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	err := os.Remove(s.path(key))
	s.mu.Unlock()
	if errors.Is(err, fs.ErrNotExist) {
		// nothing was removed, so subscribers see no change
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	s.notify(key)
	return nil
}

func (s *FileStore) Subscribe(fn func(key string)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *FileStore) notify(key string) {
	s.mu.RLock()
	fns := make([]func(string), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(key)
	}
}

// writeAtomic writes via a temp file and rename so a crashed write never
// leaves a truncated document behind.
func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
