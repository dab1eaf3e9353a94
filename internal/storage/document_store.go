// internal/storage/document_store.go
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DocumentStore persists JSON documents on disk, one file per document,
// grouped into collections (subdirectories). Writes are atomic
// (temp file + rename) and guarded by per-file locks; reads go through a
// small expiring cache. The store provides single-document atomicity
// only — concurrent writers to the same document are last-write-wins.
type DocumentStore struct {
	BaseDir string

	fileLocks sync.Map // path -> *sync.RWMutex

	cache        map[string]*cacheEntry
	cacheMutex   sync.RWMutex
	cacheExpiry  time.Duration
	maxCacheSize int
}

type cacheEntry struct {
	data      []byte
	timestamp time.Time
}

// NewDocumentStore creates a store rooted at baseDir.
func NewDocumentStore(baseDir string) (*DocumentStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return &DocumentStore{
		BaseDir:      baseDir,
		cache:        make(map[string]*cacheEntry),
		cacheExpiry:  5 * time.Minute,
		maxCacheSize: 200,
	}, nil
}

func (s *DocumentStore) docPath(collection, id string) string {
	return filepath.Join(s.BaseDir, collection, id+".json")
}

func (s *DocumentStore) getFileLock(fullPath string) *sync.RWMutex {
	value, _ := s.fileLocks.LoadOrStore(fullPath, &sync.RWMutex{})
	return value.(*sync.RWMutex)
}

// Save serializes v and writes it as collection/id.json.
func (s *DocumentStore) Save(collection, id string, v interface{}) error {
	content, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	fullDir := filepath.Join(s.BaseDir, collection)
	fullPath := s.docPath(collection, id)

	lock := s.getFileLock(fullPath)
	lock.Lock()
	defer lock.Unlock()

	if err := os.MkdirAll(fullDir, 0755); err != nil {
		return fmt.Errorf("failed to create collection directory: %w", err)
	}

	tempPath := fullPath + ".tmp"
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to write document: %w", err)
	}

	s.invalidateCache(fullPath)

	return nil
}

// Load reads collection/id.json into v. os.IsNotExist holds on the
// returned error when the document is absent.
func (s *DocumentStore) Load(collection, id string, v interface{}) error {
	fullPath := s.docPath(collection, id)

	if data, ok := s.cachedRead(fullPath); ok {
		return json.Unmarshal(data, v)
	}

	lock := s.getFileLock(fullPath)
	lock.RLock()
	defer lock.RUnlock()

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return err
	}

	s.updateCache(fullPath, content)

	if err := json.Unmarshal(content, v); err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	return nil
}

// Exists reports whether collection/id.json is present.
func (s *DocumentStore) Exists(collection, id string) bool {
	_, err := os.Stat(s.docPath(collection, id))
	return err == nil
}

// Delete removes collection/id.json. os.IsNotExist holds on the returned
// error when the document is absent.
func (s *DocumentStore) Delete(collection, id string) error {
	fullPath := s.docPath(collection, id)

	lock := s.getFileLock(fullPath)
	lock.Lock()
	defer lock.Unlock()

	if _, err := os.Stat(fullPath); err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	s.invalidateCache(fullPath)

	return nil
}

// ListIDs returns the document identifiers of a collection. A missing
// collection directory lists as empty, not as an error.
func (s *DocumentStore) ListIDs(collection string) ([]string, error) {
	fullDir := filepath.Join(s.BaseDir, collection)

	entries, err := os.ReadDir(fullDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read collection: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}

	return ids, nil
}

func (s *DocumentStore) cachedRead(path string) ([]byte, bool) {
	s.cacheMutex.RLock()
	defer s.cacheMutex.RUnlock()

	entry, exists := s.cache[path]
	if !exists || time.Since(entry.timestamp) >= s.cacheExpiry {
		return nil, false
	}
	return entry.data, true
}

func (s *DocumentStore) updateCache(path string, data []byte) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	s.cache[path] = &cacheEntry{data: data, timestamp: time.Now()}

	if len(s.cache) > s.maxCacheSize {
		var oldestKey string
		var oldestTime time.Time

		for key, entry := range s.cache {
			if oldestKey == "" || entry.timestamp.Before(oldestTime) {
				oldestKey = key
				oldestTime = entry.timestamp
			}
		}

		if oldestKey != "" {
			delete(s.cache, oldestKey)
		}
	}
}

func (s *DocumentStore) invalidateCache(path string) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	delete(s.cache, path)
}
