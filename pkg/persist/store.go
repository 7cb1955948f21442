// Package persist provides the durable key/value store that backs dashboard
// state and per-widget UI state. Each key maps to a single JSON file under
// the store directory; writes are atomic via temp-file-then-rename.
//
// Reads never fail: a missing file, malformed JSON, or unreadable directory
// yields the caller-supplied fallback value. If the store directory cannot
// be created the store degrades to an in-memory map for the session, so the
// application keeps working and only loses durability.
package persist

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// filePrefix namespaces marketdeck files so the store directory can be
// shared with unrelated tooling without key collisions.
const filePrefix = "deck-"

// envelope is the on-disk JSON structure. The original key is stored
// alongside the value so Keys can report it and hash collisions are
// detectable.
type envelope struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Store is a file-backed key/value store. It is safe for concurrent use.
type Store struct {
	dir    string
	logger *slog.Logger

	mu     sync.RWMutex
	dirOK  bool
	mem    map[string]json.RawMessage // session fallback when dirOK is false
	warned bool
}

// New creates a Store rooted at dir. The directory is created with 0755
// permissions if it does not exist. A nil logger falls back to slog.Default.
// Creation failure is not fatal: the store runs in memory-only mode.
func New(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		dir:    dir,
		logger: logger,
		mem:    make(map[string]json.RawMessage),
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warn("persist: store directory unavailable, state will not survive restart",
			"dir", dir, "error", err)
	} else {
		s.dirOK = true
	}
	return s
}

// Remove deletes the entry for key. It is a no-op if the key is absent.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.mem, key)
	if s.dirOK {
		_ = os.Remove(s.path(key))
	}
}

// Keys returns all keys currently present in the store, unordered.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var keys []string
	for k := range s.mem {
		seen[k] = true
		keys = append(keys, k)
	}

	if !s.dirOK {
		return keys
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return keys
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			continue
		}
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil || env.Key == "" {
			continue
		}
		if !seen[env.Key] {
			seen[env.Key] = true
			keys = append(keys, env.Key)
		}
	}
	return keys
}

// getRaw returns the stored raw JSON value for key, or false if the key is
// missing or its file is unreadable or corrupt.
func (s *Store) getRaw(key string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if raw, ok := s.mem[key]; ok {
		return raw, true
	}
	if !s.dirOK {
		return nil, false
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.logger.Warn("persist: discarding corrupt entry", "key", key, "error", err)
		return nil, false
	}
	if env.Key != key {
		// Hash collision with a different key; treat as missing.
		return nil, false
	}
	return env.Value, true
}

// setRaw stores raw JSON under key. In memory-only mode the value is kept
// in the session map; disk write failures keep the prior stored value.
func (s *Store) setRaw(key string, raw json.RawMessage) {
	env := envelope{Key: key, Value: raw}
	data, err := json.Marshal(env)
	if err != nil {
		s.logger.Warn("persist: marshal envelope", "key", key, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirOK {
		s.mem[key] = raw
		return
	}
	if err := atomicWrite(s.path(key), data, s.dir); err != nil {
		if !s.warned {
			s.warned = true
			s.logger.Warn("persist: write failed, keeping value in memory for this session",
				"key", key, "error", err)
		}
		s.mem[key] = raw
	} else {
		// Disk copy is authoritative again.
		delete(s.mem, key)
	}
}

// path maps a key to its backing file. The sanitized key keeps filenames
// readable; the FNV suffix disambiguates keys that sanitize identically.
func (s *Store) path(key string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	name := fmt.Sprintf("%s%s-%08x.json", filePrefix, sanitize(key), h.Sum32())
	return filepath.Join(s.dir, name)
}

// sanitize replaces filesystem-hostile characters and bounds the length.
func sanitize(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := b.String()
	if len(out) > 80 {
		out = out[:80]
	}
	return out
}

// atomicWrite writes data to path via a temporary file and rename.
func atomicWrite(path string, data []byte, tmpDir string) error {
	tmp, err := os.CreateTemp(tmpDir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	success = true
	return nil
}
