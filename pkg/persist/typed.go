package persist

import "encoding/json"

// Get deserializes the stored JSON value for key into type T. On a missing
// key, corrupt data, or a type mismatch it returns fallback; it never
// returns an error, so callers in the render path stay failure-free.
func Get[T any](s *Store, key string, fallback T) T {
	raw, ok := s.getRaw(key)
	if !ok {
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.logger.Warn("persist: stored value does not match expected type",
			"key", key, "error", err)
		return fallback
	}
	return v
}

// Set serializes value as JSON and stores it under key. Serialization
// failures (e.g. values containing channels or cycles) are logged and leave
// any previously stored value untouched.
func Set[T any](s *Store, key string, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("persist: marshal value", "key", key, "error", err)
		return
	}
	s.setRaw(key, raw)
}

// Has reports whether key currently resolves to a readable stored value.
func (s *Store) Has(key string) bool {
	_, ok := s.getRaw(key)
	return ok
}
