package persist

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// entryFiles returns the backing files for all entries in the store dir.
func entryFiles(t *testing.T, s *Store) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(s.dir, filePrefix+"*.json"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	return matches
}

// --- Round trips ---

func TestGetSetRoundTrip(t *testing.T) {
	s := newTestStore(t)

	type prefs struct {
		Period    string `json:"period"`
		Collapsed bool   `json:"collapsed"`
	}

	Set(s, "period_w1", prefs{Period: "TTM", Collapsed: true})

	got := Get(s, "period_w1", prefs{})
	if got.Period != "TTM" || !got.Collapsed {
		t.Errorf("round-trip mismatch: got %+v", got)
	}
}

func TestGetMissingKeyReturnsFallback(t *testing.T) {
	s := newTestStore(t)

	got := Get(s, "nope", "default")
	if got != "default" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestSetOverwritesPriorValue(t *testing.T) {
	s := newTestStore(t)

	Set(s, "k", 1)
	Set(s, "k", 2)

	if got := Get(s, "k", 0); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}

func TestRoundTripSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s1 := New(dir, nil)
	Set(s1, "symbols", []string{"VNM", "AAPL"})

	s2 := New(dir, nil)
	got := Get(s2, "symbols", []string(nil))
	if len(got) != 2 || got[0] != "VNM" || got[1] != "AAPL" {
		t.Errorf("reopen round-trip mismatch: got %v", got)
	}
}

// --- Corruption tolerance ---

func TestGetCorruptFileReturnsFallback(t *testing.T) {
	s := newTestStore(t)

	Set(s, "blob", map[string]int{"a": 1})

	files := entryFiles(t, s)
	if len(files) != 1 {
		t.Fatalf("expected 1 entry file, got %d", len(files))
	}
	// Truncate mid-document to simulate a torn write.
	if err := os.WriteFile(files[0], []byte(`{"key":"blob","val`), 0644); err != nil {
		t.Fatalf("corrupt file: %v", err)
	}

	got := Get(s, "blob", map[string]int{"fallback": 1})
	if got["fallback"] != 1 {
		t.Errorf("expected fallback after corruption, got %v", got)
	}
}

func TestGetTypeMismatchReturnsFallback(t *testing.T) {
	s := newTestStore(t)

	Set(s, "k", "not a number")

	if got := Get(s, "k", 42); got != 42 {
		t.Errorf("expected fallback 42, got %d", got)
	}
}

// --- Remove / Keys / Has ---

func TestRemoveDeletesEntry(t *testing.T) {
	s := newTestStore(t)

	Set(s, "k", "v")
	s.Remove("k")

	if s.Has("k") {
		t.Error("expected key to be gone after Remove")
	}
	if got := Get(s, "k", "fb"); got != "fb" {
		t.Errorf("expected fallback after Remove, got %q", got)
	}
}

func TestRemoveMissingKeyIsNoOp(t *testing.T) {
	s := newTestStore(t)
	s.Remove("never-set")
}

func TestKeysListsStoredKeys(t *testing.T) {
	s := newTestStore(t)

	Set(s, "alpha", 1)
	Set(s, "beta", 2)

	keys := s.Keys()
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %d: %v", len(keys), keys)
	}
	found := map[string]bool{}
	for _, k := range keys {
		found[k] = true
	}
	if !found["alpha"] || !found["beta"] {
		t.Errorf("missing keys in %v", keys)
	}
}

// --- Degraded mode ---

func TestMemoryOnlyModeWhenDirUnavailable(t *testing.T) {
	// A file path (not a directory) makes MkdirAll fail.
	base := t.TempDir()
	blocked := filepath.Join(base, "occupied")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	s := New(filepath.Join(blocked, "store"), nil)

	Set(s, "k", "session-value")
	if got := Get(s, "k", ""); got != "session-value" {
		t.Errorf("expected in-memory value, got %q", got)
	}
}

// --- Key sanitization ---

func TestDistinctKeysThatSanitizeIdentically(t *testing.T) {
	s := newTestStore(t)

	Set(s, "a/b", 1)
	Set(s, "a.b", 2)

	if got := Get(s, "a/b", 0); got != 1 {
		t.Errorf("a/b: expected 1, got %d", got)
	}
	if got := Get(s, "a.b", 0); got != 2 {
		t.Errorf("a.b: expected 2, got %d", got)
	}
}
