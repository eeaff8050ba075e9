package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/valpere/promptcraft/internal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New(t *testing.T) {
	s := newTestStore(t)
	if s == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_SaveAndGetSession(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	when := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	id, err := s.SaveSession(ctx, internal.Session{
		Mode:      "enhance",
		Language:  "English",
		Provider:  "gemini",
		Model:     "gemini-2.5-flash",
		Input:     "  Write a blog post  ",
		Output:    `{"analysis":{}}`,
		Timestamp: when,
	})
	if err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	got, err := s.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Mode != "enhance" || got.Provider != "gemini" || got.Model != "gemini-2.5-flash" {
		t.Errorf("unexpected session %+v", got)
	}
	if got.Input != "Write a blog post" {
		t.Errorf("expected trimmed input, got %q", got.Input)
	}
	if got.Output != `{"analysis":{}}` {
		t.Errorf("expected output unchanged, got %q", got.Output)
	}
	if !got.Timestamp.Equal(when) {
		t.Errorf("expected timestamp %v, got %v", when, got.Timestamp)
	}
}

func TestStore_NormalizesInput(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// "e" followed by a combining acute accent.
	id, err := s.SaveSession(ctx, internal.Session{Mode: "craft", Language: "French", Provider: "gemini", Model: "m", Input: "cafe\u0301"})
	if err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, err := s.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Input != "caf\u00e9" {
		t.Errorf("expected NFC input, got %q", got.Input)
	}
}

func TestStore_GetSession_Prefix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"abc-111", "abc-222", "def-333"} {
		if _, err := s.SaveSession(ctx, internal.Session{ID: id, Mode: "craft", Language: "English", Provider: "gemini", Model: "m", Input: id}); err != nil {
			t.Fatalf("SaveSession failed: %v", err)
		}
	}

	got, err := s.GetSession(ctx, "def")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.ID != "def-333" {
		t.Errorf("expected def-333, got %s", got.ID)
	}

	if _, err := s.GetSession(ctx, "abc"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("expected ErrAmbiguous, got %v", err)
	}
	if _, err := s.GetSession(ctx, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.GetSession(ctx, "%"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected wildcard to match nothing, got %v", err)
	}
}

func TestStore_ListSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, input := range []string{"first", "second", "third"} {
		if _, err := s.SaveSession(ctx, internal.Session{Mode: "craft", Language: "English", Provider: "gemini", Model: "m", Input: input}); err != nil {
			t.Fatalf("SaveSession failed: %v", err)
		}
	}

	all, err := s.ListSessions(ctx, 0)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(all))
	}
	if all[0].Input != "third" || all[2].Input != "first" {
		t.Errorf("expected newest first, got %q .. %q", all[0].Input, all[2].Input)
	}

	limited, err := s.ListSessions(ctx, 2)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(limited))
	}
}

func TestStore_DeleteAndClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, _ := s.SaveSession(ctx, internal.Session{Mode: "enhance", Language: "English", Provider: "gemini", Model: "m", Input: "a"})
	s.SaveSession(ctx, internal.Session{Mode: "craft", Language: "English", Provider: "gemini", Model: "m", Input: "b"})
	s.SaveSession(ctx, internal.Session{Mode: "craft", Language: "English", Provider: "gemini", Model: "m", Input: "c"})

	deleted, err := s.DeleteSession(ctx, id[:8])
	if err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if deleted != id {
		t.Errorf("expected %s to be deleted, got %s", id, deleted)
	}
	if _, err := s.GetSession(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected deleted session to be gone, got %v", err)
	}
	if _, err := s.DeleteSession(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}

	n, err := s.ClearSessions(ctx)
	if err != nil {
		t.Fatalf("ClearSessions failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 cleared, got %d", n)
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if empty.Total != 0 {
		t.Errorf("expected empty history, got %+v", empty)
	}

	sessions := []internal.Session{
		{Mode: "enhance", Language: "English", Provider: "gemini", Model: "m", Input: "a"},
		{Mode: "enhance", Language: "English", Provider: "gemini", Model: "m", Input: "b", ErrorKind: "auth_invalid"},
		{Mode: "craft", Language: "German", Provider: "openrouter", Model: "m", Input: "c"},
	}
	for _, sess := range sessions {
		if _, err := s.SaveSession(ctx, sess); err != nil {
			t.Fatalf("SaveSession failed: %v", err)
		}
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	want := Stats{Total: 3, Enhance: 2, Craft: 1, Failed: 1}
	if *stats != want {
		t.Errorf("expected %+v, got %+v", want, *stats)
	}
}
