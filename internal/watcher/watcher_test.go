package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_WriteEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.txt")
	if err := os.WriteFile(path, []byte("before\n"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	w, err := New(WithDebounce(20 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	if err := os.WriteFile(path, []byte("after\n"), 0o644); err != nil {
		t.Fatalf("rewriting file: %v", err)
	}

	select {
	case ev := <-w.Events():
		if ev.Path != path {
			t.Errorf("event path = %q, want %q", ev.Path, path)
		}
		if ev.Op != OpWrite && ev.Op != OpCreate {
			t.Errorf("event op = %v, want write or create", ev.Op)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatcher_DebounceCollapsesBursts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	w, err := New(WithDebounce(100 * time.Millisecond))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	// A burst of writes inside the quiet period yields a single event.
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("y"), 0o644); err != nil {
			t.Fatalf("rewriting file: %v", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-w.Events():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}

	select {
	case ev := <-w.Events():
		t.Errorf("unexpected second event %v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}
	if err := w.Add("irrelevant"); err != ErrClosed {
		t.Errorf("Add() after Close() = %v, want ErrClosed", err)
	}
}

func TestOp_String(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Op(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}
