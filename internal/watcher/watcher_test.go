package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEligible(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"drop/hosts.csv", true},
		{"drop/hosts.JSON", true},
		{"drop/hosts.yaml", true},
		{"drop/.hosts.csv.swp", false},
		{"drop/hosts.csv~", false},
		{"drop/hosts.csv.tmp", false},
		{"drop/readme.txt", false},
	}

	for _, tt := range tests {
		if got := eligible(tt.path); got != tt.want {
			t.Errorf("eligible(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatchImportsDroppedFile(t *testing.T) {
	dir := t.TempDir()

	imported := make(chan string, 1)
	w := New(dir, func(_ context.Context, path string) {
		imported <- path
	}).WithDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// Give the watcher time to register before dropping the file
	time.Sleep(100 * time.Millisecond)

	path := filepath.Join(dir, "hosts.csv")
	if err := os.WriteFile(path, []byte("Hostname\nsrv-01\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-imported:
		if got != path {
			t.Errorf("imported %q, want %q", got, path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for import callback")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Watch returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchIgnoresUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()

	imported := make(chan string, 1)
	w := New(dir, func(_ context.Context, path string) {
		imported <- path
	}).WithDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Watch(ctx) }()

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case path := <-imported:
		t.Errorf("unexpected import of %q", path)
	case <-time.After(300 * time.Millisecond):
	}
}
