package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeIgnoreFile(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, IgnoreListFilename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write ignore file: %v", err)
	}
	return path
}

func TestIgnoreList_LoadsFile(t *testing.T) {
	path := writeIgnoreFile(t, t.TempDir(), `# known bots
spammer@example.com

Other@Example.com
`)

	list := NewIgnoreList(path)

	if list.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (comments and blanks skipped)", list.Len())
	}
	if !list.Contains("spammer@example.com") {
		t.Error("expected spammer@example.com on the list")
	}
	if !list.Contains("OTHER@example.com") {
		t.Error("Contains() should be case-insensitive")
	}
	if list.Contains("friend@example.com") {
		t.Error("friend@example.com should not be on the list")
	}
}

func TestIgnoreList_MissingFileStartsEmpty(t *testing.T) {
	list := NewIgnoreList(filepath.Join(t.TempDir(), "does-not-exist.txt"))

	if list.Len() != 0 {
		t.Errorf("Len() = %d, want 0", list.Len())
	}
}

func TestIgnoreList_ReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeIgnoreFile(t, dir, "first@example.com\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	list := NewIgnoreList(path)
	if err := list.StartWatching(ctx); err != nil {
		t.Fatalf("StartWatching() error: %v", err)
	}

	writeIgnoreFile(t, dir, "first@example.com\nsecond@example.com\n")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if list.Contains("second@example.com") {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("ignore list did not pick up the file change")
}

func TestInitializeIgnoreList_PrefersFile(t *testing.T) {
	dir := t.TempDir()
	writeIgnoreFile(t, dir, "fromfile@example.com\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	list := InitializeIgnoreList(ctx, dir, []string{"fromenv@example.com"})

	if !list.Contains("fromfile@example.com") {
		t.Error("expected the file entry on the list")
	}
	if list.Contains("fromenv@example.com") {
		t.Error("environment entries should be ignored when the file exists")
	}
}

func TestInitializeIgnoreList_EnvFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	list := InitializeIgnoreList(ctx, t.TempDir(), []string{"Bot@Example.com"})

	if list.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", list.Len())
	}
	if !list.Contains("bot@example.com") {
		t.Error("environment entry should be on the list, lowercased")
	}
}
