package config

import (
	"bufio"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// IgnoreListFilename is the per-deployment list of accounts whose messages
// are never cached (other bots, noisy feeds). One acct per line, # comments.
const IgnoreListFilename = "ignored_accounts.txt"

// IgnoreList manages a dynamically reloadable set of ignored accounts.
type IgnoreList struct {
	mu       sync.RWMutex
	accounts map[string]struct{}
	filePath string
	watcher  *fsnotify.Watcher
}

// NewIgnoreList creates a new IgnoreList from a file.
func NewIgnoreList(filePath string) *IgnoreList {
	l := &IgnoreList{
		filePath: filePath,
		accounts: make(map[string]struct{}),
	}

	if err := l.reload(); err != nil {
		log.Printf("failed initial ignore list load (starting empty): %v", err)
	}

	return l
}

// Contains reports whether acct is on the ignore list.
func (l *IgnoreList) Contains(acct string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.accounts[strings.ToLower(acct)]
	return ok
}

// Len returns the number of ignored accounts.
func (l *IgnoreList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.accounts)
}

// reload reads the ignore list file and replaces the account set.
func (l *IgnoreList) reload() error {
	file, err := os.Open(l.filePath)
	if err != nil {
		return err
	}
	defer file.Close() //nolint:errcheck

	accounts := make(map[string]struct{})
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		accounts[strings.ToLower(line)] = struct{}{}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	l.accounts = accounts
	l.mu.Unlock()

	log.Printf("ignore list reloaded: %d accounts (file: %s)", len(accounts), l.filePath)
	return nil
}

// StartWatching starts watching the ignore list file for changes.
func (l *IgnoreList) StartWatching(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	l.watcher = watcher

	if err := watcher.Add(l.filePath); err != nil {
		watcher.Close() //nolint:errcheck
		return err
	}

	go l.watchLoop(ctx)
	log.Printf("watching ignore list file: %s", l.filePath)

	return nil
}

func (l *IgnoreList) watchLoop(ctx context.Context) {
	defer l.watcher.Close() //nolint:errcheck

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-l.watcher.Events:
			if !ok {
				return
			}
			l.handleFileEvent(ctx, event)
		case err, ok := <-l.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("ignore list watch error: %v", err)
		}
	}
}

func (l *IgnoreList) handleFileEvent(ctx context.Context, event fsnotify.Event) {
	shouldReload := event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create

	if shouldReload {
		if err := l.reload(); err != nil {
			log.Printf("failed to reload ignore list: %v", err)
		}
		return
	}

	// If the file was renamed or removed, re-add the watch; editors often
	// replace files rather than write them in place.
	shouldRewatch := event.Op&fsnotify.Rename == fsnotify.Rename ||
		event.Op&fsnotify.Remove == fsnotify.Remove

	if shouldRewatch {
		go l.attemptRewatch(ctx)
	}
}

func (l *IgnoreList) attemptRewatch(ctx context.Context) {
	for range 5 {
		if l.tryAddWatcher() {
			if err := l.reload(); err != nil {
				log.Printf("failed to reload ignore list: %v", err)
			}
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(100 * time.Millisecond):
		}
	}
}

func (l *IgnoreList) tryAddWatcher() bool {
	if _, err := os.Stat(l.filePath); err != nil {
		return false
	}
	return l.watcher.Add(l.filePath) == nil
}

// InitializeIgnoreList initializes the ignore list from a file in dataDir,
// falling back to the IGNORED_ACCOUNTS environment value when no file exists.
func InitializeIgnoreList(ctx context.Context, dataDir string, envAccounts []string) *IgnoreList {
	path := filepath.Join(dataDir, IgnoreListFilename)

	if _, err := os.Stat(path); err == nil {
		list := NewIgnoreList(path)
		if err := list.StartWatching(ctx); err != nil {
			log.Printf("failed to watch ignore list file: %v", err)
		}
		return list
	}

	accounts := make(map[string]struct{}, len(envAccounts))
	for _, acct := range envAccounts {
		accounts[strings.ToLower(acct)] = struct{}{}
	}

	list := &IgnoreList{
		filePath: path,
		accounts: accounts,
	}

	log.Printf("ignore list loaded: %d accounts (environment)", len(accounts))
	return list
}
