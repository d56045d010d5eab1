package users

import (
	"sort"
	"strings"
	"sync"

	"quote_bot/internal/model"
)

// Directory tracks every account seen on the stream and resolves fuzzy
// usernames to ranked candidate users. It satisfies the resolver contract
// the quote service depends on.
type Directory struct {
	mu    sync.RWMutex
	users map[string]model.UserRef // keyed by user id
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		users: make(map[string]model.UserRef),
	}
}

// Add records a user, replacing any previous entry with the same id. Names
// can change between observations; the latest one wins.
func (d *Directory) Add(user model.UserRef) {
	if user.ID == "" {
		return
	}

	d.mu.Lock()
	d.users[user.ID] = user
	d.mu.Unlock()
}

// UsersForFuzzyName returns candidate users for a name, best match first:
// exact (case-insensitive) matches, then prefix matches. Each tier is sorted
// by name then id so the ranking is stable.
func (d *Directory) UsersForFuzzyName(name string) []model.UserRef {
	lower := strings.ToLower(name)

	d.mu.RLock()
	var exact, prefix []model.UserRef
	for _, u := range d.users {
		candidate := strings.ToLower(u.Name)
		switch {
		case candidate == lower:
			exact = append(exact, u)
		case strings.HasPrefix(candidate, lower):
			prefix = append(prefix, u)
		}
	}
	d.mu.RUnlock()

	sortRefs(exact)
	sortRefs(prefix)
	return append(exact, prefix...)
}

// Len returns the number of known users.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}

func sortRefs(refs []model.UserRef) {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Name != refs[j].Name {
			return refs[i].Name < refs[j].Name
		}
		return refs[i].ID < refs[j].ID
	})
}
