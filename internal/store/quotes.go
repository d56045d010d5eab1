package store

import (
	"sync"

	"quote_bot/internal/model"
)

// QuoteStore holds remembered messages per user, newest first. Entries leave
// only through an explicit forget. The configured capacity is recorded for
// reporting but promotion does not truncate; this preserves the behavior
// existing deployments depend on (see DESIGN.md).
type QuoteStore struct {
	mu       sync.RWMutex
	quotes   map[string][]model.QuotedMessage
	capacity int
}

// NewQuoteStore creates an empty store with the given nominal capacity.
func NewQuoteStore(capacity int) *QuoteStore {
	return &QuoteStore{
		quotes:   make(map[string][]model.QuotedMessage),
		capacity: capacity,
	}
}

// Promote inserts msg at the head of the user's list.
func (q *QuoteStore) Promote(userID string, msg model.QuotedMessage) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.quotes[userID] = append([]model.QuotedMessage{msg}, q.quotes[userID]...)
}

// RemoveAt removes and returns the entry at index for the user. Returns
// ok=false when the index is out of range.
func (q *QuoteStore) RemoveAt(userID string, index int) (model.QuotedMessage, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	list := q.quotes[userID]
	if index < 0 || index >= len(list) {
		return model.QuotedMessage{}, false
	}

	msg := list[index]
	q.quotes[userID] = append(list[:index], list[index+1:]...)
	return msg, true
}

// Lists returns a copy of the per-user lists for read access.
func (q *QuoteStore) Lists() map[string][]model.QuotedMessage {
	q.mu.RLock()
	defer q.mu.RUnlock()

	return copyLists(q.quotes)
}

// Count returns the total number of stored quotes and the number of users
// with at least one quote.
func (q *QuoteStore) Count() (quotes, users int) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	for _, list := range q.quotes {
		if len(list) > 0 {
			users++
			quotes += len(list)
		}
	}
	return quotes, users
}

// Capacity returns the configured nominal per-user capacity.
func (q *QuoteStore) Capacity() int {
	return q.capacity
}

// MarshalState serializes the per-user lists for persistence.
func (q *QuoteStore) MarshalState() ([]byte, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	return encodeLists(q.quotes)
}

// RestoreState replaces the store contents with a previously persisted
// snapshot. A blob that fails to decode is an error; the store is left
// untouched.
func (q *QuoteStore) RestoreState(data []byte) error {
	quotes, err := decodeLists(data, "quote store")
	if err != nil {
		return err
	}

	q.mu.Lock()
	q.quotes = quotes
	q.mu.Unlock()
	return nil
}
