package store

import (
	"sync"

	"quote_bot/internal/model"
)

// MessageCache holds the most recently observed messages for each user,
// newest first, bounded per user. Messages age out of the cache unless they
// are promoted into the QuoteStore first.
type MessageCache struct {
	mu       sync.RWMutex
	messages map[string][]model.QuotedMessage
	capacity int
}

// NewMessageCache creates an empty cache with the given per-user capacity.
func NewMessageCache(capacity int) *MessageCache {
	if capacity < 1 {
		capacity = 1
	}
	return &MessageCache{
		messages: make(map[string][]model.QuotedMessage),
		capacity: capacity,
	}
}

// Observe inserts msg at the head of the user's list, evicting the oldest
// entry first when the list is at capacity.
func (c *MessageCache) Observe(userID string, msg model.QuotedMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.messages[userID]
	if len(list) >= c.capacity {
		list = list[:c.capacity-1]
	}
	c.messages[userID] = append([]model.QuotedMessage{msg}, list...)
}

// RemoveAt removes and returns the entry at index for the user. Returns
// ok=false when the index is out of range.
func (c *MessageCache) RemoveAt(userID string, index int) (model.QuotedMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list := c.messages[userID]
	if index < 0 || index >= len(list) {
		return model.QuotedMessage{}, false
	}

	msg := list[index]
	c.messages[userID] = append(list[:index], list[index+1:]...)
	return msg, true
}

// Lists returns a copy of the per-user lists for read access.
func (c *MessageCache) Lists() map[string][]model.QuotedMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return copyLists(c.messages)
}

// Count returns the total number of cached messages and the number of users
// with at least one cached message.
func (c *MessageCache) Count() (messages, users int) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, list := range c.messages {
		if len(list) > 0 {
			users++
			messages += len(list)
		}
	}
	return messages, users
}

// MarshalState serializes the per-user lists for persistence.
func (c *MessageCache) MarshalState() ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return encodeLists(c.messages)
}

// RestoreState replaces the cache contents with a previously persisted
// snapshot. A blob that fails to decode is an error; the cache is left
// untouched so corrupted state never masquerades as an empty one.
func (c *MessageCache) RestoreState(data []byte) error {
	messages, err := decodeLists(data, "message cache")
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.messages = messages
	c.mu.Unlock()
	return nil
}
