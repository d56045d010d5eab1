package quote

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"quote_bot/internal/match"
	"quote_bot/internal/model"
	"quote_bot/internal/sample"
	"quote_bot/internal/stem"
	"quote_bot/internal/store"
)

// UserResolver maps a fuzzy username to ranked candidate users. Zero
// candidates is a normal outcome, not an error.
type UserResolver interface {
	UsersForFuzzyName(name string) []model.UserRef
}

// Service owns the recent-message cache and the quote store and implements
// the remember / forget / quote / quotemash operations over them. A single
// mutex serializes the operations, so a message is never visible in both the
// cache and the store, and every operation persists its mutation before
// returning.
type Service struct {
	mu       sync.Mutex
	cache    *store.MessageCache
	quotes   *store.QuoteStore
	storage  store.Storage
	resolver UserResolver
	pick     sample.Source
}

// New creates a Service and loads persisted state from storage. A missing
// key starts empty; a blob that fails to decode is a hard error so corrupted
// state never masquerades as an empty store.
func New(ctx context.Context, storage store.Storage, resolver UserResolver, cacheSize, storeSize int, src sample.Source) (*Service, error) {
	if src == nil {
		src = sample.Default()
	}

	s := &Service{
		cache:    store.NewMessageCache(cacheSize),
		quotes:   store.NewQuoteStore(storeSize),
		storage:  storage,
		resolver: resolver,
		pick:     src,
	}

	if err := loadInto(ctx, storage, store.CacheKey, s.cache.RestoreState); err != nil {
		return nil, err
	}
	if err := loadInto(ctx, storage, store.StoreKey, s.quotes.RestoreState); err != nil {
		return nil, err
	}
	return s, nil
}

func loadInto(ctx context.Context, storage store.Storage, key string, restore func([]byte) error) error {
	data, err := storage.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	return restore(data)
}

// Ingest records an observed non-command message in the recent cache.
func (s *Service) Ingest(ctx context.Context, user model.UserRef, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Observe(user.ID, newMessage(user, text))
	return s.persistCache(ctx)
}

// Remember promotes the most recent cached message from username matching
// text into the quote store. The reply is always user-facing; an error means
// the mutation could not be persisted.
func (s *Service) Remember(ctx context.Context, username, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.resolver.UsersForFuzzyName(username)
	if len(users) == 0 {
		return model.RenderNotFound(username), nil
	}

	res, ok := match.FindFirst(s.cache.Lists(), text, userIDs(users))
	if !ok {
		return model.RenderNotFound(text), nil
	}

	msg, ok := s.cache.RemoveAt(res.UserID, res.Index)
	if !ok {
		return "", fmt.Errorf("cache entry for user %s at index %d vanished", res.UserID, res.Index)
	}
	s.quotes.Promote(res.UserID, msg)

	if err := s.persistAll(ctx); err != nil {
		return "", err
	}
	return "remembering " + msg.Render(), nil
}

// Forget removes the most recent stored quote from username matching text.
func (s *Service) Forget(ctx context.Context, username, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.resolver.UsersForFuzzyName(username)
	if len(users) == 0 {
		return model.RenderNotFound(username), nil
	}

	res, ok := match.FindFirst(s.quotes.Lists(), text, userIDs(users))
	if !ok {
		return model.RenderNotFound(text), nil
	}

	msg, ok := s.quotes.RemoveAt(res.UserID, res.Index)
	if !ok {
		return "", fmt.Errorf("quote for user %s at index %d vanished", res.UserID, res.Index)
	}

	if err := s.persistQuotes(ctx); err != nil {
		return "", err
	}
	return "forgot " + msg.Render(), nil
}

// Quote replies with one random stored quote from username matching text.
// Text may be empty, in which case every stored quote is a candidate.
func (s *Service) Quote(ctx context.Context, username, text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.resolver.UsersForFuzzyName(username)
	if len(users) == 0 {
		return model.RenderNotFound(username), nil
	}

	results := match.FindAll(s.quotes.Lists(), text, userIDs(users))
	if len(results) == 0 {
		return model.RenderNotFound(text), nil
	}

	return sample.PickOne(s.pick, results).Message.Render(), nil
}

// Quotemash replies with up to limit random stored quotes matching text,
// drawn across all users without replacement, one reply per quote in draw
// order.
func (s *Service) Quotemash(ctx context.Context, text string, limit int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := match.FindAll(s.quotes.Lists(), text, nil)
	if len(results) == 0 {
		return []string{model.RenderNotFound(text)}, nil
	}

	picked := sample.PickUpTo(s.pick, results, limit)
	replies := make([]string, len(picked))
	for i, r := range picked {
		replies[i] = r.Message.Render()
	}
	return replies, nil
}

// Stats reports current state sizes for the metrics logger.
type Stats struct {
	CachedMessages int
	CachedUsers    int
	StoredQuotes   int
	QuotedUsers    int
	StoreCapacity  int
}

// Stats returns a consistent snapshot of the cache and store sizes.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	st.CachedMessages, st.CachedUsers = s.cache.Count()
	st.StoredQuotes, st.QuotedUsers = s.quotes.Count()
	st.StoreCapacity = s.quotes.Capacity()
	return st
}

func newMessage(user model.UserRef, text string) model.QuotedMessage {
	return model.QuotedMessage{
		Text:  text,
		User:  user,
		Stems: stem.Stems(text),
	}
}

func userIDs(users []model.UserRef) []string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}

func (s *Service) persistCache(ctx context.Context) error {
	data, err := s.cache.MarshalState()
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, store.CacheKey, data)
}

func (s *Service) persistQuotes(ctx context.Context) error {
	data, err := s.quotes.MarshalState()
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, store.StoreKey, data)
}

func (s *Service) persistAll(ctx context.Context) error {
	if err := s.persistQuotes(ctx); err != nil {
		return err
	}
	return s.persistCache(ctx)
}
