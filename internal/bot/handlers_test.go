package bot

import (
	"context"
	"testing"

	"quote_bot/internal/config"
	"quote_bot/internal/model"
	"quote_bot/internal/quote"
	"quote_bot/internal/store"
	"quote_bot/internal/users"
)

func newTestBot(t *testing.T) *Bot {
	t.Helper()

	directory := users.NewDirectory()
	directory.Add(model.UserRef{ID: "ben@example.com", Name: "ben"})

	service, err := quote.New(context.Background(), store.NewMemoryStorage(), directory, 25, 100, func(n int) int { return 0 })
	if err != nil {
		t.Fatalf("failed to build quote service: %v", err)
	}

	return &Bot{
		config:    &config.Config{QuotemashLimit: 10},
		service:   service,
		directory: directory,
	}
}

func TestDispatch_RememberThenQuote(t *testing.T) {
	ctx := context.Background()
	b := newTestBot(t)

	user := model.UserRef{ID: "ben@example.com", Name: "ben"}
	if err := b.service.Ingest(ctx, user, "pizza is the best food"); err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}

	replies, err := b.dispatch(ctx, Command{Name: CmdRemember, Username: "ben", Text: "pizza"})
	if err != nil {
		t.Fatalf("dispatch(remember) error: %v", err)
	}
	if len(replies) != 1 || replies[0] != "remembering ben: pizza is the best food" {
		t.Errorf("remember replies = %v", replies)
	}

	replies, err = b.dispatch(ctx, Command{Name: CmdQuote, Username: "ben"})
	if err != nil {
		t.Fatalf("dispatch(quote) error: %v", err)
	}
	if len(replies) != 1 || replies[0] != "ben: pizza is the best food" {
		t.Errorf("quote replies = %v", replies)
	}
}

func TestDispatch_QuotemashUsesConfiguredLimit(t *testing.T) {
	ctx := context.Background()
	b := newTestBot(t)
	b.config.QuotemashLimit = 2

	user := model.UserRef{ID: "ben@example.com", Name: "ben"}
	for _, text := range []string{"pizza one", "pizza two", "pizza three"} {
		if err := b.service.Ingest(ctx, user, text); err != nil {
			t.Fatalf("Ingest() error: %v", err)
		}
		if _, err := b.dispatch(ctx, Command{Name: CmdRemember, Username: "ben", Text: text}); err != nil {
			t.Fatalf("dispatch(remember) error: %v", err)
		}
	}

	replies, err := b.dispatch(ctx, Command{Name: CmdQuotemash, Text: "pizza"})
	if err != nil {
		t.Fatalf("dispatch(quotemash) error: %v", err)
	}
	if len(replies) != 2 {
		t.Errorf("quotemash returned %d replies, want the configured limit of 2", len(replies))
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	b := newTestBot(t)

	if _, err := b.dispatch(context.Background(), Command{Name: "dance"}); err == nil {
		t.Error("dispatch() with an unknown command should fail")
	}
}
