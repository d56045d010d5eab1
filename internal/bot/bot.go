package bot

import (
	"context"
	"fmt"
	"log"

	"quote_bot/internal/config"
	"quote_bot/internal/mastodon"
	"quote_bot/internal/quote"
	"quote_bot/internal/slack"
	"quote_bot/internal/store"
	"quote_bot/internal/users"

	gomastodon "github.com/mattn/go-mastodon"
)

type Bot struct {
	config         *config.Config
	service        *quote.Service
	directory      *users.Directory
	ignoreList     *config.IgnoreList
	storage        store.Storage
	mastodonClient *mastodon.Client
	slackClient    *slack.Client
}

// New wires storage, the user directory and the quote service together.
// Loading fails hard when persisted state exists but cannot be decoded.
func New(ctx context.Context, cfg *config.Config) (*Bot, error) {
	storage, err := newStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	directory := users.NewDirectory()

	service, err := quote.New(ctx, storage, directory, cfg.CacheSize, cfg.StoreSize, nil)
	if err != nil {
		storage.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to initialize quote service: %w", err)
	}

	mastodonClient := mastodon.NewClient(mastodon.Config{
		Server:       cfg.MastodonServer,
		AccessToken:  cfg.MastodonAccessToken,
		BotUsername:  cfg.BotUsername,
		MaxPostChars: cfg.MaxPostChars,
	})

	return &Bot{
		config:         cfg,
		service:        service,
		directory:      directory,
		ignoreList:     config.InitializeIgnoreList(ctx, cfg.DataDir, cfg.IgnoredAccounts),
		storage:        storage,
		mastodonClient: mastodonClient,
		slackClient:    slack.NewClient(cfg.SlackToken, cfg.SlackErrorChannelID),
	}, nil
}

func newStorage(cfg *config.Config) (store.Storage, error) {
	if cfg.RedisURL != "" {
		return store.NewRedisStorage(cfg.RedisURL, cfg.RedisPrefix)
	}
	return store.NewFileStorage(cfg.DataDir)
}

// Run consumes the user stream until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.logStartupInfo()

	go b.startMetricsLogger(ctx)

	eventChan := make(chan gomastodon.Event)
	go b.mastodonClient.StreamUser(ctx, eventChan)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-eventChan:
			b.processEvent(ctx, event)
		}
	}
}

// Close releases the storage backend.
func (b *Bot) Close() error {
	return b.storage.Close()
}

func (b *Bot) logStartupInfo() {
	log.Printf("=== quote bot configuration ===")
	log.Printf("bot username: @%s", b.config.BotUsername)
	log.Printf("mastodon server: %s", b.config.MastodonServer)
	log.Printf("cache size: %d messages/user", b.config.CacheSize)
	log.Printf("store size: %d quotes/user (nominal)", b.config.StoreSize)
	log.Printf("quotemash limit: %d", b.config.QuotemashLimit)
	if b.config.RedisURL != "" {
		log.Printf("storage: redis (prefix: %s)", b.config.RedisPrefix)
	} else {
		log.Printf("storage: file (dir: %s)", b.config.DataDir)
	}
	log.Printf("ignored accounts: %d", b.ignoreList.Len())
	log.Printf("=== startup complete ===")
}
