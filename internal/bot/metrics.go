package bot

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

type metricsLogEntry struct {
	Timestamp      string `json:"timestamp"`
	Level          string `json:"level"`
	Msg            string `json:"msg"`
	BotUsername    string `json:"bot_username"`
	CachedMessages int    `json:"cached_messages"`
	CachedUsers    int    `json:"cached_users"`
	StoredQuotes   int    `json:"stored_quotes"`
	QuotedUsers    int    `json:"quoted_users"`
	StoreCapacity  int    `json:"store_capacity"`
	KnownUsers     int    `json:"known_users"`
}

func (b *Bot) startMetricsLogger(ctx context.Context) {
	interval := time.Duration(b.config.MetricsLogIntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Log once at startup so the state right after a restart is visible.
	if err := b.logMetrics(); err != nil {
		log.Printf("failed to log metrics: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.logMetrics(); err != nil {
				log.Printf("failed to log metrics: %v", err)
			}
		}
	}
}

func (b *Bot) logMetrics() error {
	stats := b.service.Stats()

	entry := metricsLogEntry{
		Timestamp:      time.Now().Format(time.RFC3339),
		Level:          "info",
		Msg:            "quote_store_stats",
		BotUsername:    b.config.BotUsername,
		CachedMessages: stats.CachedMessages,
		CachedUsers:    stats.CachedUsers,
		StoredQuotes:   stats.StoredQuotes,
		QuotedUsers:    stats.QuotedUsers,
		StoreCapacity:  stats.StoreCapacity,
		KnownUsers:     b.directory.Len(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	log.Println(string(data))
	return nil
}
