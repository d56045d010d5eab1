package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultCacheSize       = 25
	DefaultStoreSize       = 100
	DefaultQuotemashLimit  = 10
	DefaultMaxPostChars    = 480
	DefaultMetricsInterval = 60
	DefaultDataDir         = "data"
)

type Config struct {
	MastodonServer      string
	MastodonAccessToken string
	BotUsername         string

	// Quote engine settings
	CacheSize      int // recent messages kept per user
	StoreSize      int // nominal quote capacity per user (not enforced, see DESIGN.md)
	QuotemashLimit int

	MaxPostChars int

	// Persistence settings
	RedisURL    string
	RedisPrefix string
	DataDir     string

	// Ops notifications
	SlackToken          string
	SlackErrorChannelID string

	MetricsLogIntervalMinutes int

	IgnoredAccounts []string
}

// LoadEnvironment loads a .env file into the process environment. An
// explicitly requested file must exist; the default one may be absent.
func LoadEnvironment(envFile string) {
	explicit := envFile != ""
	if !explicit {
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil {
		if explicit {
			log.Fatal("failed to load env file: ", envFile)
		}
		log.Println("no .env file found, using process environment")
		return
	}
	log.Printf("loaded environment from %s", envFile)
}

func LoadConfig() *Config {
	return &Config{
		MastodonServer:      os.Getenv("MASTODON_SERVER"),
		MastodonAccessToken: os.Getenv("MASTODON_ACCESS_TOKEN"),
		BotUsername:         os.Getenv("BOT_USERNAME"),

		CacheSize:      parseIntWithDefault(os.Getenv("CACHE_SIZE"), DefaultCacheSize),
		StoreSize:      parseIntWithDefault(os.Getenv("STORE_SIZE"), DefaultStoreSize),
		QuotemashLimit: parseIntWithDefault(os.Getenv("QUOTEMASH_LIMIT"), DefaultQuotemashLimit),

		MaxPostChars: parseIntWithDefault(os.Getenv("MAX_POST_CHARS"), DefaultMaxPostChars),

		RedisURL:    os.Getenv("REDIS_URL"),
		RedisPrefix: os.Getenv("REDIS_PREFIX"),
		DataDir:     withDefault(os.Getenv("DATA_DIR"), DefaultDataDir),

		SlackToken:          os.Getenv("SLACK_TOKEN"),
		SlackErrorChannelID: os.Getenv("SLACK_ERROR_CHANNEL_ID"),

		MetricsLogIntervalMinutes: parseIntWithDefault(os.Getenv("METRICS_LOG_INTERVAL_MINUTES"), DefaultMetricsInterval),

		IgnoredAccounts: parseList(os.Getenv("IGNORED_ACCOUNTS")),
	}
}

func withDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func parseIntWithDefault(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		return defaultValue
	}
	return parsed
}

func parseList(value string) []string {
	if value == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
