package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"quote_bot/internal/bot"
	"quote_bot/internal/config"
)

func main() {
	envFile := flag.String("env", "", "Path to .env file (default: .env)")
	flag.Parse()

	config.LoadEnvironment(*envFile)
	cfg := config.LoadConfig()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b, err := bot.New(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialize bot: ", err)
	}
	defer b.Close() //nolint:errcheck

	log.Println("starting quote bot...")
	if err := b.Run(ctx); err != nil && err != context.Canceled {
		log.Printf("bot stopped: %v", err)
	}
	log.Println("bot stopped (shutdown signal received)")
}
