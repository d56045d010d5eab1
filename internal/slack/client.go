package slack

import (
	"context"
	"log"

	"github.com/slack-go/slack"
)

// Client posts operational notifications to Slack. A client built without a
// token is disabled and all posts become no-ops.
type Client struct {
	client         *slack.Client
	errorChannelID string
	enabled        bool
}

// NewClient creates a new Slack client.
func NewClient(token, errorChannelID string) *Client {
	if token == "" {
		return &Client{
			enabled: false,
		}
	}

	return &Client{
		client:         slack.New(token),
		errorChannelID: errorChannelID,
		enabled:        true,
	}
}

// PostErrorMessage sends a message to the configured error channel.
func (c *Client) PostErrorMessage(ctx context.Context, message string) error {
	if !c.enabled || message == "" {
		return nil
	}

	_, _, err := c.client.PostMessageContext(ctx, c.errorChannelID, slack.MsgOptionText(message, false))
	if err != nil {
		log.Printf("failed to post to slack: %v", err)
		return err
	}

	return nil
}

// PostErrorAsync sends an error message without blocking the caller.
func (c *Client) PostErrorAsync(ctx context.Context, message string) {
	if !c.enabled {
		return
	}
	go func() {
		if err := c.PostErrorMessage(ctx, message); err != nil {
			log.Printf("async slack post failed: %v", err)
		}
	}()
}
