package mastodon

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/mattn/go-mastodon"
	"golang.org/x/net/html"
)

type Config struct {
	Server       string
	AccessToken  string
	BotUsername  string
	MaxPostChars int
}

const (
	// SplitPostDelay is the wait between parts of a split post so reply
	// order is preserved server-side.
	SplitPostDelay = 200 * time.Millisecond
)

type Client struct {
	client *mastodon.Client
	config Config
}

func NewClient(cfg Config) *Client {
	c := mastodon.NewClient(&mastodon.Config{
		Server:      cfg.Server,
		AccessToken: cfg.AccessToken,
	})
	return &Client{
		client: c,
		config: cfg,
	}
}

// StreamUser starts the user stream (home timeline plus notifications) and
// forwards events to eventChan.
func (c *Client) StreamUser(ctx context.Context, eventChan chan<- mastodon.Event) {
	events, err := c.client.StreamingUser(ctx)
	if err != nil {
		log.Printf("user streaming connection error: %v", err)
		return
	}

	log.Println("user streaming connected")

	for event := range events {
		eventChan <- event
	}

	log.Println("user streaming disconnected")
}

// ExtractStatusFromEvent extracts the Status carried by an event, if any.
func ExtractStatusFromEvent(event mastodon.Event) *mastodon.Status {
	switch e := event.(type) {
	case *mastodon.UpdateEvent:
		return e.Status
	case *mastodon.NotificationEvent:
		return e.Notification.Status
	default:
		return nil
	}
}

// ExtractContent returns the plain text of a status with HTML markup and
// @mention tokens removed.
func (c *Client) ExtractContent(status *mastodon.Status) string {
	content := stripHTML(string(status.Content))
	words := strings.Fields(content)

	var filtered []string
	for _, word := range words {
		if !strings.HasPrefix(word, "@") {
			filtered = append(filtered, word)
		}
	}

	return strings.Join(filtered, " ")
}

// IsOwnStatus reports whether the status was posted by the bot itself.
func (c *Client) IsOwnStatus(status *mastodon.Status) bool {
	return strings.EqualFold(status.Account.Username, c.config.BotUsername)
}

// MentionsBot reports whether the status addresses the bot. Such statuses
// arrive as mention notifications and are handled as commands, never cached.
func (c *Client) MentionsBot(status *mastodon.Status) bool {
	for _, m := range status.Mentions {
		if strings.EqualFold(m.Username, c.config.BotUsername) {
			return true
		}
	}
	return false
}

func (c *Client) BuildMention(acct string) string {
	return "@" + acct + " "
}

// PostReply posts a reply to inReplyToID, splitting it into multiple threaded
// posts when it exceeds the configured length. Returns the last posted
// status so callers can continue the thread.
func (c *Client) PostReply(ctx context.Context, inReplyToID, mention, response, visibility string) (*mastodon.Status, error) {
	parts := splitResponse(response, mention, c.config.MaxPostChars)

	var posted *mastodon.Status
	currentReplyID := inReplyToID
	for i, part := range parts {
		if i > 0 {
			time.Sleep(SplitPostDelay)
		}

		status, err := c.postReply(ctx, currentReplyID, mention+part, visibility)
		if err != nil {
			log.Printf("split post failed (%d/%d): %v", i+1, len(parts), err)
			return posted, err
		}
		currentReplyID = string(status.ID)
		posted = status
	}

	return posted, nil
}

func (c *Client) postReply(ctx context.Context, inReplyToID, content, visibility string) (*mastodon.Status, error) {
	toot := &mastodon.Toot{
		Status:      content,
		InReplyToID: mastodon.ID(inReplyToID),
		Visibility:  visibility,
	}

	status, err := c.client.PostStatus(ctx, toot)
	if err != nil {
		log.Printf("post error: %v", err)
		return nil, err
	}

	return status, nil
}

// HTML stripping

func stripHTML(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return htmlStr
	}

	var buf strings.Builder
	extractText(doc, &buf)
	return buf.String()
}

func extractText(n *html.Node, buf *strings.Builder) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	} else if n.Type == html.ElementNode && n.Data == "br" {
		buf.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, buf)
	}
}

// Response splitting

func splitResponse(response, mention string, maxChars int) []string {
	mentionLen := len([]rune(mention))
	maxContentLen := maxChars - mentionLen

	runes := []rune(response)
	if len(runes) <= maxContentLen {
		return []string{response}
	}

	return splitByNewline(runes, maxContentLen)
}

func splitByNewline(runes []rune, maxLen int) []string {
	var parts []string
	start := 0

	for start < len(runes) {
		end := start + maxLen
		if end >= len(runes) {
			parts = append(parts, string(runes[start:]))
			break
		}

		splitPos := findLastNewline(runes, start, end)
		if splitPos == -1 {
			splitPos = end
		}

		parts = append(parts, string(runes[start:splitPos]))
		start = skipLeadingNewlines(runes, splitPos)
	}

	return parts
}

func findLastNewline(runes []rune, start, end int) int {
	for i := end - 1; i > start; i-- {
		if runes[i] == '\n' {
			return i
		}
	}
	return -1
}

func skipLeadingNewlines(runes []rune, pos int) int {
	for pos < len(runes) && runes[pos] == '\n' {
		pos++
	}
	return pos
}
