package mastodon

import (
	"strings"
	"testing"

	"github.com/mattn/go-mastodon"
)

func testClient() *Client {
	return NewClient(Config{
		Server:       "https://mastodon.example",
		AccessToken:  "token",
		BotUsername:  "quotebot",
		MaxPostChars: 480,
	})
}

func TestExtractContent(t *testing.T) {
	c := testClient()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "strips markup",
			content:  "<p>hello <b>world</b></p>",
			expected: "hello world",
		},
		{
			name:     "drops mention tokens",
			content:  `<p><span>@quotebot</span> quote ben pizza</p>`,
			expected: "quote ben pizza",
		},
		{
			name:     "br becomes whitespace",
			content:  "<p>line one<br>line two</p>",
			expected: "line one line two",
		},
		{
			name:     "plain text untouched",
			content:  "just words",
			expected: "just words",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := &mastodon.Status{Content: tt.content}
			if got := c.ExtractContent(status); got != tt.expected {
				t.Errorf("ExtractContent() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsOwnStatus(t *testing.T) {
	c := testClient()

	own := &mastodon.Status{Account: mastodon.Account{Username: "QuoteBot"}}
	if !c.IsOwnStatus(own) {
		t.Error("IsOwnStatus() should match the bot username case-insensitively")
	}

	other := &mastodon.Status{Account: mastodon.Account{Username: "someone"}}
	if c.IsOwnStatus(other) {
		t.Error("IsOwnStatus() matched a different account")
	}
}

func TestMentionsBot(t *testing.T) {
	c := testClient()

	mentioned := &mastodon.Status{Mentions: []mastodon.Mention{{Username: "quotebot"}}}
	if !c.MentionsBot(mentioned) {
		t.Error("MentionsBot() should detect the bot among mentions")
	}

	unrelated := &mastodon.Status{Mentions: []mastodon.Mention{{Username: "someone"}}}
	if c.MentionsBot(unrelated) {
		t.Error("MentionsBot() matched a status not addressed to the bot")
	}

	if c.MentionsBot(&mastodon.Status{}) {
		t.Error("MentionsBot() matched a status with no mentions")
	}
}

func TestBuildMention(t *testing.T) {
	c := testClient()

	if got := c.BuildMention("ben@example.com"); got != "@ben@example.com " {
		t.Errorf("BuildMention() = %q", got)
	}
}

func TestSplitResponse_ShortResponseUnchanged(t *testing.T) {
	parts := splitResponse("short reply", "@ben ", 480)

	if len(parts) != 1 || parts[0] != "short reply" {
		t.Errorf("splitResponse() = %v, want the response unsplit", parts)
	}
}

func TestSplitResponse_SplitsOnNewlines(t *testing.T) {
	response := strings.Repeat("a line of text\n", 10)
	parts := splitResponse(response, "@ben ", 60)

	if len(parts) < 2 {
		t.Fatalf("splitResponse() = %d parts, want a split", len(parts))
	}

	mentionLen := len("@ben ")
	for i, part := range parts {
		if len([]rune(part))+mentionLen > 60 {
			t.Errorf("part %d exceeds the limit: %d runes", i, len([]rune(part)))
		}
		if strings.HasPrefix(part, "\n") {
			t.Errorf("part %d starts with a newline: %q", i, part)
		}
	}

	// Nothing is lost across the split.
	joined := strings.Join(parts, "\n")
	if strings.ReplaceAll(joined, "\n", "") != strings.ReplaceAll(response, "\n", "") {
		t.Error("split parts do not reassemble into the original response")
	}
}

func TestSplitResponse_HardSplitWithoutNewlines(t *testing.T) {
	response := strings.Repeat("x", 150)
	parts := splitResponse(response, "@ben ", 60)

	if len(parts) < 3 {
		t.Fatalf("splitResponse() = %d parts, want at least 3", len(parts))
	}
	if strings.Join(parts, "") != response {
		t.Error("hard split lost characters")
	}
}
