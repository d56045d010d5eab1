package bot

import (
	"regexp"
	"strings"
)

// Command names
const (
	CmdRemember  = "remember"
	CmdForget    = "forget"
	CmdQuote     = "quote"
	CmdQuotemash = "quotemash"
)

// Command is a parsed bot command from a mention.
type Command struct {
	Name     string
	Username string
	Text     string
}

var (
	rememberRe  = regexp.MustCompile(`(?i)^remember\s+(\w+)\s+(.+)$`)
	forgetRe    = regexp.MustCompile(`(?i)^forget\s+(\w+)\s+(.+)$`)
	quotemashRe = regexp.MustCompile(`(?i)^quotemash(?:\s+(.+))?$`)
	quoteRe     = regexp.MustCompile(`(?i)^quote\s+(\w+)(?:\s+(.+))?$`)
)

// ParseCommand parses the body of a message addressed to the bot. The search
// text is optional for quote and quotemash; an absent text matches every
// stored message.
func ParseCommand(text string) (Command, bool) {
	text = strings.TrimSpace(text)

	if m := rememberRe.FindStringSubmatch(text); m != nil {
		return Command{Name: CmdRemember, Username: m[1], Text: m[2]}, true
	}
	if m := forgetRe.FindStringSubmatch(text); m != nil {
		return Command{Name: CmdForget, Username: m[1], Text: m[2]}, true
	}
	if m := quotemashRe.FindStringSubmatch(text); m != nil {
		return Command{Name: CmdQuotemash, Text: m[1]}, true
	}
	if m := quoteRe.FindStringSubmatch(text); m != nil {
		return Command{Name: CmdQuote, Username: m[1], Text: m[2]}, true
	}

	return Command{}, false
}
