package bot

import (
	"context"
	"fmt"
	"log"

	"quote_bot/internal/model"

	gomastodon "github.com/mattn/go-mastodon"
)

// FailureReply is posted when an operation could not persist its changes.
const FailureReply = "something went wrong, nothing was saved"

func (b *Bot) processEvent(ctx context.Context, event gomastodon.Event) {
	switch e := event.(type) {
	case *gomastodon.NotificationEvent:
		if e.Notification.Type == "mention" && e.Notification.Status != nil {
			b.handleMention(ctx, e.Notification)
		}
	case *gomastodon.UpdateEvent:
		b.handleStatus(ctx, e.Status)
	case *gomastodon.ErrorEvent:
		log.Printf("stream error: %v", e.Err)
	}
}

// handleMention parses a mention as a command and posts the replies as a
// thread under the triggering status. Mentions that are not commands are
// ignored, like any other chatter directed at the bot.
func (b *Bot) handleMention(ctx context.Context, notification *gomastodon.Notification) {
	text := b.mastodonClient.ExtractContent(notification.Status)

	cmd, ok := ParseCommand(text)
	if !ok {
		return
	}

	acct := string(notification.Account.Acct)
	log.Printf("@%s: %s %s %s", acct, cmd.Name, cmd.Username, cmd.Text)

	replies, err := b.dispatch(ctx, cmd)
	if err != nil {
		log.Printf("%s command failed: %v", cmd.Name, err)
		b.slackClient.PostErrorAsync(ctx, fmt.Sprintf("quote_bot: %s command failed: %v", cmd.Name, err))
		replies = []string{FailureReply}
	}

	mention := b.mastodonClient.BuildMention(acct)
	inReplyToID := string(notification.Status.ID)
	visibility := string(notification.Status.Visibility)

	for _, reply := range replies {
		status, err := b.mastodonClient.PostReply(ctx, inReplyToID, mention, reply, visibility)
		if err != nil {
			log.Printf("failed to post reply: %v", err)
			return
		}
		inReplyToID = string(status.ID)
	}
}

func (b *Bot) dispatch(ctx context.Context, cmd Command) ([]string, error) {
	switch cmd.Name {
	case CmdRemember:
		reply, err := b.service.Remember(ctx, cmd.Username, cmd.Text)
		return []string{reply}, err
	case CmdForget:
		reply, err := b.service.Forget(ctx, cmd.Username, cmd.Text)
		return []string{reply}, err
	case CmdQuote:
		reply, err := b.service.Quote(ctx, cmd.Username, cmd.Text)
		return []string{reply}, err
	case CmdQuotemash:
		return b.service.Quotemash(ctx, cmd.Text, b.config.QuotemashLimit)
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd.Name)
	}
}

// handleStatus ingests a timeline status into the recent-message cache.
// Reblogs, the bot's own posts, messages addressed to the bot and ignored
// accounts are skipped.
func (b *Bot) handleStatus(ctx context.Context, status *gomastodon.Status) {
	if status == nil || status.Reblog != nil {
		return
	}
	if b.mastodonClient.IsOwnStatus(status) || b.mastodonClient.MentionsBot(status) {
		return
	}

	acct := string(status.Account.Acct)
	if b.ignoreList.Contains(acct) {
		return
	}

	user := model.UserRef{ID: acct, Name: status.Account.Username}
	b.directory.Add(user)

	text := b.mastodonClient.ExtractContent(status)
	if text == "" {
		return
	}

	if err := b.service.Ingest(ctx, user, text); err != nil {
		log.Printf("failed to cache message from %s: %v", acct, err)
		b.slackClient.PostErrorAsync(ctx, fmt.Sprintf("quote_bot: failed to cache message: %v", err))
	}
}
