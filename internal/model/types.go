package model

import "fmt"

// UserRef identifies a chat user as supplied by the identity resolver.
// The core never mutates it.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// QuotedMessage is a single observed chat message. Stems are computed once
// when the message is created and travel with it through the cache and the
// quote store, so the two never disagree about what a message matches.
type QuotedMessage struct {
	Text  string   `json:"text"`
	User  UserRef  `json:"user"`
	Stems []string `json:"stems,omitempty"`
}

// Render formats a message for posting.
func (m QuotedMessage) Render() string {
	return fmt.Sprintf("%s: %s", m.User.Name, m.Text)
}

// RenderNotFound formats the reply for a lookup that produced nothing. The
// subject is the username when no user matched, otherwise the search text.
func RenderNotFound(subject string) string {
	return fmt.Sprintf("\"%s\" not found", subject)
}
