package model

import (
	"encoding/json"
	"testing"
)

func TestQuotedMessage_Render(t *testing.T) {
	msg := QuotedMessage{
		Text: "pizza is a vegetable",
		User: UserRef{ID: "ben@example.com", Name: "ben"},
	}

	if got, want := msg.Render(), "ben: pizza is a vegetable"; got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderNotFound(t *testing.T) {
	if got, want := RenderNotFound("pizza"), `"pizza" not found`; got != want {
		t.Errorf("RenderNotFound() = %q, want %q", got, want)
	}
}

func TestQuotedMessage_JSONShape(t *testing.T) {
	msg := QuotedMessage{
		Text:  "hello",
		User:  UserRef{ID: "u@example.com", Name: "u"},
		Stems: []string{"hello"},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	// Persisted snapshots use these exact field names; changing them breaks
	// existing state on disk.
	want := `{"text":"hello","user":{"id":"u@example.com","name":"u"},"stems":["hello"]}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
