package store

import (
	"encoding/json"
	"fmt"

	"quote_bot/internal/model"
	"quote_bot/internal/stem"
)

func copyLists(lists map[string][]model.QuotedMessage) map[string][]model.QuotedMessage {
	out := make(map[string][]model.QuotedMessage, len(lists))
	for id, list := range lists {
		cp := make([]model.QuotedMessage, len(list))
		copy(cp, list)
		out[id] = cp
	}
	return out
}

func encodeLists(lists map[string][]model.QuotedMessage) ([]byte, error) {
	data, err := json.Marshal(lists)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quote state: %w", err)
	}
	return data, nil
}

func decodeLists(data []byte, what string) (map[string][]model.QuotedMessage, error) {
	var lists map[string][]model.QuotedMessage
	if err := json.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", what, err)
	}
	if lists == nil {
		lists = make(map[string][]model.QuotedMessage)
	}

	// Snapshots written before stems were computed at creation carry none;
	// fill them in once here so matching never recomputes per lookup.
	for _, list := range lists {
		for i := range list {
			if list[i].Stems == nil {
				list[i].Stems = stem.Stems(list[i].Text)
			}
		}
	}

	return lists, nil
}
