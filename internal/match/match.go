package match

import (
	"sort"

	"quote_bot/internal/model"
	"quote_bot/internal/stem"
)

// Result is a matched message together with its owner and its position in
// the owner's list.
type Result struct {
	UserID  string
	Index   int
	Message model.QuotedMessage
}

// IsMatch reports whether every query stem appears among the message stems.
// An empty query matches every message; this is the bare "quote <user>" case.
func IsMatch(queryStems []string, msg model.QuotedMessage) bool {
	if len(queryStems) == 0 {
		return true
	}

	have := make(map[string]struct{}, len(msg.Stems))
	for _, s := range msg.Stems {
		have[s] = struct{}{}
	}

	for _, q := range queryStems {
		if _, ok := have[q]; !ok {
			return false
		}
	}
	return true
}

// FindFirst scans the candidate users' lists front-to-back (newest first) and
// returns the first message matching queryText. Candidates are visited in the
// given order so the resolver's ranking is preserved; when candidates is nil,
// every user id is visited in lexicographic order.
func FindFirst(lists map[string][]model.QuotedMessage, queryText string, candidates []string) (Result, bool) {
	queryStems := stem.Stems(queryText)

	for _, userID := range userOrder(lists, candidates) {
		for i, msg := range lists[userID] {
			if IsMatch(queryStems, msg) {
				return Result{UserID: userID, Index: i, Message: msg}, true
			}
		}
	}
	return Result{}, false
}

// FindAll collects every matching message from every candidate user's list,
// concatenated in user order then list order. Same iteration rule as
// FindFirst.
func FindAll(lists map[string][]model.QuotedMessage, queryText string, candidates []string) []Result {
	queryStems := stem.Stems(queryText)

	var results []Result
	for _, userID := range userOrder(lists, candidates) {
		for i, msg := range lists[userID] {
			if IsMatch(queryStems, msg) {
				results = append(results, Result{UserID: userID, Index: i, Message: msg})
			}
		}
	}
	return results
}

func userOrder(lists map[string][]model.QuotedMessage, candidates []string) []string {
	if candidates != nil {
		return candidates
	}

	ids := make([]string, 0, len(lists))
	for id := range lists {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
