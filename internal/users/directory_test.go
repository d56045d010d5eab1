package users

import (
	"testing"

	"quote_bot/internal/model"
)

func TestDirectory_ExactBeforePrefix(t *testing.T) {
	d := NewDirectory()
	d.Add(model.UserRef{ID: "benjamin@example.com", Name: "benjamin"})
	d.Add(model.UserRef{ID: "ben@example.com", Name: "ben"})

	refs := d.UsersForFuzzyName("ben")
	if len(refs) != 2 {
		t.Fatalf("got %d candidates, want 2", len(refs))
	}
	if refs[0].Name != "ben" {
		t.Errorf("first candidate = %q, want the exact match", refs[0].Name)
	}
	if refs[1].Name != "benjamin" {
		t.Errorf("second candidate = %q, want the prefix match", refs[1].Name)
	}
}

func TestDirectory_CaseInsensitive(t *testing.T) {
	d := NewDirectory()
	d.Add(model.UserRef{ID: "ben@example.com", Name: "Ben"})

	refs := d.UsersForFuzzyName("BEN")
	if len(refs) != 1 || refs[0].ID != "ben@example.com" {
		t.Errorf("UsersForFuzzyName(\"BEN\") = %v, want the exact match regardless of case", refs)
	}
}

func TestDirectory_NoMatch(t *testing.T) {
	d := NewDirectory()
	d.Add(model.UserRef{ID: "ben@example.com", Name: "ben"})

	if refs := d.UsersForFuzzyName("alice"); len(refs) != 0 {
		t.Errorf("UsersForFuzzyName(\"alice\") = %v, want no candidates", refs)
	}
}

func TestDirectory_LatestNameWins(t *testing.T) {
	d := NewDirectory()
	d.Add(model.UserRef{ID: "u@example.com", Name: "oldname"})
	d.Add(model.UserRef{ID: "u@example.com", Name: "newname"})

	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (same id)", d.Len())
	}
	if refs := d.UsersForFuzzyName("newname"); len(refs) != 1 {
		t.Errorf("new name not resolvable: %v", refs)
	}
	if refs := d.UsersForFuzzyName("oldname"); len(refs) != 0 {
		t.Errorf("stale name still resolvable: %v", refs)
	}
}

func TestDirectory_StableOrderWithinTier(t *testing.T) {
	d := NewDirectory()
	d.Add(model.UserRef{ID: "benny@b.example", Name: "benny"})
	d.Add(model.UserRef{ID: "benna@a.example", Name: "benna"})

	refs := d.UsersForFuzzyName("benn")
	if len(refs) != 2 {
		t.Fatalf("got %d candidates, want 2", len(refs))
	}
	if refs[0].Name != "benna" || refs[1].Name != "benny" {
		t.Errorf("order = [%q, %q], want sorted by name", refs[0].Name, refs[1].Name)
	}
}

func TestDirectory_IgnoresEmptyID(t *testing.T) {
	d := NewDirectory()
	d.Add(model.UserRef{ID: "", Name: "ghost"})

	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
}
