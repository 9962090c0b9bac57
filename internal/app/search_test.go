package app

import (
	"strings"
	"testing"
)

func sampleConversations() []Conversation {
	return []Conversation{
		{
			ID:       "1111aaaa",
			Metadata: &Metadata{Title: "Trip planning", Tags: []string{"travel", "summer"}},
			Messages: []Message{
				{Role: RoleUser, Content: "Where should we go in July?"},
				{Role: RoleAssistant, Content: "Consider Jeju island."},
			},
		},
		{
			ID:       "2222bbbb",
			Metadata: &Metadata{Title: "Go generics", Tags: []string{"go"}},
			Messages: []Message{
				{Role: RoleUser, Content: "Explain type parameters"},
			},
		},
		{
			ID: "3333cccc",
			Messages: []Message{
				{Role: RoleAssistant, Content: "untitled thread"},
			},
		},
	}
}

func TestFilterBlankQueryReturnsInput(t *testing.T) {
	convs := sampleConversations()
	for _, query := range []string{"", "   ", "\t\n"} {
		got := Filter(convs, query)
		if len(got) != len(convs) {
			t.Fatalf("Filter(%q) returned %d items, want %d", query, len(got), len(convs))
		}
		for i := range got {
			if got[i].ID != convs[i].ID {
				t.Fatalf("Filter(%q) changed order at %d: got %q, want %q", query, i, got[i].ID, convs[i].ID)
			}
		}
	}
}

func TestFilter(t *testing.T) {
	convs := sampleConversations()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "matches title", query: "Trip", want: []string{"1111aaaa"}},
		{name: "case insensitive", query: "tRiP", want: []string{"1111aaaa"}},
		{name: "matches tag", query: "travel", want: []string{"1111aaaa"}},
		{name: "matches message content", query: "jeju", want: []string{"1111aaaa"}},
		{name: "matches untitled thread body", query: "untitled", want: []string{"3333cccc"}},
		{name: "surrounding whitespace trimmed", query: "  generics  ", want: []string{"2222bbbb"}},
		{name: "no match", query: "nope", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(convs, tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].ID != tt.want[i] {
					t.Errorf("result %d = %q, want %q", i, got[i].ID, tt.want[i])
				}
			}
		})
	}
}

func TestFilterResultsAreMembers(t *testing.T) {
	convs := sampleConversations()
	got := Filter(convs, "go")
	for _, c := range got {
		found := false
		for _, orig := range convs {
			if orig.ID == c.ID {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("result %q is not a member of the input", c.ID)
		}
	}
	if !strings.Contains(searchText(convs[1]), "go") {
		t.Fatal("expected searchText of the generics thread to contain the needle")
	}
}
