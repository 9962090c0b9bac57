package app

import "strings"

// Filter returns the conversations whose title, tags or message contents
// contain query as a case-insensitive substring. A blank query returns the
// input unchanged. Pure: the input slice is never mutated.
func Filter(convs []Conversation, query string) []Conversation {
	query = strings.TrimSpace(query)
	if query == "" {
		return convs
	}
	needle := strings.ToLower(query)
	out := make([]Conversation, 0, len(convs))
	for _, c := range convs {
		if strings.Contains(searchText(c), needle) {
			out = append(out, c)
		}
	}
	return out
}

// searchText concatenates title, tags and message contents with single
// spaces, lowercased, mirroring what the dashboard search matched against.
func searchText(c Conversation) string {
	parts := make([]string, 0, len(c.Messages)+2)
	title := ""
	var tags []string
	if c.Metadata != nil {
		title = c.Metadata.Title
		tags = c.Metadata.Tags
	}
	parts = append(parts, title, strings.Join(tags, " "))
	for _, m := range c.Messages {
		parts = append(parts, m.Content)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
