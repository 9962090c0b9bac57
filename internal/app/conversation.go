package app

import (
	"strings"
	"time"
)

// Role values used by the archive API.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn in a conversation. Messages carry no identity of
// their own; their position inside the parent conversation is what matters.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Metadata holds the optional user-facing annotations of a conversation.
type Metadata struct {
	Title string   `json:"title,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// Conversation is one archived message thread as served by the API. Entries
// are fetched read-only; a list reload replaces them wholesale instead of
// patching fields in place.
type Conversation struct {
	ID        string    `json:"id"`
	UpdatedAt string    `json:"updated_at"`
	Metadata  *Metadata `json:"metadata,omitempty"`
	Messages  []Message `json:"messages,omitempty"`
}

// User mirrors the /api/me payload.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

const previewMaxRunes = 100

// Label returns the display title, falling back to a synthetic label built
// from the first 8 characters of the id when no title was set.
func (c Conversation) Label() string {
	if c.Metadata != nil && strings.TrimSpace(c.Metadata.Title) != "" {
		return c.Metadata.Title
	}
	id := c.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return "대화 " + id
}

// Tags returns the tag list, nil when no metadata exists.
func (c Conversation) Tags() []string {
	if c.Metadata == nil {
		return nil
	}
	return c.Metadata.Tags
}

// Preview returns the first user-authored message cut to 100 characters,
// whitespace collapsed for single-line display. Threads without a user
// message get a placeholder.
func (c Conversation) Preview() string {
	for _, m := range c.Messages {
		if m.Role != RoleUser {
			continue
		}
		text := strings.Join(strings.Fields(m.Content), " ")
		runes := []rune(text)
		if len(runes) > previewMaxRunes {
			runes = runes[:previewMaxRunes]
		}
		return string(runes) + "..."
	}
	return "메시지 없음"
}

var seoul = loadSeoul()

func loadSeoul() *time.Location {
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		return loc
	}
	// Containers without tzdata. KST has no DST, so a fixed offset is exact.
	return time.FixedZone("KST", 9*60*60)
}

// The API serves RFC 3339 timestamps, but older records were stored as naive
// UTC strings. Try both shapes.
var updatedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// UpdatedAtTime parses the update timestamp, treating naive values as UTC.
func (c Conversation) UpdatedAtTime() (time.Time, bool) {
	raw := strings.TrimSpace(c.UpdatedAt)
	for _, layout := range updatedAtLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatUpdatedAt renders an API timestamp in Seoul local time using the
// dashboard's Korean date format. Unparseable values come back verbatim.
func FormatUpdatedAt(raw string) string {
	c := Conversation{UpdatedAt: raw}
	t, ok := c.UpdatedAtTime()
	if !ok {
		return strings.TrimSpace(raw)
	}
	return t.In(seoul).Format("2006년 1월 2일 15:04")
}

// Stats are the dashboard header counters.
type Stats struct {
	Total     int
	ThisMonth int
	TagCount  int
}

// ComputeStats counts conversations, this-month activity (Seoul calendar)
// and distinct tags across the collection.
func ComputeStats(convs []Conversation, now time.Time) Stats {
	st := Stats{Total: len(convs)}
	now = now.In(seoul)
	tags := make(map[string]struct{})
	for _, c := range convs {
		if t, ok := c.UpdatedAtTime(); ok {
			t = t.In(seoul)
			if t.Year() == now.Year() && t.Month() == now.Month() {
				st.ThisMonth++
			}
		}
		for _, tag := range c.Tags() {
			tags[tag] = struct{}{}
		}
	}
	st.TagCount = len(tags)
	return st
}
