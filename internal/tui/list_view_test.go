package tui

import (
	"strings"
	"testing"

	"pensieve-tui/internal/app"
)

func TestRenderConversationListEmpty(t *testing.T) {
	got := RenderConversationList(nil, 0, 80, NewNoColorTheme())
	if !strings.Contains(got, "저장된 대화가 없습니다") {
		t.Fatalf("empty state text missing:\n%s", got)
	}
	if !strings.Contains(got, "MCP를 통해 대화를 저장해보세요!") {
		t.Fatalf("empty state hint missing:\n%s", got)
	}
}

func TestRenderConversationListItem(t *testing.T) {
	convs := []app.Conversation{
		{
			ID:        "deadbeef0000",
			UpdatedAt: "2024-01-02T03:04:05Z",
			Messages: []app.Message{
				{Role: app.RoleUser, Content: "hello world"},
			},
		},
	}
	got := RenderConversationList(convs, 0, 80, NewNoColorTheme())

	if !strings.Contains(got, "대화 deadbeef") {
		t.Errorf("synthetic label missing:\n%s", got)
	}
	if !strings.Contains(got, "hello world...") {
		t.Errorf("preview missing:\n%s", got)
	}
	if !strings.Contains(got, "1개 메시지") {
		t.Errorf("message count missing:\n%s", got)
	}
	if !strings.Contains(got, "2024년 1월 2일 12:04") {
		t.Errorf("formatted date missing:\n%s", got)
	}
}

func TestRenderTagBadgesOverflow(t *testing.T) {
	th := NewNoColorTheme()

	got := RenderTagBadges([]string{"a", "b", "c", "d"}, th)
	for _, want := range []string{"#a", "#b", "#c", "+1"} {
		if !strings.Contains(got, want) {
			t.Errorf("badge %q missing from %q", want, got)
		}
	}
	if strings.Contains(got, "#d") {
		t.Errorf("fourth tag should be folded into the overflow badge: %q", got)
	}

	if got := RenderTagBadges([]string{"x", "y"}, th); strings.Contains(got, "+") {
		t.Errorf("no overflow badge expected for 2 tags: %q", got)
	}
	if got := RenderTagBadges(nil, th); got != "" {
		t.Errorf("no tags should render nothing, got %q", got)
	}
}
