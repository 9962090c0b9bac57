package tui

import (
	"fmt"
	"strings"

	"pensieve-tui/internal/app"
)

// RenderConversationDetail renders the metadata panel and the full message
// thread in stored order, numbered from 1.
func RenderConversationDetail(conv app.Conversation, md *MarkdownRenderer, width int, th Theme) string {
	var b strings.Builder

	b.WriteString(th.DetailTitle.Render(conv.Label()))
	b.WriteString("\n")
	b.WriteString(th.DetailMeta.Render(fmt.Sprintf("%s · 메시지 %d개", app.FormatUpdatedAt(conv.UpdatedAt), len(conv.Messages))))
	b.WriteString("\n")
	if tags := conv.Tags(); len(tags) > 0 {
		parts := make([]string, 0, len(tags))
		for _, tag := range tags {
			parts = append(parts, th.TagBadge.Render("#"+tag))
		}
		b.WriteString(strings.Join(parts, " "))
	} else {
		b.WriteString(th.DetailMeta.Render("태그가 없습니다"))
	}
	b.WriteString("\n\n")

	if len(conv.Messages) == 0 {
		b.WriteString(th.EmptyState.Render("메시지가 없습니다."))
		return b.String()
	}

	for i, msg := range conv.Messages {
		label := "Assistant"
		style := th.RoleAssistant
		if msg.Role == app.RoleUser {
			label = "사용자"
			style = th.RoleUser
		}
		b.WriteString(style.Render(fmt.Sprintf("%s #%d", label, i+1)))
		b.WriteString("\n")
		b.WriteString(md.Render(msg.Content, width))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
