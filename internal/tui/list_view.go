package tui

import (
	"fmt"
	"strings"

	"pensieve-tui/internal/app"
)

const maxVisibleTags = 3

// RenderConversationList projects the (possibly filtered) store contents
// into the dashboard list. Pure: the output depends only on its inputs.
func RenderConversationList(convs []app.Conversation, cursor, width int, th Theme) string {
	if len(convs) == 0 {
		return renderEmptyState(width, th)
	}
	var b strings.Builder
	for i, conv := range convs {
		b.WriteString(renderListItem(conv, i == cursor, width, th))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderEmptyState(width int, th Theme) string {
	w := width - 4
	if w < 20 {
		w = 20
	}
	return th.EmptyState.Width(w).Render("저장된 대화가 없습니다\nMCP를 통해 대화를 저장해보세요!")
}

func renderListItem(conv app.Conversation, selected bool, width int, th Theme) string {
	marker := "  "
	titleStyle := th.ItemTitle
	if selected {
		marker = th.Cursor.Render("❯ ")
		titleStyle = th.ItemTitleSel
	}

	meta := fmt.Sprintf("%s · %d개 메시지", app.FormatUpdatedAt(conv.UpdatedAt), len(conv.Messages))
	if badges := RenderTagBadges(conv.Tags(), th); badges != "" {
		meta += "  " + badges
	}

	preview := conv.Preview()
	if w := width - 6; w > 10 && len([]rune(preview)) > w {
		preview = string([]rune(preview)[:w])
	}

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString(titleStyle.Render(conv.Label()))
	b.WriteString("\n    ")
	b.WriteString(th.ItemPreview.Render(preview))
	b.WriteString("\n    ")
	b.WriteString(th.ItemMeta.Render(meta))
	b.WriteString("\n")
	return b.String()
}

// RenderTagBadges shows at most three tags, folding the rest into a "+N"
// overflow badge.
func RenderTagBadges(tags []string, th Theme) string {
	if len(tags) == 0 {
		return ""
	}
	shown := tags
	if len(shown) > maxVisibleTags {
		shown = shown[:maxVisibleTags]
	}
	parts := make([]string, 0, len(shown)+1)
	for _, tag := range shown {
		parts = append(parts, th.TagBadge.Render("#"+tag))
	}
	if len(tags) > maxVisibleTags {
		parts = append(parts, th.OverflowTag.Render(fmt.Sprintf("+%d", len(tags)-maxVisibleTags)))
	}
	return strings.Join(parts, " ")
}
