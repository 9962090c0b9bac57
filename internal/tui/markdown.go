package tui

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Pre-compiled regex patterns for the HTML-to-terminal pass
var (
	codeBlockRegex = regexp.MustCompile(`(?s)<pre><code(?: class="language-([a-zA-Z0-9+-]+)")?>(.*?)</code></pre>`)
	inlineCodeRe   = regexp.MustCompile(`<code>([^<]+)</code>`)
	h1Regex        = regexp.MustCompile(`<h1>(.*?)</h1>`)
	h2Regex        = regexp.MustCompile(`<h2>(.*?)</h2>`)
	h3Regex        = regexp.MustCompile(`<h3>(.*?)</h3>`)
	strongRegex    = regexp.MustCompile(`<strong>(.*?)</strong>`)
	emRegex        = regexp.MustCompile(`<em>(.*?)</em>`)
	linkRegex      = regexp.MustCompile(`<a href="([^"]*)">(.*?)</a>`)
	blockquoteRe   = regexp.MustCompile(`(?s)<blockquote>(.*?)</blockquote>`)
	ulRegex        = regexp.MustCompile(`(?s)<ul>(.*?)</ul>`)
	olRegex        = regexp.MustCompile(`(?s)<ol>(.*?)</ol>`)
	liRegex        = regexp.MustCompile(`(?s)<li>(.*?)</li>`)
	htmlTagRegex   = regexp.MustCompile(`<[^>]+>`)
	multiNewline   = regexp.MustCompile(`\n{3,}`)
)

// renderStrategy turns raw message text into displayable output, or
// declines so the next strategy runs.
type renderStrategy func(raw string, width int) (string, bool)

// MarkdownRenderer converts raw message content into styled terminal
// output. Strategies are tried top-down and the escaping fallback always
// succeeds, so a message is never dropped because parsing failed and raw
// markup never passes through unescaped.
type MarkdownRenderer struct {
	md         goldmark.Markdown
	formatter  chroma.Formatter
	style      *chroma.Style
	strategies []renderStrategy
}

// NewMarkdownRenderer builds the full pipeline: GFM with hard line breaks,
// then chroma highlighting over fenced code blocks.
func NewMarkdownRenderer() *MarkdownRenderer {
	r := &MarkdownRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		formatter: formatters.Get("terminal256"),
		style:     styles.Get("dracula"),
	}
	r.strategies = []renderStrategy{r.renderMarkdown, r.renderEscaped}
	return r
}

// NewPlainRenderer skips the markdown engine entirely, leaving only the
// escaping fallback. Used by `show --plain` and whenever the engine is
// unavailable.
func NewPlainRenderer() *MarkdownRenderer {
	r := &MarkdownRenderer{}
	r.strategies = []renderStrategy{r.renderEscaped}
	return r
}

// Render evaluates the strategy list top-down.
func (r *MarkdownRenderer) Render(raw string, width int) string {
	for _, strategy := range r.strategies {
		if out, ok := strategy(raw, width); ok {
			return out
		}
	}
	return EscapeText(raw)
}

func (r *MarkdownRenderer) renderMarkdown(raw string, width int) (string, bool) {
	if r.md == nil {
		return "", false
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(raw), &buf); err != nil {
		return "", false
	}
	return r.formatForTerminal(buf.String(), width), true
}

func (r *MarkdownRenderer) renderEscaped(raw string, _ int) (string, bool) {
	return EscapeText(raw), true
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeText escapes the five characters that must never pass through
// unencoded when the markdown engine declines. Whitespace is preserved.
func EscapeText(raw string) string {
	return textEscaper.Replace(raw)
}

// formatForTerminal rewrites goldmark's HTML into styled terminal text.
func (r *MarkdownRenderer) formatForTerminal(htmlContent string, width int) string {
	result := htmlContent

	// Extract and highlight code blocks before any other transformation.
	var codeBlocks []string
	result = codeBlockRegex.ReplaceAllStringFunc(result, func(m string) string {
		matches := codeBlockRegex.FindStringSubmatch(m)
		if len(matches) < 3 {
			return m
		}
		lang := matches[1]
		code := decodeHTMLEntities(strings.TrimRight(matches[2], "\n"))
		highlighted := r.RenderCodeBlock(code, lang)

		codeWidth := width - 6
		if codeWidth < 20 {
			codeWidth = 20
		}
		styled := lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6272A4")).
			Width(codeWidth).
			Render(highlighted)

		index := len(codeBlocks)
		codeBlocks = append(codeBlocks, styled)
		return fmt.Sprintf("\n{{CODE_BLOCK_%d}}\n", index)
	})

	result = inlineCodeRe.ReplaceAllStringFunc(result, func(m string) string {
		matches := inlineCodeRe.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F8F2")).
			Background(lipgloss.Color("#44475A")).
			Render(decodeHTMLEntities(matches[1]))
	})

	heading := func(re *regexp.Regexp, style lipgloss.Style) {
		result = re.ReplaceAllStringFunc(result, func(m string) string {
			matches := re.FindStringSubmatch(m)
			if len(matches) < 2 {
				return m
			}
			return style.Render(htmlTagRegex.ReplaceAllString(matches[1], "")) + "\n"
		})
	}
	heading(h1Regex, lipgloss.NewStyle().Bold(true).Underline(true))
	heading(h2Regex, lipgloss.NewStyle().Bold(true))
	heading(h3Regex, lipgloss.NewStyle().Bold(true).Italic(true))

	result = strongRegex.ReplaceAllStringFunc(result, func(m string) string {
		matches := strongRegex.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		return lipgloss.NewStyle().Bold(true).Render(matches[1])
	})

	result = emRegex.ReplaceAllStringFunc(result, func(m string) string {
		matches := emRegex.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		return lipgloss.NewStyle().Italic(true).Render(matches[1])
	})

	result = linkRegex.ReplaceAllStringFunc(result, func(m string) string {
		matches := linkRegex.FindStringSubmatch(m)
		if len(matches) < 3 {
			return m
		}
		return lipgloss.NewStyle().Underline(true).Render(fmt.Sprintf("%s (%s)", matches[2], matches[1]))
	})

	result = blockquoteRe.ReplaceAllStringFunc(result, func(m string) string {
		matches := blockquoteRe.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		content := htmlTagRegex.ReplaceAllString(strings.TrimSpace(matches[1]), "")
		var quoted []string
		for _, line := range strings.Split(content, "\n") {
			quoted = append(quoted, "│ "+strings.TrimSpace(line))
		}
		return strings.Join(quoted, "\n") + "\n"
	})

	result = ulRegex.ReplaceAllStringFunc(result, func(m string) string {
		matches := ulRegex.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		var list strings.Builder
		for _, item := range liRegex.FindAllStringSubmatch(matches[1], -1) {
			if len(item) < 2 {
				continue
			}
			list.WriteString("  • ")
			list.WriteString(strings.TrimSpace(htmlTagRegex.ReplaceAllString(item[1], "")))
			list.WriteString("\n")
		}
		return list.String()
	})

	result = olRegex.ReplaceAllStringFunc(result, func(m string) string {
		matches := olRegex.FindStringSubmatch(m)
		if len(matches) < 2 {
			return m
		}
		var list strings.Builder
		for i, item := range liRegex.FindAllStringSubmatch(matches[1], -1) {
			if len(item) < 2 {
				continue
			}
			list.WriteString(fmt.Sprintf("  %d. ", i+1))
			list.WriteString(strings.TrimSpace(htmlTagRegex.ReplaceAllString(item[1], "")))
			list.WriteString("\n")
		}
		return list.String()
	})

	result = strings.ReplaceAll(result, "<p>", "")
	result = strings.ReplaceAll(result, "</p>", "\n")
	result = strings.ReplaceAll(result, "<br>", "\n")
	result = strings.ReplaceAll(result, "<br/>", "\n")
	result = strings.ReplaceAll(result, "<br />", "\n")

	for i, codeBlock := range codeBlocks {
		result = strings.ReplaceAll(result, fmt.Sprintf("{{CODE_BLOCK_%d}}", i), codeBlock)
	}

	result = htmlTagRegex.ReplaceAllString(result, "")
	result = decodeHTMLEntities(result)
	result = multiNewline.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// RenderCodeBlock highlights a fenced code block. Best-effort: unknown
// languages and tokenizer failures fall back to the bare code.
func (r *MarkdownRenderer) RenderCodeBlock(code, lang string) string {
	if r.formatter == nil || r.style == nil {
		return code
	}

	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := r.formatter.Format(&buf, r.style, iterator); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

func decodeHTMLEntities(s string) string {
	replacements := []struct {
		old string
		new string
	}{
		{"&amp;", "&"},
		{"&lt;", "<"},
		{"&gt;", ">"},
		{"&quot;", "\""},
		{"&#39;", "'"},
		{"&#x27;", "'"},
		{"&#x60;", "`"},
		{"&nbsp;", " "},
	}
	for _, r := range replacements {
		s = strings.ReplaceAll(s, r.old, r.new)
	}
	return s
}
