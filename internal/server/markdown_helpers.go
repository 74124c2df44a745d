package server

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// renderMarkdown converts markdown text to HTML, returning it as template.HTML for safe rendering.
// Headings get generated ids so the table of contents can link to them.
func renderMarkdown(text string) template.HTML {
	if text == "" {
		return template.HTML("")
	}

	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	mdParser := parser.NewWithExtensions(extensions)

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: htmlFlags,
	})

	htmlBytes := markdown.ToHTML([]byte(text), mdParser, renderer)

	return template.HTML(htmlBytes)
}

// tocEntry is one line of an article's table of contents.
type tocEntry struct {
	ID    string
	Title string
	Level int
}

// tableOfContents lists the h2 (level 1) and h3 (level 2) headings of
// rendered article HTML. Headings without an id are skipped.
func tableOfContents(body template.HTML) ([]tocEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse article html: %w", err)
	}

	var entries []tocEntry
	doc.Find("h2, h3").Each(func(_ int, sel *goquery.Selection) {
		id, ok := sel.Attr("id")
		if !ok || id == "" {
			return
		}
		level := 1
		if goquery.NodeName(sel) == "h3" {
			level = 2
		}
		entries = append(entries, tocEntry{
			ID:    id,
			Title: strings.TrimSpace(sel.Text()),
			Level: level,
		})
	})

	return entries, nil
}

// truncateSummary truncates text to maxChars runes for previews, cutting at
// the last space and adding "...".
func truncateSummary(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	truncated := string(runes[:maxChars])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > 0 {
		truncated = truncated[:lastSpace]
	}

	return truncated + "..."
}
