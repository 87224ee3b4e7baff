package content

import (
	"strings"

	"github.com/filatov87/SEO-BOG/internal/model"
)

const listItemMarker = "<li>"

// ArticleBlocks builds the article blocks of a row in slot order. Slots
// without a matching column, or with a blank cell, are left out.
func ArticleBlocks(row model.SourceRow, d *Dialect) []model.ArticleBlock {
	blocks := []model.ArticleBlock{}
	for _, slot := range d.Slots {
		title := slot.Title(row.DepartureName, row.DestinationName)
		text, ok := row.Cell(title)
		if !ok {
			text, ok = row.Cell(slot.Template)
		}
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		blocks = append(blocks, model.ArticleBlock{
			ID:    slot.ID,
			Title: title,
			Text:  FormatArticleText(text),
		})
	}
	return blocks
}

// FormatArticleText converts line breaks to <br>. Text that carries a list
// item tag is instead rendered as a <ul> with one item per line.
func FormatArticleText(text string) string {
	text = strings.TrimSpace(normalizeNewlines(text))
	text = strings.ReplaceAll(text, "\n", lineBreak)
	if !strings.Contains(text, listItemMarker) {
		return text
	}

	var b strings.Builder
	b.WriteString("<ul>")
	for _, piece := range strings.Split(text, lineBreak) {
		piece = strings.TrimSpace(piece)
		piece = strings.TrimPrefix(piece, listItemMarker)
		piece = strings.TrimSuffix(piece, "</li>")
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		b.WriteString(listItemMarker)
		b.WriteString(piece)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
