package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/filatov87/SEO-BOG/internal/model"
)

// lineBreak is the block-separator marker that stands in for a line break.
const lineBreak = "<br>"

// entryBoundary splits FAQ text on runs of two or more line breaks; lines
// holding only whitespace count as blank.
var entryBoundary = regexp.MustCompile(`\n[ \t]*(?:\n[ \t]*)+`)

// normalizeNewlines converts CRLF and bare CR line endings to LF.
func normalizeNewlines(s string) string {
	return strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(s)
}

// ParseFAQ splits a free-text FAQ cell into question/answer pairs.
//
// Each entry must be exactly two lines, the first containing "Question" and
// the second "Answer", each with a ": " prefix. Other entries are skipped and
// reported as diagnostics; the returned slice is never nil.
func ParseFAQ(text string) ([]model.FAQEntry, []model.Diagnostic) {
	entries := []model.FAQEntry{}
	text = strings.TrimSpace(normalizeNewlines(text))
	if text == "" {
		return entries, nil
	}

	var diags []model.Diagnostic
	for _, raw := range entryBoundary.Split(text, -1) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		entry, err := parseFAQEntry(raw)
		if err != nil {
			diags = append(diags, model.Diagnostic{
				Kind:    model.DiagFAQEntry,
				Message: fmt.Sprintf("%v: %q", err, raw),
			})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, diags
}

func parseFAQEntry(raw string) (model.FAQEntry, error) {
	parts := strings.Split(strings.ReplaceAll(raw, "\n", lineBreak), lineBreak)
	if len(parts) != 2 {
		return model.FAQEntry{}, fmt.Errorf("expected 2 lines, got %d", len(parts))
	}
	if !strings.Contains(parts[0], "Question") || !strings.Contains(parts[1], "Answer") {
		return model.FAQEntry{}, fmt.Errorf("missing Question/Answer markers")
	}

	_, question, ok := strings.Cut(parts[0], ": ")
	if !ok {
		return model.FAQEntry{}, fmt.Errorf("question has no \": \" prefix")
	}
	_, answer, ok := strings.Cut(parts[1], ": ")
	if !ok {
		return model.FAQEntry{}, fmt.Errorf("answer has no \": \" prefix")
	}

	return model.FAQEntry{
		Question: strings.TrimSpace(question),
		Answer:   strings.TrimSpace(answer),
	}, nil
}
