// Package content turns content-workbook rows into JSON content documents.
package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/filatov87/SEO-BOG/internal/model"
)

// ErrMissingIdentity is returned for rows lacking a departure/destination
// code or name.
var ErrMissingIdentity = errors.New("missing identity field")

// Transform converts one source row into a content document.
//
// Malformed FAQ entries are dropped and returned as diagnostics. The only
// error is ErrMissingIdentity; the caller decides whether to skip the row.
func Transform(row model.SourceRow, d *Dialect) (model.ContentDocument, []model.Diagnostic, error) {
	if missing := missingIdentity(row); len(missing) > 0 {
		return model.ContentDocument{}, nil, fmt.Errorf("%w: %s", ErrMissingIdentity, strings.Join(missing, ", "))
	}

	faq, diags := ParseFAQ(row.FAQ)
	doc := model.ContentDocument{
		DepCity:       row.DepartureCode,
		DestCity:      row.DestinationCode,
		ImageBlock:    model.PlaceholderImage,
		FAQBlock:      faq,
		ArticleBlocks: ArticleBlocks(row, d),
	}
	return doc, diags, nil
}

// IsBlank reports whether a row has none of its identity fields, as with the
// trailing empty rows spreadsheets often carry.
func IsBlank(row model.SourceRow) bool {
	return len(missingIdentity(row)) == 4
}

func missingIdentity(row model.SourceRow) []string {
	var missing []string
	fields := []struct {
		name, value string
	}{
		{"departure code", row.DepartureCode},
		{"destination code", row.DestinationCode},
		{"departure name", row.DepartureName},
		{"destination name", row.DestinationName},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
