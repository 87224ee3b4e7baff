// Package export renders converted content documents as markdown pages with
// YAML front matter.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/filatov87/SEO-BOG/internal/model"
	"gopkg.in/yaml.v3"
)

const descriptionLimit = 160

// FrontMatter is the YAML header of an exported page.
type FrontMatter struct {
	Title       string           `yaml:"title"`
	DepCity     string           `yaml:"dep_city"`
	DestCity    string           `yaml:"dest_city"`
	Description string           `yaml:"description,omitempty"`
	FAQ         []model.FAQEntry `yaml:"faq,omitempty"`
}

// Page renders one document as a markdown page.
func Page(doc model.ContentDocument) ([]byte, error) {
	fm := FrontMatter{
		Title:    doc.DepCity + " - " + doc.DestCity,
		DepCity:  doc.DepCity,
		DestCity: doc.DestCity,
		FAQ:      doc.FAQBlock,
	}
	if len(doc.ArticleBlocks) > 0 {
		first := doc.ArticleBlocks[0]
		fm.Title = first.Title
		desc, err := PlainText(first.Text)
		if err != nil {
			return nil, err
		}
		fm.Description = Truncate(desc, descriptionLimit)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}
	enc.Close()
	buf.WriteString("---\n")

	for _, b := range doc.ArticleBlocks {
		body, err := htmltomarkdown.ConvertString(b.Text)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", b.ID, err)
		}
		fmt.Fprintf(&buf, "\n## %s\n\n%s\n", b.Title, strings.TrimSpace(body))
	}
	return buf.Bytes(), nil
}

// PlainText strips markup from article HTML, turning line breaks and list
// items into spaces.
func PlainText(html string) (string, error) {
	html = strings.NewReplacer("<br>", "\n", "</li>", " </li>").Replace(html)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing article html: %w", err)
	}
	return strings.Join(strings.Fields(doc.Text()), " "), nil
}

// Truncate cuts s to at most limit runes, backing up to the last word
// boundary when one exists.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	cut := string([]rune(s)[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,;:")
}

// Report summarizes a Run.
type Report struct {
	Files  int
	Pages  int
	Failed map[string]error
}

// Run renders every JSON document list in srcDir into
// <outDir>/<file>/<dep>-<dest>.md. Files that cannot be decoded are reported
// and skipped.
func Run(srcDir, outDir string) (Report, error) {
	rep := Report{Failed: make(map[string]error)}

	files, err := filepath.Glob(filepath.Join(srcDir, "*.json"))
	if err != nil {
		return rep, err
	}
	sort.Strings(files)

	for _, path := range files {
		name := filepath.Base(path)
		docs, err := readDocuments(path)
		if err != nil {
			rep.Failed[name] = err
			continue
		}

		dir := filepath.Join(outDir, strings.TrimSuffix(name, filepath.Ext(name)))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return rep, fmt.Errorf("creating %s: %w", dir, err)
		}

		rep.Files++
		for _, doc := range docs {
			page, err := Page(doc)
			if err != nil {
				rep.Failed[name] = err
				continue
			}
			out := filepath.Join(dir, PageName(doc))
			if err := os.WriteFile(out, page, 0o644); err != nil {
				return rep, fmt.Errorf("writing %s: %w", out, err)
			}
			rep.Pages++
		}
	}
	return rep, nil
}

// PageName returns the file name of a document's page.
func PageName(doc model.ContentDocument) string {
	clean := strings.NewReplacer("/", "_", `\`, "_", " ", "_")
	return clean.Replace(strings.ToLower(doc.DepCity+"-"+doc.DestCity)) + ".md"
}

func readDocuments(path string) ([]model.ContentDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var docs []model.ContentDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return docs, nil
}
