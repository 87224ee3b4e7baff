// Package generator drafts travel copy through a chat completion service and
// writes it to workbooks.
package generator

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/filatov87/SEO-BOG/internal/completion"
	"github.com/filatov87/SEO-BOG/internal/config"
	"github.com/filatov87/SEO-BOG/internal/content"
	"github.com/filatov87/SEO-BOG/internal/model"
	"github.com/filatov87/SEO-BOG/internal/sheet"
)

const (
	promoMaxTokens       = 200
	destinationMaxTokens = 200
	translateMaxTokens   = 150
	translateTemperature = 0.5
)

// Completer answers chat completion requests.
type Completer interface {
	Complete(ctx context.Context, req completion.Request) (string, error)
}

// Cache stores successful completions by request key.
type Cache interface {
	CachedCompletion(key string) (string, bool)
	WriteCompletion(key, model, prompt, response string) error
}

// Generator fills workbooks with generated answers. Service failures are
// written as a fallback value and reported through Warn.
type Generator struct {
	Client   Completer
	Cache    Cache
	Settings config.CompletionConfig
	// Warn and Progress are optional.
	Warn     func(format string, args ...any)
	Progress func(i, n int, label string)
}

// Result describes a written workbook.
type Result struct {
	Path     string
	Rows     int
	Answers  int
	Failures int
}

// OutputPath returns <dir>/<prefix>_<YYYYMMDD_HHMM>.xlsx.
func OutputPath(dir, prefix string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.xlsx", prefix, now.Format("20060102_1504")))
}

// SEOHeaders are the columns of a generated content workbook. The article
// headers keep their placeholders so the workbook converts like any other.
func SEOHeaders() []string {
	headers := append([]string{}, PairColumns...)
	for _, slot := range content.English.Slots {
		headers = append(headers, slot.Template)
	}
	return append(headers, FAQColumn)
}

// SEO writes one row per city pair with an answer per article slot and an FAQ.
func (g *Generator) SEO(ctx context.Context, pairs []model.CityPair, outPath string) (Result, error) {
	res := Result{Path: outPath}
	wb, err := sheet.NewWorkbook()
	if err != nil {
		return res, err
	}
	defer wb.Close()

	const sheetName = "Content"
	if err := wb.AddSheet(sheetName, SEOHeaders()...); err != nil {
		return res, err
	}

	for i, p := range pairs {
		if g.Progress != nil {
			g.Progress(i+1, len(pairs), p.DepartureCity+" -> "+p.DestinationCity)
		}

		row := []string{
			p.DepartureCode, p.DepartureCity, p.DepartureCountry,
			p.DestinationCode, p.DestinationCity, p.DestinationCountry,
		}
		prompts := append(append([]string{}, completion.SEOPrompts...), completion.FAQPrompt)
		for _, tmpl := range prompts {
			req := g.request(g.Settings.MaxTokens, g.Settings.Temperature,
				completion.Fill(tmpl, p.DepartureCity, p.DestinationCity), completion.SEOSystem)
			answer, err := g.answer(ctx, req, completion.Sentinel, &res)
			if err != nil {
				return res, err
			}
			row = append(row, answer)
		}

		if err := wb.AppendRow(sheetName, row...); err != nil {
			return res, err
		}
		res.Rows++
	}

	return res, save(wb, outPath)
}

// Promo writes one promotional text per route.
func (g *Generator) Promo(ctx context.Context, pairs []model.CityPair, outPath string) (Result, error) {
	res := Result{Path: outPath}
	wb, err := sheet.NewWorkbook()
	if err != nil {
		return res, err
	}
	defer wb.Close()

	const sheetName = "Promotions"
	if err := wb.AddSheet(sheetName, "Departure", "Destination", "Promotional Text"); err != nil {
		return res, err
	}

	for i, p := range pairs {
		if g.Progress != nil {
			g.Progress(i+1, len(pairs), p.DepartureCity+" -> "+p.DestinationCity)
		}

		req := g.request(promoMaxTokens, g.Settings.Temperature,
			completion.Fill(completion.PromoPrompt, p.DepartureCity, p.DestinationCity), completion.PromoSystem...)
		answer, err := g.answer(ctx, req, completion.Sentinel, &res)
		if err != nil {
			return res, err
		}
		if err := wb.AppendRow(sheetName, p.DepartureCity, p.DestinationCity, answer); err != nil {
			return res, err
		}
		res.Rows++
	}

	return res, save(wb, outPath)
}

// Destinations answers the destination questions for each city. With
// translate set, a second sheet carries the Spanish translation of every
// answer; a failed translation leaves the cell empty.
func (g *Generator) Destinations(ctx context.Context, cities []string, outPath string, translate bool) (Result, error) {
	res := Result{Path: outPath}
	wb, err := sheet.NewWorkbook()
	if err != nil {
		return res, err
	}
	defer wb.Close()

	const (
		english = "English"
		spanish = "SPANISH TXT"
	)
	headers := append([]string{"City"}, completion.DestinationQuestions...)
	if err := wb.AddSheet(english, headers...); err != nil {
		return res, err
	}
	if translate {
		if err := wb.AddSheet(spanish, headers...); err != nil {
			return res, err
		}
	}

	for i, city := range cities {
		if g.Progress != nil {
			g.Progress(i+1, len(cities), city)
		}

		rowEN := []string{city}
		rowES := []string{city}
		for _, q := range completion.DestinationQuestions {
			req := g.request(destinationMaxTokens, g.Settings.Temperature,
				completion.FillCity(q, city), completion.PromoSystem...)
			answer, err := g.answer(ctx, req, completion.Sentinel, &res)
			if err != nil {
				return res, err
			}
			rowEN = append(rowEN, answer)

			if !translate {
				continue
			}
			var translated string
			if answer != completion.Sentinel {
				tr := g.request(translateMaxTokens, translateTemperature,
					completion.TranslatePrompt+answer, completion.TranslatorSystem)
				if translated, err = g.answer(ctx, tr, "", &res); err != nil {
					return res, err
				}
			}
			rowES = append(rowES, translated)
		}

		if err := wb.AppendRow(english, rowEN...); err != nil {
			return res, err
		}
		if translate {
			if err := wb.AppendRow(spanish, rowES...); err != nil {
				return res, err
			}
		}
		res.Rows++
	}

	return res, save(wb, outPath)
}

func (g *Generator) request(maxTokens int, temperature float64, prompt string, system ...string) completion.Request {
	req := completion.Request{
		Model:       g.Settings.Model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	for _, s := range system {
		req.Messages = append(req.Messages, completion.Message{Role: "system", Content: s})
	}
	req.Messages = append(req.Messages, completion.Message{Role: "user", Content: prompt})
	return req
}

// answer returns the cached or freshly generated answer to req, or fallback
// when the service fails. Only cancellation and cache writes return errors.
func (g *Generator) answer(ctx context.Context, req completion.Request, fallback string, res *Result) (string, error) {
	key := req.Key()
	if g.Cache != nil {
		if text, ok := g.Cache.CachedCompletion(key); ok {
			res.Answers++
			return text, nil
		}
	}

	text, err := g.Client.Complete(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		res.Failures++
		g.warn("completion failed: %v", err)
		return fallback, nil
	}
	text = completion.Clean(text)

	if g.Cache != nil {
		if err := g.Cache.WriteCompletion(key, req.Model, req.Prompt(), text); err != nil {
			return "", fmt.Errorf("caching completion: %w", err)
		}
	}
	res.Answers++
	return text, nil
}

func (g *Generator) warn(format string, args ...any) {
	if g.Warn != nil {
		g.Warn(format, args...)
	}
}

func save(wb *sheet.Workbook, path string) error {
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
