package generator

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/filatov87/SEO-BOG/internal/completion"
	"github.com/filatov87/SEO-BOG/internal/config"
	"github.com/filatov87/SEO-BOG/internal/model"
	"github.com/filatov87/SEO-BOG/internal/sheet"
)

// fakeCompleter answers with a function of the prompt and fails for prompts
// containing failOn.
type fakeCompleter struct {
	calls  []completion.Request
	failOn string
}

func (f *fakeCompleter) Complete(ctx context.Context, req completion.Request) (string, error) {
	f.calls = append(f.calls, req)
	p := req.Prompt()
	if f.failOn != "" && strings.Contains(p, f.failOn) {
		return "", errors.New("API returned status 500")
	}
	if strings.HasPrefix(p, completion.TranslatePrompt) {
		return "ES " + strings.TrimPrefix(p, completion.TranslatePrompt), nil
	}
	return "  answer " + p[:10] + "\n", nil
}

type memCache map[string]string

func (m memCache) CachedCompletion(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m memCache) WriteCompletion(key, model, prompt, response string) error {
	m[key] = response
	return nil
}

func newGenerator(c Completer, cache Cache) (*Generator, *[]string) {
	var warnings []string
	g := &Generator{
		Client:   c,
		Cache:    cache,
		Settings: config.Defaults().Completion,
		Warn: func(format string, args ...any) {
			warnings = append(warnings, format)
		},
	}
	return g, &warnings
}

var pairs = []model.CityPair{
	{DepartureCode: "NYC", DepartureCity: "New York", DepartureCountry: "USA",
		DestinationCode: "LON", DestinationCity: "London", DestinationCountry: "UK"},
}

func TestSEO(t *testing.T) {
	fc := &fakeCompleter{failOn: "FAQ with 10"}
	g, warnings := newGenerator(fc, nil)
	out := filepath.Join(t.TempDir(), "Content_table.xlsx")

	res, err := g.SEO(context.Background(), pairs, out)
	if err != nil {
		t.Fatalf("SEO: %v", err)
	}
	if res.Rows != 1 || res.Answers != 11 || res.Failures != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
	if len(*warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", *warnings)
	}
	if len(fc.calls) != 12 {
		t.Fatalf("expected 12 completion calls, got %d", len(fc.calls))
	}
	first := fc.calls[0]
	if first.MaxTokens != 500 || first.Temperature != 0.8 || first.Model != "gpt-3.5-turbo" {
		t.Errorf("unexpected request settings: %+v", first)
	}
	if first.Messages[0].Content != completion.SEOSystem {
		t.Errorf("unexpected system message %q", first.Messages[0].Content)
	}
	if strings.Contains(first.Prompt(), "{destination_city}") || !strings.Contains(first.Prompt(), "London") {
		t.Errorf("prompt not filled: %q", first.Prompt())
	}

	tbl, err := sheet.ReadXLSX(out, "Content")
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(tbl.Headers) != 18 || tbl.Headers[6] != "Your ultimate guide for {departure_city} to {destination_city} travel" {
		t.Errorf("unexpected headers: %v", tbl.Headers)
	}
	row := tbl.Rows[0]
	if row.Value(DestinationCountryColumn) != "UK" {
		t.Errorf("identity columns not written: %v", row.Cells)
	}
	if got := row.Value("Where to stay in {destination_city}?"); !strings.HasPrefix(got, "answer ") {
		t.Errorf("answer not cleaned: %q", got)
	}
	if row.Value(FAQColumn) != completion.Sentinel {
		t.Errorf("expected sentinel for failed FAQ, got %q", row.Value(FAQColumn))
	}
}

func TestPromoUsesCache(t *testing.T) {
	fc := &fakeCompleter{}
	cache := memCache{}
	g, _ := newGenerator(fc, cache)
	dir := t.TempDir()

	if _, err := g.Promo(context.Background(), pairs, filepath.Join(dir, "a.xlsx")); err != nil {
		t.Fatalf("first promo: %v", err)
	}
	if _, err := g.Promo(context.Background(), pairs, filepath.Join(dir, "b.xlsx")); err != nil {
		t.Fatalf("second promo: %v", err)
	}
	if len(fc.calls) != 1 {
		t.Errorf("cached answer should not be requested again, got %d calls", len(fc.calls))
	}
	req := fc.calls[0]
	if req.MaxTokens != 200 || len(req.Messages) != 3 {
		t.Errorf("unexpected promo request: %+v", req)
	}

	tbl, err := sheet.ReadXLSX(filepath.Join(dir, "b.xlsx"), "Promotions")
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if tbl.Rows[0].Value("Departure") != "New York" || tbl.Rows[0].Value("Promotional Text") == "" {
		t.Errorf("unexpected promo row: %v", tbl.Rows[0].Cells)
	}
}

func TestPromoFailuresAreNotCached(t *testing.T) {
	fc := &fakeCompleter{failOn: "traveling from"}
	cache := memCache{}
	g, _ := newGenerator(fc, cache)

	res, err := g.Promo(context.Background(), pairs, filepath.Join(t.TempDir(), "p.xlsx"))
	if err != nil {
		t.Fatalf("promo: %v", err)
	}
	if res.Failures != 1 || len(cache) != 0 {
		t.Errorf("failure should not be cached: res=%+v cache=%v", res, cache)
	}
}

func TestDestinationsTranslate(t *testing.T) {
	fc := &fakeCompleter{failOn: "local dishes"}
	g, _ := newGenerator(fc, nil)
	out := filepath.Join(t.TempDir(), "dest.xlsx")

	res, err := g.Destinations(context.Background(), []string{"Lima"}, out, true)
	if err != nil {
		t.Fatalf("destinations: %v", err)
	}
	if res.Rows != 1 {
		t.Errorf("unexpected result: %+v", res)
	}

	en, err := sheet.ReadXLSX(out, "English")
	if err != nil {
		t.Fatalf("reading English sheet: %v", err)
	}
	es, err := sheet.ReadXLSX(out, "SPANISH TXT")
	if err != nil {
		t.Fatalf("reading Spanish sheet: %v", err)
	}

	why := "Why should I visit {city}?"
	dishes := "What local dishes should I try in {city}?"
	if en.Rows[0].Value(why) == "" || en.Rows[0].Value(dishes) != completion.Sentinel {
		t.Errorf("unexpected English row: %v", en.Rows[0].Cells)
	}
	if got := es.Rows[0].Value(why); got != "ES "+en.Rows[0].Value(why) {
		t.Errorf("unexpected translation %q", got)
	}
	if es.Rows[0].Value(dishes) != "" {
		t.Errorf("failed answer should leave an empty translation, got %q", es.Rows[0].Value(dishes))
	}

	for _, c := range fc.calls {
		if strings.HasPrefix(c.Prompt(), completion.TranslatePrompt) {
			if c.MaxTokens != 150 || c.Temperature != 0.5 {
				t.Errorf("unexpected translation settings: %+v", c)
			}
		}
	}
}

func TestCancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g, _ := newGenerator(cancelledCompleter{}, nil)

	if _, err := g.Promo(ctx, pairs, filepath.Join(t.TempDir(), "p.xlsx")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type cancelledCompleter struct{}

func (cancelledCompleter) Complete(ctx context.Context, req completion.Request) (string, error) {
	return "", ctx.Err()
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 7, 9, 5, 0, 0, time.UTC)
	got := OutputPath("Results", "Promo_pairs", now)
	if got != filepath.Join("Results", "Promo_pairs_20240307_0905.xlsx") {
		t.Errorf("OutputPath = %q", got)
	}
}

func TestReadInputs(t *testing.T) {
	tbl := sheet.NewTable("pairs.csv", PairColumns, [][]string{
		{"NYC", "New York", "USA", "LON", "London", "UK"},
		{"", "", "", "", "", ""},
	})
	got, err := ReadCityPairs(tbl)
	if err != nil {
		t.Fatalf("ReadCityPairs: %v", err)
	}
	if len(got) != 1 || got[0] != pairs[0] {
		t.Errorf("unexpected pairs: %+v", got)
	}

	short := sheet.NewTable("routes.csv", []string{DepartureCityColumn, DestinationCityColumn}, [][]string{{"Lima", "Cusco"}})
	if _, err := ReadCityPairs(short); err == nil {
		t.Error("expected missing column error")
	}
	routes, err := ReadRoutes(short)
	if err != nil || len(routes) != 1 || routes[0].DestinationCity != "Cusco" {
		t.Errorf("ReadRoutes = %+v, %v", routes, err)
	}

	cities, err := ReadCities(sheet.NewTable("cities.csv", []string{"City"}, [][]string{{"Lima"}, {" "}, {"Quito"}}))
	if err != nil || len(cities) != 2 || cities[1] != "Quito" {
		t.Errorf("ReadCities = %v, %v", cities, err)
	}
}
