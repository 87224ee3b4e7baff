package content

import (
	"regexp"
	"strconv"
	"strings"
)

// Title placeholders. Templates are resolved per row with the city names.
const (
	DeparturePlaceholder   = "{departure_city}"
	DestinationPlaceholder = "{destination_city}"
)

// Slot is a logical article position and the title template that names it.
type Slot struct {
	ID       string
	Template string

	pattern *regexp.Regexp
}

// Title resolves the slot template for a departure/destination pair.
func (s Slot) Title(departure, destination string) string {
	return strings.NewReplacer(
		DeparturePlaceholder, departure,
		DestinationPlaceholder, destination,
	).Replace(s.Template)
}

// Matches reports whether a column header names this slot, either as the raw
// template or with the placeholders filled in.
func (s Slot) Matches(header string) bool {
	if header == s.Template {
		return true
	}
	return s.pattern.MatchString(header)
}

// Dialect is an ordered set of slots for one language of content workbook.
type Dialect struct {
	Name  string
	Slots []Slot
}

func newDialect(name string, templates ...string) *Dialect {
	d := &Dialect{Name: name}
	for i, tmpl := range templates {
		d.Slots = append(d.Slots, Slot{
			ID:       SlotID(i + 1),
			Template: tmpl,
			pattern:  templatePattern(tmpl),
		})
	}
	return d
}

// SlotID returns the stable block id for the n-th slot (1-based).
func SlotID(n int) string {
	return "articleBlock" + strconv.Itoa(n)
}

// templatePattern turns a title template into an anchored regexp where each
// placeholder matches any non-empty text.
func templatePattern(tmpl string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(tmpl)
	for _, ph := range []string{DeparturePlaceholder, DestinationPlaceholder} {
		quoted = strings.ReplaceAll(quoted, regexp.QuoteMeta(ph), `.+?`)
	}
	return regexp.MustCompile(`^` + quoted + `$`)
}

// English is the slot enumeration of English content workbooks.
var English = newDialect("english",
	"Your ultimate guide for {departure_city} to {destination_city} travel",
	"What you need to know about {destination_city}?",
	"Unlocking the best {departure_city} to {destination_city} flight deals",
	"Best {departure_city} to {destination_city} itineraries",
	"Transportation to {destination_city} from Airport",
	"Where to stay in {destination_city}?",
	"Top sights and attractions in {destination_city}",
	"Words to know in {destination_city}",
	"What to remember before traveling to {destination_city}",
	"Fun Facts about {destination_city}",
	"Get ready for your trip to {destination_city}",
)

// Spanish is the slot enumeration of Spanish content workbooks.
var Spanish = newDialect("spanish",
	"Guía definitiva para viajar de {departure_city} a {destination_city}",
	"¿Qué debo saber de {destination_city}?",
	"Vuelos baratos desde {departure_city} a {destination_city}",
	"Cómo llegar desde {departure_city} a {destination_city} en avion",
	"Traslados a la ciudad y alrededores desde el aeropuerto a {destination_city}",
	"Dónde alojarse en {destination_city}?",
	"Los mejores lugares turísticos de {destination_city} que debes conocer",
	"Palabras para saber en {destination_city}",
	"Cosas que debes saber antes de viajar a {destination_city}",
	"Datos curiosos sobre {destination_city}",
	"Prepárate para tu viaje a {destination_city}",
)

// Dialects lists the known dialects. The first entry is the fallback.
var Dialects = []*Dialect{English, Spanish}

// DialectByName looks up a dialect by its name.
func DialectByName(name string) (*Dialect, bool) {
	for _, d := range Dialects {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// DetectDialect picks the dialect with the most slot titles among headers.
// Ties and tables with no slot columns resolve to English.
func DetectDialect(headers []string) *Dialect {
	best, bestCount := Dialects[0], 0
	for _, d := range Dialects {
		n := d.matchCount(headers)
		if n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func (d *Dialect) matchCount(headers []string) int {
	n := 0
	for _, h := range headers {
		for _, s := range d.Slots {
			if s.Matches(h) {
				n++
				break
			}
		}
	}
	return n
}
