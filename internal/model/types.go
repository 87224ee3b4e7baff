package model

// SourceRow is one city-pair row of a content workbook.
type SourceRow struct {
	DepartureCode   string
	DestinationCode string
	DepartureName   string
	DestinationName string
	FAQ             string
	// Columns maps every header of the row to its cell text.
	Columns map[string]string
}

// Cell returns the text under header and whether the column exists.
func (r SourceRow) Cell(header string) (string, bool) {
	v, ok := r.Columns[header]
	return v, ok
}

// ImageBlock is a fixed placeholder kept for downstream schema compatibility.
type ImageBlock struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// PlaceholderImage is the image block emitted for every document.
var PlaceholderImage = ImageBlock{Title: "Placeholder Title", Text: "Placeholder Text"}

// FAQEntry is a single question/answer pair.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ArticleBlock is one article slot rendered for a row.
type ArticleBlock struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// ContentDocument is the JSON document produced for one row.
// Field order is part of the output format.
type ContentDocument struct {
	DepCity       string         `json:"depCity"`
	DestCity      string         `json:"destCity"`
	ImageBlock    ImageBlock     `json:"imageBlock"`
	FAQBlock      []FAQEntry     `json:"faqBlock"`
	ArticleBlocks []ArticleBlock `json:"articleBlocks"`
}

// DiagnosticKind classifies a skipped entry, row or file.
type DiagnosticKind string

const (
	DiagFAQEntry DiagnosticKind = "faq-entry"
	DiagIdentity DiagnosticKind = "identity"
	DiagFile     DiagnosticKind = "file"
)

// Diagnostic records something that was skipped without aborting the batch.
type Diagnostic struct {
	File    string         `json:"file"`
	Row     int            `json:"row"` // 1-based data row, 0 for file-level
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
}

// Conversion is the ledger entry for one converted source file.
type Conversion struct {
	SourceFile    string `json:"source_file"`
	OutputFile    string `json:"output_file"`
	Dialect       string `json:"dialect"`
	RowCount      int    `json:"row_count"`
	DocumentCount int    `json:"document_count"`
	ConvertedAt   string `json:"converted_at"`
}

// CityPair is a departure/destination route from the city-pair CSV.
type CityPair struct {
	DepartureCode      string `json:"departure_code"`
	DepartureCity      string `json:"departure_city"`
	DepartureCountry   string `json:"departure_country"`
	DestinationCode    string `json:"destination_code"`
	DestinationCity    string `json:"destination_city"`
	DestinationCountry string `json:"destination_country"`
}

// Coordinate is a geocoded latitude/longitude.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteMap is the ledger entry for one rendered route map.
type RouteMap struct {
	Route       string     `json:"route"`
	Departure   Coordinate `json:"departure"`
	Destination Coordinate `json:"destination"`
	ImagePath   string     `json:"image_path"`
	RenderedAt  string     `json:"rendered_at"`
}
