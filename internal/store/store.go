package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/filatov87/SEO-BOG/internal/model"
)

// Store is the run ledger and completion cache, persisted in DuckDB.
type Store struct {
	DB      *sql.DB
	DataDir string
}

// New opens (or creates) a DuckDB database in the given data directory.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "seo-bog.duckdb")
	db, err := sql.Open("duckdb", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening duckdb: %w", err)
	}

	s := &Store{DB: db, DataDir: dataDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

func (s *Store) migrate() error {
	if _, err := s.DB.Exec("CREATE SEQUENCE IF NOT EXISTS diagnostics_seq"); err != nil {
		return fmt.Errorf("creating sequence: %w", err)
	}

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			source_file TEXT PRIMARY KEY,
			output_file TEXT NOT NULL,
			dialect TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			document_count INTEGER NOT NULL,
			converted_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			source_file TEXT NOT NULL,
			pos INTEGER NOT NULL,
			dep_city TEXT NOT NULL,
			dest_city TEXT NOT NULL,
			body TEXT NOT NULL,
			PRIMARY KEY (source_file, pos)
		)`,
		`CREATE TABLE IF NOT EXISTS diagnostics (
			id INTEGER PRIMARY KEY DEFAULT nextval('diagnostics_seq'),
			source_file TEXT NOT NULL,
			row_idx INTEGER NOT NULL,
			kind TEXT NOT NULL,
			message TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS completions (
			key TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			prompt TEXT NOT NULL,
			response TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS maps (
			route TEXT PRIMARY KEY,
			dep_lat DOUBLE NOT NULL,
			dep_lng DOUBLE NOT NULL,
			dest_lat DOUBLE NOT NULL,
			dest_lng DOUBLE NOT NULL,
			image_path TEXT NOT NULL,
			rendered_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("executing migration %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// RecordConversion replaces everything recorded for conv.SourceFile with the
// given documents and diagnostics.
func (s *Store) RecordConversion(conv model.Conversion, docs []model.ContentDocument, diags []model.Diagnostic) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := clearFile(tx, conv.SourceFile); err != nil {
		return err
	}

	if _, err := tx.Exec(`INSERT INTO conversions (source_file, output_file, dialect, row_count, document_count, converted_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		conv.SourceFile, conv.OutputFile, conv.Dialect, conv.RowCount, conv.DocumentCount, conv.ConvertedAt); err != nil {
		return fmt.Errorf("inserting conversion: %w", err)
	}

	for i, doc := range docs {
		body, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encoding document %d: %w", i, err)
		}
		if _, err := tx.Exec("INSERT INTO documents (source_file, pos, dep_city, dest_city, body) VALUES (?, ?, ?, ?, ?)",
			conv.SourceFile, i, doc.DepCity, doc.DestCity, string(body)); err != nil {
			return fmt.Errorf("inserting document %d: %w", i, err)
		}
	}

	if err := insertDiagnostics(tx, conv.SourceFile, diags); err != nil {
		return err
	}

	if _, err := tx.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('last_converted_at', ?)", conv.ConvertedAt); err != nil {
		return err
	}

	return tx.Commit()
}

// RecordFailure drops any earlier conversion of file and stores the
// diagnostics explaining why it could not be converted.
func (s *Store) RecordFailure(file string, diags []model.Diagnostic) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := clearFile(tx, file); err != nil {
		return err
	}
	if err := insertDiagnostics(tx, file, diags); err != nil {
		return err
	}
	return tx.Commit()
}

func clearFile(tx *sql.Tx, file string) error {
	for _, tbl := range []string{"conversions", "documents", "diagnostics"} {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE source_file = ?", tbl), file); err != nil {
			return fmt.Errorf("clearing %s: %w", tbl, err)
		}
	}
	return nil
}

func insertDiagnostics(tx *sql.Tx, file string, diags []model.Diagnostic) error {
	for _, d := range diags {
		if _, err := tx.Exec("INSERT INTO diagnostics (source_file, row_idx, kind, message) VALUES (?, ?, ?, ?)",
			file, d.Row, string(d.Kind), d.Message); err != nil {
			return fmt.Errorf("inserting diagnostic: %w", err)
		}
	}
	return nil
}

// Conversions lists every recorded conversion ordered by source file.
func (s *Store) Conversions() ([]model.Conversion, error) {
	rows, err := s.DB.Query(`SELECT source_file, output_file, dialect, row_count, document_count, converted_at
		FROM conversions ORDER BY source_file`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	convs := []model.Conversion{}
	for rows.Next() {
		var c model.Conversion
		if err := rows.Scan(&c.SourceFile, &c.OutputFile, &c.Dialect, &c.RowCount, &c.DocumentCount, &c.ConvertedAt); err != nil {
			return nil, err
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}

// Documents loads the converted documents of one source file in output order.
func (s *Store) Documents(file string) ([]model.ContentDocument, error) {
	rows, err := s.DB.Query("SELECT body FROM documents WHERE source_file = ? ORDER BY pos", file)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []model.ContentDocument{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var doc model.ContentDocument
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("decoding document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Diagnostics loads diagnostics for one file, or for all files if file is "".
func (s *Store) Diagnostics(file string) ([]model.Diagnostic, error) {
	query := "SELECT source_file, row_idx, kind, message FROM diagnostics"
	var args []any
	if file != "" {
		query += " WHERE source_file = ?"
		args = append(args, file)
	}
	query += " ORDER BY source_file, id"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	diags := []model.Diagnostic{}
	for rows.Next() {
		var d model.Diagnostic
		var kind string
		if err := rows.Scan(&d.File, &d.Row, &kind, &d.Message); err != nil {
			return nil, err
		}
		d.Kind = model.DiagnosticKind(kind)
		diags = append(diags, d)
	}
	return diags, rows.Err()
}

// CachedCompletion returns a previously stored completion for key.
func (s *Store) CachedCompletion(key string) (string, bool) {
	var response string
	if err := s.DB.QueryRow("SELECT response FROM completions WHERE key = ?", key).Scan(&response); err != nil {
		return "", false
	}
	return response, true
}

// WriteCompletion stores a successful completion under key.
func (s *Store) WriteCompletion(key, modelName, prompt, response string) error {
	_, err := s.DB.Exec("INSERT OR REPLACE INTO completions (key, model, prompt, response, created_at) VALUES (?, ?, ?, ?, ?)",
		key, modelName, prompt, response, time.Now().UTC().Format(time.RFC3339))
	return err
}

// RecordMap inserts or replaces a rendered route map.
func (s *Store) RecordMap(m model.RouteMap) error {
	_, err := s.DB.Exec(`INSERT OR REPLACE INTO maps (route, dep_lat, dep_lng, dest_lat, dest_lng, image_path, rendered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Route, m.Departure.Lat, m.Departure.Lng, m.Destination.Lat, m.Destination.Lng, m.ImagePath, m.RenderedAt)
	return err
}

// MapExists checks if a route map has already been rendered.
func (s *Store) MapExists(route string) bool {
	var n int
	s.DB.QueryRow("SELECT 1 FROM maps WHERE route = ?", route).Scan(&n)
	return n == 1
}

// Maps loads all rendered route maps.
func (s *Store) Maps() ([]model.RouteMap, error) {
	rows, err := s.DB.Query("SELECT route, dep_lat, dep_lng, dest_lat, dest_lng, image_path, rendered_at FROM maps ORDER BY route")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	maps := []model.RouteMap{}
	for rows.Next() {
		var m model.RouteMap
		if err := rows.Scan(&m.Route, &m.Departure.Lat, &m.Departure.Lng, &m.Destination.Lat, &m.Destination.Lng, &m.ImagePath, &m.RenderedAt); err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return maps, rows.Err()
}

// LastConvertedAt returns when the most recent conversion was recorded.
func (s *Store) LastConvertedAt() string {
	var v sql.NullString
	s.DB.QueryRow("SELECT value FROM meta WHERE key = 'last_converted_at'").Scan(&v)
	return v.String
}

// ConversionCount returns the number of converted source files.
func (s *Store) ConversionCount() int {
	return s.count("conversions")
}

// DocumentCount returns the number of converted documents.
func (s *Store) DocumentCount() int {
	return s.count("documents")
}

// CompletionCount returns the number of cached completions.
func (s *Store) CompletionCount() int {
	return s.count("completions")
}

// MapCount returns the number of rendered route maps.
func (s *Store) MapCount() int {
	return s.count("maps")
}

func (s *Store) count(table string) int {
	var n int
	s.DB.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n)
	return n
}

// DiagnosticCountByKind returns diagnostic counts per kind.
func (s *Store) DiagnosticCountByKind() map[string]int {
	m := make(map[string]int)
	rows, err := s.DB.Query("SELECT kind, COUNT(*) FROM diagnostics GROUP BY kind ORDER BY kind")
	if err != nil {
		return m
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var cnt int
		rows.Scan(&kind, &cnt)
		m[kind] = cnt
	}
	return m
}
