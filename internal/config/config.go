package config

import (
	"os"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for seo-bog.
type Config struct {
	Data       DataConfig       `toml:"data"`
	Paths      PathsConfig      `toml:"paths"`
	Columns    ColumnsConfig    `toml:"columns"`
	Completion CompletionConfig `toml:"completion"`
	Maps       MapsConfig       `toml:"maps"`
	Logo       LogoConfig       `toml:"logo"`
	Server     ServerConfig     `toml:"server"`
}

type DataConfig struct {
	Dir string `toml:"dir"`
}

// PathsConfig locates pipeline inputs and the output root.
type PathsConfig struct {
	SourceDir    string `toml:"source_dir"`
	OutputDir    string `toml:"output_dir"`
	CityPairs    string `toml:"city_pairs"`
	Cities       string `toml:"cities"`
	CSVDelimiter string `toml:"csv_delimiter"`
}

// ColumnsConfig names the identity and FAQ columns of content workbooks.
type ColumnsConfig struct {
	DepartureCode   string `toml:"departure_code"`
	DestinationCode string `toml:"destination_code"`
	DepartureName   string `toml:"departure_name"`
	DestinationName string `toml:"destination_name"`
	FAQ             string `toml:"faq"`
}

type CompletionConfig struct {
	BaseURL     string  `toml:"base_url"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
	RateLimit   float64 `toml:"rate_limit"`
}

type MapsConfig struct {
	BaseURL   string  `toml:"base_url"`
	Size      int     `toml:"size"`
	Color     string  `toml:"color"`
	Weight    int     `toml:"weight"`
	Language  string  `toml:"language"`
	RateLimit float64 `toml:"rate_limit"`
}

type LogoConfig struct {
	Path       string `toml:"path"`
	CropHeight int    `toml:"crop_height"`
	LeftOffset int    `toml:"left_offset"`
	LiftHeight int    `toml:"lift_height"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Delimiter returns the configured CSV delimiter, defaulting to ','.
func (p PathsConfig) Delimiter() rune {
	if r, _ := utf8.DecodeRuneInString(p.CSVDelimiter); r != utf8.RuneError {
		return r
	}
	return ','
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Data: DataConfig{Dir: "data"},
		Paths: PathsConfig{
			SourceDir:    "Source",
			OutputDir:    "Results",
			CityPairs:    "departures_destinations.csv",
			Cities:       "cities.csv",
			CSVDelimiter: ",",
		},
		Columns: ColumnsConfig{
			DepartureCode:   "Lead Departure City code",
			DestinationCode: "Lead Destination City code",
			DepartureName:   "Lead Departure City",
			DestinationName: "Lead Destination City",
			FAQ:             "F.A.Q.",
		},
		Completion: CompletionConfig{
			BaseURL:     "https://api.openai.com",
			Model:       "gpt-3.5-turbo",
			MaxTokens:   500,
			Temperature: 0.8,
			RateLimit:   1.0,
		},
		Maps: MapsConfig{
			BaseURL:   "https://maps.googleapis.com",
			Size:      1000,
			Color:     "0x0000ff",
			Weight:    5,
			Language:  "es",
			RateLimit: 5.0,
		},
		Logo: LogoConfig{
			Path:       "logo.png",
			CropHeight: 25,
			LeftOffset: 30,
			LiftHeight: 30,
		},
		Server: ServerConfig{Host: "localhost", Port: 8080},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
