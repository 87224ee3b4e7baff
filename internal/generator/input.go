package generator

import (
	"strings"

	"github.com/filatov87/SEO-BOG/internal/model"
	"github.com/filatov87/SEO-BOG/internal/sheet"
)

// Columns of the city-pair input and of generated content workbooks.
const (
	DepartureCodeColumn      = "Lead Departure City code"
	DepartureCityColumn      = "Lead Departure City"
	DepartureCountryColumn   = "Lead Departure Country"
	DestinationCodeColumn    = "Lead Destination City code"
	DestinationCityColumn    = "Lead Destination City"
	DestinationCountryColumn = "Lead Destination Country"
	FAQColumn                = "F.A.Q."
	CityColumn               = "City"
)

// PairColumns lists the identity columns in workbook order.
var PairColumns = []string{
	DepartureCodeColumn, DepartureCityColumn, DepartureCountryColumn,
	DestinationCodeColumn, DestinationCityColumn, DestinationCountryColumn,
}

// ReadCityPairs loads full city pairs. All six identity columns are required.
func ReadCityPairs(tbl *sheet.Table) ([]model.CityPair, error) {
	if err := tbl.Require(PairColumns...); err != nil {
		return nil, err
	}
	var pairs []model.CityPair
	for _, r := range tbl.Rows {
		p := model.CityPair{
			DepartureCode:      r.Value(DepartureCodeColumn),
			DepartureCity:      r.Value(DepartureCityColumn),
			DepartureCountry:   r.Value(DepartureCountryColumn),
			DestinationCode:    r.Value(DestinationCodeColumn),
			DestinationCity:    r.Value(DestinationCityColumn),
			DestinationCountry: r.Value(DestinationCountryColumn),
		}
		if p.DepartureCity == "" || p.DestinationCity == "" {
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// ReadRoutes loads departure/destination city names only, as in the short
// route lists used for promotions.
func ReadRoutes(tbl *sheet.Table) ([]model.CityPair, error) {
	if err := tbl.Require(DepartureCityColumn, DestinationCityColumn); err != nil {
		return nil, err
	}
	var pairs []model.CityPair
	for _, r := range tbl.Rows {
		p := model.CityPair{
			DepartureCity:      r.Value(DepartureCityColumn),
			DepartureCountry:   r.Value(DepartureCountryColumn),
			DestinationCity:    r.Value(DestinationCityColumn),
			DestinationCountry: r.Value(DestinationCountryColumn),
		}
		if p.DepartureCity == "" || p.DestinationCity == "" {
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}

// ReadCities loads the City column, skipping blank cells.
func ReadCities(tbl *sheet.Table) ([]string, error) {
	if err := tbl.Require(CityColumn); err != nil {
		return nil, err
	}
	var cities []string
	for _, r := range tbl.Rows {
		if c := strings.TrimSpace(r.Value(CityColumn)); c != "" {
			cities = append(cities, c)
		}
	}
	return cities, nil
}
