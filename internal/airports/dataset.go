// Package airports loads the OpenFlights airports dataset and answers
// code, city and name lookups against it. The dataset is immutable after
// load; every method is safe for concurrent use.
package airports

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"

	commonerrors "airline-bot/internal/common/errors"
	chttp "airline-bot/internal/common/http"
	"airline-bot/internal/models"
)

// OpenFlights airports.dat column layout.
const (
	colName = 1 + iota
	colCity
	colCountry
	colIATA
	colICAO
	colLat
	colLon
)

const minColumns = 9

var iataTokenRe = regexp.MustCompile(`\b[A-Z]{3}\b`)
var locationCueRe = regexp.MustCompile(`(?i)\b(?:near|nearby|around|over|in)\s+([a-zA-Z .'-]+)`)

type indexedAirport struct {
	models.Airport
	cityL string
	nameL string
}

// Dataset is the in-process airport gazetteer.
type Dataset struct {
	airports []indexedAirport
	byIATA   map[string]int
}

// LoadFile reads airports.dat from disk.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, commonerrors.NewDatasetLoadFailedError(err)
	}
	defer f.Close()
	return load(f)
}

// Download fetches airports.dat from the configured URL into memory.
// Nothing is written to disk.
func Download(ctx context.Context, client *chttp.Client, url string) (*Dataset, error) {
	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, commonerrors.NewDatasetLoadFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, commonerrors.NewDatasetLoadFailedError(fmt.Errorf("dataset fetch returned %d", resp.StatusCode))
	}
	return load(resp.Body)
}

func load(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	ds := &Dataset{byIATA: make(map[string]int)}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, commonerrors.NewDatasetLoadFailedError(err)
		}
		if len(record) < minColumns {
			continue
		}

		lat, latErr := strconv.ParseFloat(record[colLat], 64)
		lon, lonErr := strconv.ParseFloat(record[colLon], 64)
		if latErr != nil || lonErr != nil {
			continue
		}

		ap := models.Airport{
			Name:    field(record, colName),
			City:    field(record, colCity),
			Country: field(record, colCountry),
			IATA:    field(record, colIATA),
			ICAO:    field(record, colICAO),
			Lat:     lat,
			Lon:     lon,
		}

		ds.airports = append(ds.airports, indexedAirport{
			Airport: ap,
			cityL:   strings.ToLower(ap.City),
			nameL:   strings.ToLower(ap.Name),
		})

		// First row wins for duplicate codes, matching lookup order.
		if ap.IATA != "" {
			if _, exists := ds.byIATA[ap.IATA]; !exists {
				ds.byIATA[ap.IATA] = len(ds.airports) - 1
			}
		}
	}

	if len(ds.airports) == 0 {
		return nil, commonerrors.NewDatasetLoadFailedError(fmt.Errorf("dataset contained no usable rows"))
	}

	return ds, nil
}

// field normalizes OpenFlights null markers.
func field(record []string, idx int) string {
	v := strings.TrimSpace(record[idx])
	if v == `\N` || v == "N/A" {
		return ""
	}
	return v
}

// Len returns the number of loaded airports.
func (d *Dataset) Len() int {
	return len(d.airports)
}

// HasIATA reports whether code is a known airport code. Codes are stored
// uppercase.
func (d *Dataset) HasIATA(code string) bool {
	_, ok := d.byIATA[strings.ToUpper(code)]
	return ok
}

// ByIATA returns the airport for an exact code match.
func (d *Dataset) ByIATA(code string) (models.Airport, bool) {
	idx, ok := d.byIATA[strings.ToUpper(code)]
	if !ok {
		return models.Airport{}, false
	}
	return d.airports[idx].Airport, true
}

// SearchCity returns the first airport whose city contains q.
func (d *Dataset) SearchCity(q string) (models.Airport, bool) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return models.Airport{}, false
	}
	for i := range d.airports {
		if d.airports[i].cityL != "" && strings.Contains(d.airports[i].cityL, q) {
			return d.airports[i].Airport, true
		}
	}
	return models.Airport{}, false
}

// SearchName returns the first airport whose name contains q.
func (d *Dataset) SearchName(q string) (models.Airport, bool) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return models.Airport{}, false
	}
	for i := range d.airports {
		if d.airports[i].nameL != "" && strings.Contains(d.airports[i].nameL, q) {
			return d.airports[i].Airport, true
		}
	}
	return models.Airport{}, false
}

// MatchesPlace reports whether q names a known city or airport.
func (d *Dataset) MatchesPlace(q string) bool {
	if _, ok := d.SearchCity(q); ok {
		return true
	}
	_, ok := d.SearchName(q)
	return ok
}

// ResolveLocation extracts a location from free text and returns its
// coordinates with a display label:
//  1. recognized IATA token (uppercase whole word, or the whole text when it
//     is a lone 3-letter token) -> exact airport position
//  2. city substring after a cue word like "near"/"over", averaged over hits
//  3. airport name substring, averaged over hits
func (d *Dataset) ResolveLocation(text string) (lat, lon float64, label string, ok bool) {
	trimmed := strings.TrimSpace(text)

	hits := iataTokenRe.FindAllString(trimmed, -1)
	if len(hits) == 0 {
		if up := strings.ToUpper(trimmed); iataTokenRe.MatchString(up) && len(up) == 3 {
			hits = []string{up}
		}
	}
	for _, token := range hits {
		if ap, found := d.ByIATA(token); found {
			return ap.Lat, ap.Lon, fmt.Sprintf("%s - %s (%s)", ap.IATA, ap.Name, ap.City), true
		}
	}

	candidate := strings.ToLower(trimmed)
	if m := locationCueRe.FindStringSubmatch(text); m != nil {
		candidate = strings.ToLower(strings.TrimSpace(m[1]))
	}

	if lat, lon, label, ok = d.averageByCity(candidate); ok {
		return lat, lon, label, true
	}
	return d.averageByName(candidate)
}

func (d *Dataset) averageByCity(q string) (float64, float64, string, bool) {
	var sumLat, sumLon float64
	var first *indexedAirport
	count := 0

	for i := range d.airports {
		if q == "" || d.airports[i].cityL == "" || !strings.Contains(d.airports[i].cityL, q) {
			continue
		}
		if first == nil {
			first = &d.airports[i]
		}
		sumLat += d.airports[i].Lat
		sumLon += d.airports[i].Lon
		count++
	}

	if count == 0 {
		return 0, 0, "", false
	}
	label := fmt.Sprintf("%s (%s)", first.City, first.Country)
	return sumLat / float64(count), sumLon / float64(count), label, true
}

func (d *Dataset) averageByName(q string) (float64, float64, string, bool) {
	var sumLat, sumLon float64
	var first *indexedAirport
	count := 0

	for i := range d.airports {
		if q == "" || d.airports[i].nameL == "" || !strings.Contains(d.airports[i].nameL, q) {
			continue
		}
		if first == nil {
			first = &d.airports[i]
		}
		sumLat += d.airports[i].Lat
		sumLon += d.airports[i].Lon
		count++
	}

	if count == 0 {
		return 0, 0, "", false
	}
	label := fmt.Sprintf("%s (%s)", first.Name, first.City)
	return sumLat / float64(count), sumLon / float64(count), label, true
}
