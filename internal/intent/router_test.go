package intent

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

// fakeGazetteer recognizes a fixed set of codes and cities.
type fakeGazetteer struct {
	codes  map[string]bool
	places []string
}

func (f *fakeGazetteer) HasIATA(code string) bool {
	return f.codes[strings.ToUpper(code)]
}

func (f *fakeGazetteer) MatchesPlace(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	for _, p := range f.places {
		if strings.Contains(p, q) {
			return true
		}
	}
	return false
}

func newTestRouter() *Router {
	return NewRouter(&fakeGazetteer{
		codes:  map[string]bool{"DFW": true, "LAX": true, "JFK": true, "HND": true},
		places: []string{"tokyo", "dallas-fort worth", "los angeles", "new york"},
	})
}

// ==========================
// Core Classification Tests
// ==========================

func TestRouter_Classify(t *testing.T) {
	rt := newTestRouter()

	tests := []struct {
		name       string
		query      string
		wantIntent Intent
		wantParams map[string]string
	}{
		{
			name:       "bare airport code",
			query:      "DFW",
			wantIntent: AirportLookup,
			wantParams: map[string]string{ParamCodeOrCity: "DFW"},
		},
		{
			name:       "lowercase lone code",
			query:      "dfw",
			wantIntent: AirportLookup,
			wantParams: map[string]string{ParamCodeOrCity: "DFW"},
		},
		{
			name:       "code embedded in sentence",
			query:      "where is LAX located",
			wantIntent: AirportLookup,
			wantParams: map[string]string{ParamCodeOrCity: "LAX"},
		},
		{
			name:       "city name only",
			query:      "tokyo",
			wantIntent: AirportLookup,
			wantParams: map[string]string{ParamCodeOrCity: "tokyo"},
		},
		{
			name:       "live flights near city",
			query:      "flights near Tokyo",
			wantIntent: LiveFlights,
			wantParams: map[string]string{ParamLocation: "Tokyo"},
		},
		{
			name:       "live flights with question mark",
			query:      "Any flights near New York?",
			wantIntent: LiveFlights,
			wantParams: map[string]string{ParamLocation: "New York"},
		},
		{
			name:       "liquids rule",
			query:      "liquids rule",
			wantIntent: TsaRule,
		},
		{
			name:       "tsa 311",
			query:      "what is the 3-1-1 policy",
			wantIntent: TsaRule,
		},
		{
			name:       "battery with mah capacity",
			query:      "20000 mAh battery",
			wantIntent: BatteryRule,
			wantParams: map[string]string{ParamCapacity: "20000", ParamUnit: "mAh"},
		},
		{
			name:       "power bank with voltage",
			query:      "can I carry 20000 mah power bank at 5v?",
			wantIntent: BatteryRule,
			wantParams: map[string]string{ParamCapacity: "20000", ParamUnit: "mAh", ParamVoltage: "5"},
		},
		{
			name:       "wh direct",
			query:      "is a 99.9wh battery ok",
			wantIntent: BatteryRule,
			wantParams: map[string]string{ParamCapacity: "99.9", ParamUnit: "Wh"},
		},
		{
			name:       "capacity containing tsa digits stays battery",
			query:      "3110 mAh power bank ok?",
			wantIntent: BatteryRule,
			wantParams: map[string]string{ParamCapacity: "3110", ParamUnit: "mAh"},
		},
		{
			name:       "bare 311 token is tsa",
			query:      "what is 311",
			wantIntent: TsaRule,
		},
		{
			name:       "100ml token is tsa",
			query:      "are 100ml bottles allowed",
			wantIntent: TsaRule,
		},
		{
			name:       "battery keyword without capacity",
			query:      "lithium battery rules",
			wantIntent: BatteryRule,
			wantParams: map[string]string{},
		},
		{
			name:       "baggage with airline",
			query:      "United baggage allowance",
			wantIntent: BaggagePolicy,
			wantParams: map[string]string{ParamAirline: "United Airlines"},
		},
		{
			name:       "baggage with code key",
			query:      "AA baggage allowance",
			wantIntent: BaggagePolicy,
			wantParams: map[string]string{ParamAirline: "American Airlines"},
		},
		{
			name:       "airline name without baggage keyword",
			query:      "lufthansa",
			wantIntent: BaggagePolicy,
			wantParams: map[string]string{ParamAirline: "Lufthansa"},
		},
		{
			name:       "baggage keyword without airline",
			query:      "checked bag rules",
			wantIntent: BaggagePolicy,
			wantParams: map[string]string{},
		},
		{
			name:       "flight keyword falls through to baggage",
			query:      "baggage on my flight with delta",
			wantIntent: BaggagePolicy,
			wantParams: map[string]string{ParamAirline: "Delta Air Lines"},
		},
		{
			name:       "unrecognized input",
			query:      "hello",
			wantIntent: Unknown,
			wantParams: map[string]string{},
		},
		{
			name:       "empty input",
			query:      "",
			wantIntent: Unknown,
			wantParams: map[string]string{},
		},
		{
			name:       "whitespace only",
			query:      "   \t  ",
			wantIntent: Unknown,
			wantParams: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rt.Classify(tt.query)
			assert.Equal(t, tt.wantIntent, got.Intent)
			if tt.wantParams != nil {
				assert.Equal(t, tt.wantParams, got.Params)
			}
			assert.NotNil(t, got.Params, "params must never be nil")
		})
	}
}

func TestRouter_Classify_CodeWinsOverFlightKeywords(t *testing.T) {
	rt := newTestRouter()

	// A recognized code always classifies as an airport question, even
	// when flight keywords surround it.
	got := rt.Classify("planes over LAX")
	assert.Equal(t, AirportLookup, got.Intent)
	assert.Equal(t, "LAX", got.Param(ParamCodeOrCity))
}

func TestRouter_Classify_UnknownCodeIsNotAirport(t *testing.T) {
	rt := newTestRouter()

	// ZZZ is not in the gazetteer and nothing else matches.
	got := rt.Classify("ZZZ")
	assert.Equal(t, Unknown, got.Intent)
}

func TestRouter_Classify_Deterministic(t *testing.T) {
	rt := newTestRouter()

	first := rt.Classify("20000 mAh battery")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, rt.Classify("20000 mAh battery"))
	}
}

func TestRouter_Classify_LowercaseEnglishWordNotCode(t *testing.T) {
	rt := NewRouter(&fakeGazetteer{
		// "CAN" is a real airport code (Guangzhou); the word "can" inside
		// a sentence must not classify as an airport lookup.
		codes: map[string]bool{"CAN": true},
	})

	got := rt.Classify("can i bring a lithium battery")
	assert.Equal(t, BatteryRule, got.Intent)
}
