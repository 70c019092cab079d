// internal/chat/engine_test.go
package chat

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airline-bot/internal/airports"
	commonerrors "airline-bot/internal/common/errors"
	"airline-bot/internal/common/logger"
	airportlookup "airline-bot/internal/handlers/airport-lookup"
	baggagepolicy "airline-bot/internal/handlers/baggage-policy"
	batteryrule "airline-bot/internal/handlers/battery-rule"
	liveflights "airline-bot/internal/handlers/live-flights"
	tsarule "airline-bot/internal/handlers/tsa-rule"
	"airline-bot/internal/intent"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestEngine(t *testing.T, openSkyURL string) *Engine {
	dataset, err := airports.LoadFile("../airports/testdata/airports_sample.dat")
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	flightsCfg := &liveflights.Config{
		BaseURL:     openSkyURL,
		Timeout:     2 * time.Second,
		MaxRetries:  0,
		DegPad:      1.5,
		MaxExamples: 5,
		CacheTTL:    time.Minute,
	}

	return NewEngine(
		intent.NewRouter(dataset),
		Handlers{
			Airports: airportlookup.NewHandler(dataset, log),
			Flights:  liveflights.NewHandler(flightsCfg, dataset, nil, log),
			Tsa:      tsarule.NewHandler(log),
			Battery:  batteryrule.NewHandler(log),
			Baggage:  baggagepolicy.NewHandler(log),
		},
		nil,
		log,
	)
}

// ==========================
// End-to-End Dispatch Tests
// ==========================

func TestEngine_Ask(t *testing.T) {
	e := createTestEngine(t, "http://unused")

	tests := []struct {
		name       string
		query      string
		wantIntent string
		wantInText string
		wantSource bool
	}{
		{
			name:       "airport code",
			query:      "DFW",
			wantIntent: "airport_lookup",
			wantInText: "DFW = Dallas Fort Worth International Airport",
		},
		{
			name:       "liquids question",
			query:      "what is the liquids rule",
			wantIntent: "tsa_rule",
			wantInText: "3-1-1",
			wantSource: true,
		},
		{
			name:       "power bank question",
			query:      "can I bring a 20000 mah power bank",
			wantIntent: "battery_rule",
			wantInText: "74.0 Wh",
			wantSource: true,
		},
		{
			name:       "baggage question",
			query:      "united baggage allowance",
			wantIntent: "baggage_policy",
			wantInText: "United Airlines baggage policy",
			wantSource: true,
		},
		{
			name:       "unclassified falls back to help",
			query:      "hello",
			wantIntent: "unknown",
			wantInText: "I can help with",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := e.Ask(context.Background(), tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantIntent, resp.Intent)
			assert.Contains(t, resp.Answer, tt.wantInText)
			if tt.wantSource {
				require.NotNil(t, resp.Source)
				assert.NotEmpty(t, *resp.Source)
			} else {
				assert.Nil(t, resp.Source)
			}
		})
	}
}

func TestEngine_Ask_LiveFlights(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"time": 1700000000, "states": [
			["abc", "JAL123  ", "Japan", null, null, null, null, null, false, null, null, null, null, 10000.0]
		]}`)
	}))
	defer server.Close()

	e := createTestEngine(t, server.URL)

	resp, err := e.Ask(context.Background(), "flights near Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "live_flights", resp.Intent)
	assert.Contains(t, resp.Answer, "Found 1 aircraft near")
	assert.Contains(t, resp.Answer, "JAL123 at 10000 m")
}

func TestEngine_Ask_LocationMissBecomesGuidance(t *testing.T) {
	e := createTestEngine(t, "http://unused")

	// Classified as live_flights but the place is not in the dataset; the
	// engine answers with guidance instead of failing.
	resp, err := e.Ask(context.Background(), "flights near Xanadu")
	require.NoError(t, err)
	assert.Equal(t, "live_flights", resp.Intent)
	assert.Contains(t, resp.Answer, "Location not recognized")
	assert.Contains(t, resp.Answer, "I can help with")
}

func TestEngine_Ask_UpstreamFailurePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	e := createTestEngine(t, server.URL)

	resp, err := e.Ask(context.Background(), "flights near Tokyo")
	assert.Nil(t, resp)

	stdErr, ok := commonerrors.AsStandard(err)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeUpstreamUnavailable, stdErr.Code)
}
