// Package liveflights answers "what is flying near X" questions through
// the OpenSky Network states API. The named location is resolved against
// the airports dataset, widened into a bounding box, and queried live.
// When OpenSky is down a recent cached answer for the same box is served
// in degraded mode.
package liveflights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	commonerrors "airline-bot/internal/common/errors"
	"airline-bot/internal/common/logger"
	"airline-bot/internal/common/metrics"
	"airline-bot/internal/models"
)

const (
	IntentType = "live_flights"

	providerName = "opensky"

	// Longitude padding grows toward the poles but is clamped so the box
	// never degenerates.
	minCosLat = 0.2
)

var (
	ErrOpenSkyTimeout       = errors.New("OPENSKY_TIMEOUT")
	ErrOpenSkyRequestFailed = errors.New("OPENSKY_REQUEST_FAILED")
)

// Resolver turns free text into coordinates with a display label.
type Resolver interface {
	ResolveLocation(text string) (lat, lon float64, label string, ok bool)
}

// Cache is the fallback answer store. A nil cache disables fallback.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type Handler struct {
	config   *Config
	resolver Resolver
	cache    Cache
	client   *http.Client
	logger   logger.Logger
}

func NewHandler(config *Config, resolver Resolver, cache Cache, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		resolver: resolver,
		cache:    cache,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger: log.WithFields(map[string]interface{}{
			"intent": IntentType,
		}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	location := strings.TrimSpace(input.Location)
	if location == "" {
		return nil, commonerrors.NewValidationError("location must not be empty")
	}

	lat, lon, label, ok := h.resolver.ResolveLocation(location)
	if !ok {
		return nil, commonerrors.NewNotFoundError("Location", fmt.Sprintf("could not place %q on the map", location))
	}

	lamin, lomin, lamax, lomax := boundingBox(lat, lon, h.config.DegPad)
	cacheKey := fmt.Sprintf("opensky:states:%.4f:%.4f:%.4f:%.4f", lamin, lomin, lamax, lomax)

	states, err := h.fetchStates(ctx, lamin, lomin, lamax, lomax)
	if err != nil {
		if out, hit := h.fromCache(ctx, cacheKey); hit {
			metrics.FallbackCacheHits.WithLabelValues(providerName).Inc()
			h.logger.Warn("serving cached flights answer", map[string]interface{}{
				"label": label,
				"error": err.Error(),
			})
			return out, nil
		}
		return nil, commonerrors.NewUpstreamUnavailableError(providerName, err)
	}

	out := h.buildOutput(label, states)
	h.storeCache(ctx, cacheKey, out)
	return out, nil
}

func (h *Handler) fetchStates(ctx context.Context, lamin, lomin, lamax, lomax float64) ([]models.Aircraft, error) {
	url := fmt.Sprintf("%s/states/all?lamin=%.4f&lomin=%.4f&lamax=%.4f&lomax=%.4f",
		h.config.BaseURL, lamin, lomin, lamax, lomax)

	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())
	}()

	var body []byte
	var lastErr error

	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				metrics.UpstreamRequestsTotal.WithLabelValues(providerName, "error").Inc()
				return nil, ErrOpenSkyTimeout
			}
		}

		body, lastErr = h.doRequest(ctx, url)
		if ctx.Err() != nil ||
			errors.Is(lastErr, context.DeadlineExceeded) ||
			errors.Is(lastErr, context.Canceled) {
			metrics.UpstreamRequestsTotal.WithLabelValues(providerName, "error").Inc()
			return nil, ErrOpenSkyTimeout
		}
		if lastErr == nil {
			break
		}
	}

	if lastErr != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(providerName, "error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrOpenSkyRequestFailed, lastErr)
	}

	var envelope stateResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(providerName, "error").Inc()
		return nil, fmt.Errorf("%w: decode error: %v", ErrOpenSkyRequestFailed, err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(providerName, "success").Inc()
	return reduceStates(envelope.States), nil
}

func (h *Handler) doRequest(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (h *Handler) buildOutput(label string, aircraft []models.Aircraft) *Output {
	if len(aircraft) == 0 {
		return &Output{
			Answer: models.Answer{
				Text: fmt.Sprintf("No live aircraft found near %s right now.", label),
			},
			Label:    label,
			Aircraft: []models.Aircraft{},
		}
	}

	max := h.config.MaxExamples
	if max <= 0 || max > len(aircraft) {
		max = len(aircraft)
	}
	examples := make([]string, 0, max)
	for _, ac := range aircraft[:max] {
		examples = append(examples, formatExample(ac))
	}

	return &Output{
		Answer: models.Answer{
			Text: fmt.Sprintf("Found %d aircraft near %s. Examples: %s.",
				len(aircraft), label, strings.Join(examples, ", ")),
		},
		Label:    label,
		Count:    len(aircraft),
		Aircraft: aircraft,
	}
}

func formatExample(ac models.Aircraft) string {
	callsign := ac.Callsign
	if callsign == "" {
		callsign = "(no callsign)"
	}
	if ac.AltitudeM < 0 {
		return fmt.Sprintf("%s (altitude unknown)", callsign)
	}
	return fmt.Sprintf("%s at %.0f m", callsign, ac.AltitudeM)
}

// reduceStates keeps the few state vector fields we present. Vectors
// shorter than the geometric altitude slot are dropped.
func reduceStates(raw [][]interface{}) []models.Aircraft {
	out := make([]models.Aircraft, 0, len(raw))
	for _, s := range raw {
		if len(s) < 14 {
			continue
		}
		ac := models.Aircraft{AltitudeM: -1}
		if cs, ok := s[1].(string); ok {
			ac.Callsign = strings.TrimSpace(cs)
		}
		if oc, ok := s[2].(string); ok {
			ac.OriginCountry = oc
		}
		if alt, ok := s[13].(float64); ok {
			ac.AltitudeM = alt
		}
		out = append(out, ac)
	}
	return out
}

func (h *Handler) fromCache(ctx context.Context, key string) (*Output, bool) {
	if h.cache == nil {
		return nil, false
	}
	raw, err := h.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return nil, false
	}

	var out Output
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, false
	}
	out.Degraded = true
	out.Answer.Text += " (cached; live data temporarily unavailable)"
	return &out, true
}

func (h *Handler) storeCache(ctx context.Context, key string, out *Output) {
	if h.cache == nil {
		return
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, key, string(raw), h.config.CacheTTL); err != nil {
		h.logger.Warn("fallback cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// boundingBox widens a point into the search box sent to OpenSky. The
// latitude padding is fixed; the longitude padding compensates for
// meridian convergence. All edges are rounded to 4 decimals.
func boundingBox(lat, lon, degPad float64) (lamin, lomin, lamax, lomax float64) {
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < minCosLat {
		cosLat = minCosLat
	}
	lonPad := degPad / cosLat

	return round4(lat - degPad), round4(lon - lonPad), round4(lat + degPad), round4(lon + lonPad)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
