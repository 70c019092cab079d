// Package chat is the conversation core: it classifies a query, dispatches
// it to the matching lookup handler and shapes the reply. Lookup misses are
// answered with guidance text, not errors; only transport-level failures
// propagate to the caller.
package chat

import (
	"context"
	"fmt"
	"time"

	commonerrors "airline-bot/internal/common/errors"
	"airline-bot/internal/common/logger"
	"airline-bot/internal/common/metrics"
	"airline-bot/internal/common/observability"
	airportlookup "airline-bot/internal/handlers/airport-lookup"
	baggagepolicy "airline-bot/internal/handlers/baggage-policy"
	batteryrule "airline-bot/internal/handlers/battery-rule"
	liveflights "airline-bot/internal/handlers/live-flights"
	tsarule "airline-bot/internal/handlers/tsa-rule"
	"airline-bot/internal/intent"
	"airline-bot/internal/models"
)

const helpText = "I can help with airport codes (try 'DFW'), live flights near a place ('flights near Tokyo'), the TSA liquids rule, lithium battery limits ('20000 mAh power bank'), and airline baggage policies ('United baggage'). What would you like to know?"

// Handlers bundles the per-intent lookup handlers the engine dispatches to.
type Handlers struct {
	Airports *airportlookup.Handler
	Flights  *liveflights.Handler
	Tsa      *tsarule.Handler
	Battery  *batteryrule.Handler
	Baggage  *baggagepolicy.Handler
}

type Engine struct {
	router   *intent.Router
	handlers Handlers
	obs      *observability.Observability
	logger   logger.Logger
}

// NewEngine wires the router and handlers. obs may be nil.
func NewEngine(router *intent.Router, handlers Handlers, obs *observability.Observability, log logger.Logger) *Engine {
	return &Engine{
		router:   router,
		handlers: handlers,
		obs:      obs,
		logger:   log,
	}
}

// Router exposes the underlying rule router, mostly for the registry
// endpoint and the CLI classify command.
func (e *Engine) Router() *intent.Router {
	return e.router
}

// Ask answers one traveler query. The returned error is nil for every
// classified outcome including lookup misses; it is non-nil only for
// validation failures and upstream outages.
func (e *Engine) Ask(ctx context.Context, query string) (*models.ChatResponse, error) {
	start := time.Now()
	parsed := e.router.Classify(query)

	resp, err := e.dispatch(ctx, parsed)

	status := "success"
	if err != nil {
		status = "error"
	}
	elapsed := time.Since(start)
	metrics.ChatRequestsTotal.WithLabelValues(string(parsed.Intent), status).Inc()
	metrics.ChatRequestDuration.WithLabelValues(string(parsed.Intent)).Observe(elapsed.Seconds())
	if e.obs != nil {
		e.obs.RecordQueryProcessed(ctx, string(parsed.Intent), status)
		e.obs.RecordQueryDuration(ctx, elapsed, string(parsed.Intent))
	}

	if err != nil {
		e.logger.Error("query failed", map[string]interface{}{
			"intent": string(parsed.Intent),
			"error":  err.Error(),
		})
		return nil, err
	}

	e.logger.Info("query answered", map[string]interface{}{
		"intent":     string(parsed.Intent),
		"durationMs": elapsed.Milliseconds(),
	})
	return resp, nil
}

func (e *Engine) dispatch(ctx context.Context, parsed intent.ParsedRequest) (*models.ChatResponse, error) {
	var answer models.Answer
	var err error

	switch parsed.Intent {
	case intent.AirportLookup:
		var out *airportlookup.Output
		out, err = e.handlers.Airports.Execute(ctx, &airportlookup.Input{
			CodeOrCity: parsed.Param(intent.ParamCodeOrCity),
		})
		if out != nil {
			answer = out.Answer
		}

	case intent.LiveFlights:
		var out *liveflights.Output
		out, err = e.handlers.Flights.Execute(ctx, &liveflights.Input{
			Location: parsed.Param(intent.ParamLocation),
		})
		if out != nil {
			answer = out.Answer
		}

	case intent.TsaRule:
		var out *tsarule.Output
		out, err = e.handlers.Tsa.Execute(ctx, &tsarule.Input{})
		if out != nil {
			answer = out.Answer
		}

	case intent.BatteryRule:
		var out *batteryrule.Output
		out, err = e.handlers.Battery.Execute(ctx, &batteryrule.Input{
			Capacity: parsed.Param(intent.ParamCapacity),
			Unit:     parsed.Param(intent.ParamUnit),
			Voltage:  parsed.Param(intent.ParamVoltage),
		})
		if out != nil {
			answer = out.Answer
		}

	case intent.BaggagePolicy:
		var out *baggagepolicy.Output
		out, err = e.handlers.Baggage.Execute(ctx, &baggagepolicy.Input{
			Airline: parsed.Param(intent.ParamAirline),
		})
		if out != nil {
			answer = out.Answer
		}

	default:
		answer = models.Answer{Text: helpText}
	}

	if err != nil {
		if stdErr, ok := commonerrors.AsStandard(err); ok && stdErr.Code == commonerrors.ErrCodeNotFound {
			// A miss is a conversational outcome, not a failure.
			answer = models.Answer{
				Text: fmt.Sprintf("%s. %s", stdErr.Message, helpText),
			}
		} else {
			return nil, err
		}
	}

	return toResponse(parsed.Intent, answer), nil
}

func toResponse(in intent.Intent, answer models.Answer) *models.ChatResponse {
	resp := &models.ChatResponse{
		Intent: string(in),
		Answer: answer.Text,
		Data:   answer.Payload,
	}
	if answer.Source != "" {
		src := answer.Source
		resp.Source = &src
	}
	return resp
}
