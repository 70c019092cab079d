// Package airportlookup answers "what airport is X" questions against the
// loaded OpenFlights dataset. Resolution order is fixed: exact IATA code,
// then city substring, then airport name substring.
package airportlookup

import (
	"context"
	"fmt"
	"strings"

	commonerrors "airline-bot/internal/common/errors"
	"airline-bot/internal/common/logger"
	"airline-bot/internal/models"
)

const IntentType = "airport_lookup"

// Lookup is the slice of the dataset this handler needs.
type Lookup interface {
	ByIATA(code string) (models.Airport, bool)
	SearchCity(q string) (models.Airport, bool)
	SearchName(q string) (models.Airport, bool)
}

type Handler struct {
	dataset Lookup
	logger  logger.Logger
}

func NewHandler(dataset Lookup, log logger.Logger) *Handler {
	return &Handler{
		dataset: dataset,
		logger: log.WithFields(map[string]interface{}{
			"intent": IntentType,
		}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	query := strings.TrimSpace(input.CodeOrCity)
	if query == "" {
		return nil, commonerrors.NewValidationError("codeOrCity must not be empty")
	}

	if len(query) == 3 {
		if ap, ok := h.dataset.ByIATA(query); ok {
			return &Output{
				Answer: models.Answer{
					Text:    fmt.Sprintf("%s = %s in %s, %s (ICAO %s).", ap.IATA, ap.Name, ap.City, ap.Country, ap.ICAO),
					Payload: ap,
				},
				Airport: ap,
			}, nil
		}
	}

	if ap, ok := h.dataset.SearchCity(query); ok {
		return &Output{
			Answer: models.Answer{
				Text:    fmt.Sprintf("Airport in %s: %s (IATA %s, ICAO %s).", ap.City, ap.Name, ap.IATA, ap.ICAO),
				Payload: ap,
			},
			Airport: ap,
		}, nil
	}

	if ap, ok := h.dataset.SearchName(query); ok {
		return &Output{
			Answer: models.Answer{
				Text:    fmt.Sprintf("%s is in %s, %s (IATA %s, ICAO %s).", ap.Name, ap.City, ap.Country, ap.IATA, ap.ICAO),
				Payload: ap,
			},
			Airport: ap,
		}, nil
	}

	h.logger.Debug("airport lookup miss", map[string]interface{}{
		"query": query,
	})
	return nil, commonerrors.NewNotFoundError("Airport", fmt.Sprintf("no airport matched %q", query))
}
