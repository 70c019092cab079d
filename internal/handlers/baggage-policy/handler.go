// Package baggagepolicy points travelers at the official baggage policy
// page of the airline they named.
package baggagepolicy

import (
	"context"
	"fmt"
	"strings"

	"airline-bot/internal/airlines"
	commonerrors "airline-bot/internal/common/errors"
	"airline-bot/internal/common/logger"
	"airline-bot/internal/models"
)

const IntentType = "baggage_policy"

const askAirlineText = "Which airline? I have baggage policy links for American, Delta, United, Southwest, Alaska, JetBlue, Air Canada, British Airways, Lufthansa, Emirates, Qatar Airways and Singapore Airlines."

type Handler struct {
	logger logger.Logger
}

func NewHandler(log logger.Logger) *Handler {
	return &Handler{
		logger: log.WithFields(map[string]interface{}{
			"intent": IntentType,
		}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	name := strings.TrimSpace(input.Airline)
	if name == "" {
		return &Output{
			Answer: models.Answer{Text: askAirlineText},
		}, nil
	}

	airline, ok := airlines.ByName(name)
	if !ok {
		return nil, commonerrors.NewNotFoundError("Airline", fmt.Sprintf("no baggage policy link for %q", name))
	}

	return &Output{
		Answer: models.Answer{
			Text:   fmt.Sprintf("%s baggage policy: %s", airline.Name, airline.URL),
			Source: airline.URL,
			Payload: map[string]string{
				"airline": airline.Name,
				"url":     airline.URL,
			},
		},
	}, nil
}
