// Package tsarule answers carry-on liquids questions with the fixed TSA
// 3-1-1 rule.
package tsarule

import (
	"context"

	"airline-bot/internal/common/logger"
	"airline-bot/internal/models"
)

const IntentType = "tsa_rule"

const (
	liquidsRuleText = "TSA 3-1-1 liquids rule: carry-on liquids, gels and aerosols must be in containers of 3.4 oz (100 ml) or less, all fitting in one quart-size resealable bag, one bag per passenger. Larger quantities go in checked baggage; medications and infant nourishment are exempt."
	liquidsRuleURL  = "https://www.tsa.gov/travel/security-screening/liquids-rule"
)

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

func (h *Handler) execute(_ context.Context, _ *Input) (*Output, error) {
	return &Output{
		Answer: models.Answer{
			Text:   liquidsRuleText,
			Source: liquidsRuleURL,
		},
	}, nil
}
