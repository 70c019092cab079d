// Package batteryrule classifies spare lithium batteries against the FAA
// PackSafe watt-hour tiers. mAh ratings are converted with the stated
// voltage, or the common 3.7 V cell voltage when none is given.
package batteryrule

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	commonerrors "airline-bot/internal/common/errors"
	"airline-bot/internal/common/logger"
	"airline-bot/internal/models"
)

const IntentType = "battery_rule"

// FAA PackSafe limits for lithium-ion batteries in passenger aircraft.
const (
	carryOnLimitWh  = 100.0
	approvalLimitWh = 160.0
	defaultVoltage  = 3.7

	packSafeURL = "https://www.faa.gov/hazmat/packsafe/lithium-batteries"

	summaryText = "Spare lithium batteries and power banks must travel in carry-on baggage. Up to 100 Wh is allowed; 100-160 Wh needs airline approval; over 160 Wh is forbidden on passenger aircraft. Tell me the battery's Wh or mAh rating (and voltage if you know it) and I will check it."
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	capacity := strings.TrimSpace(input.Capacity)
	if capacity == "" {
		return &Output{
			Answer: models.Answer{
				Text:   summaryText,
				Source: packSafeURL,
			},
		}, nil
	}

	value, err := strconv.ParseFloat(capacity, 64)
	if err != nil || value <= 0 {
		return nil, commonerrors.NewValidationError(fmt.Sprintf("capacity %q is not a positive number", capacity))
	}

	var wh float64
	var text string

	switch strings.ToLower(strings.TrimSpace(input.Unit)) {
	case "wh":
		wh = value
		text = fmt.Sprintf("Estimated capacity ≈ %.1f Wh, which falls under: %s.", wh, verdict(wh))
	case "mah":
		volts := defaultVoltage
		if v := strings.TrimSpace(input.Voltage); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil || parsed <= 0 {
				return nil, commonerrors.NewValidationError(fmt.Sprintf("voltage %q is not a positive number", v))
			}
			volts = parsed
		}
		wh = value * volts / 1000
		text = fmt.Sprintf("Estimated capacity ≈ %.1f Wh using %.1f V, which falls under: %s.", wh, volts, verdict(wh))
	default:
		return nil, commonerrors.NewValidationError(fmt.Sprintf("unit %q must be Wh or mAh", input.Unit))
	}

	return &Output{
		Answer: models.Answer{
			Text:   text,
			Source: packSafeURL,
		},
		WattHrs: wh,
		Verdict: verdict(wh),
	}, nil
}

func verdict(wh float64) string {
	switch {
	case wh <= carryOnLimitWh:
		return "allowed in carry-on"
	case wh <= approvalLimitWh:
		return "allowed only with airline approval (100-160 Wh)"
	default:
		return "forbidden on passenger aircraft (over 160 Wh)"
	}
}
