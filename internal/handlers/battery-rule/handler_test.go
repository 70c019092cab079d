// internal/handlers/battery-rule/handler_test.go
package batteryrule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "airline-bot/internal/common/errors"
	"airline-bot/internal/common/logger"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(logger.NewTestLogger(t))
}

func TestHandler_Execute(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name        string
		input       Input
		wantText    string
		wantWh      float64
		wantVerdict string
	}{
		{
			name:        "wh under carry-on limit",
			input:       Input{Capacity: "99.9", Unit: "Wh"},
			wantText:    "Estimated capacity ≈ 99.9 Wh, which falls under: allowed in carry-on.",
			wantWh:      99.9,
			wantVerdict: "allowed in carry-on",
		},
		{
			name:        "mah with default voltage",
			input:       Input{Capacity: "20000", Unit: "mAh"},
			wantText:    "Estimated capacity ≈ 74.0 Wh using 3.7 V, which falls under: allowed in carry-on.",
			wantWh:      74.0,
			wantVerdict: "allowed in carry-on",
		},
		{
			name:        "mah with explicit voltage on approval boundary",
			input:       Input{Capacity: "32000", Unit: "mAh", Voltage: "5"},
			wantText:    "Estimated capacity ≈ 160.0 Wh using 5.0 V, which falls under: allowed only with airline approval (100-160 Wh).",
			wantWh:      160.0,
			wantVerdict: "allowed only with airline approval (100-160 Wh)",
		},
		{
			name:        "wh over forbidden limit",
			input:       Input{Capacity: "300", Unit: "Wh"},
			wantText:    "Estimated capacity ≈ 300.0 Wh, which falls under: forbidden on passenger aircraft (over 160 Wh).",
			wantWh:      300.0,
			wantVerdict: "forbidden on passenger aircraft (over 160 Wh)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, out.Answer.Text)
			assert.InDelta(t, tt.wantWh, out.WattHrs, 1e-9)
			assert.Equal(t, tt.wantVerdict, out.Verdict)
			assert.Equal(t, "https://www.faa.gov/hazmat/packsafe/lithium-batteries", out.Answer.Source)
		})
	}
}

func TestHandler_Execute_NoCapacityGivesSummary(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Contains(t, out.Answer.Text, "Up to 100 Wh is allowed")
	assert.Zero(t, out.WattHrs)
}

func TestHandler_Execute_InvalidInputs(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name  string
		input Input
	}{
		{name: "non-numeric capacity", input: Input{Capacity: "lots", Unit: "Wh"}},
		{name: "negative capacity", input: Input{Capacity: "-5", Unit: "Wh"}},
		{name: "unknown unit", input: Input{Capacity: "100", Unit: "joules"}},
		{name: "non-numeric voltage", input: Input{Capacity: "20000", Unit: "mAh", Voltage: "high"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), &tt.input)
			assert.Nil(t, out)

			stdErr, ok := commonerrors.AsStandard(err)
			require.True(t, ok)
			assert.Equal(t, commonerrors.ErrCodeValidation, stdErr.Code)
		})
	}
}
