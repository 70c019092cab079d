// internal/handlers/baggage-policy/handler_test.go
package baggagepolicy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "airline-bot/internal/common/errors"
	"airline-bot/internal/common/logger"
)

func TestHandler_Execute_KnownAirline(t *testing.T) {
	h := NewHandler(logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Airline: "Delta Air Lines"})
	require.NoError(t, err)

	assert.Equal(t, "Delta Air Lines baggage policy: https://www.delta.com/traveling-with-us/baggage", out.Answer.Text)
	assert.Equal(t, "https://www.delta.com/traveling-with-us/baggage", out.Answer.Source)
}

func TestHandler_Execute_NoAirlineAsksForOne(t *testing.T) {
	h := NewHandler(logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Contains(t, out.Answer.Text, "Which airline?")
	assert.Empty(t, out.Answer.Source)
}

func TestHandler_Execute_UnknownAirline(t *testing.T) {
	h := NewHandler(logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Airline: "Trans Galactic Airways"})
	assert.Nil(t, out)
	assert.True(t, commonerrors.IsNotFound(err))
}
