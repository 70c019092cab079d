// internal/handlers/tsa-rule/handler_test.go
package tsarule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airline-bot/internal/common/logger"
)

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.Contains(t, out.Answer.Text, "3-1-1")
	assert.Contains(t, out.Answer.Text, "100 ml")
	assert.Equal(t, "https://www.tsa.gov/travel/security-screening/liquids-rule", out.Answer.Source)
}
