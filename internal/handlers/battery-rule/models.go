// internal/handlers/battery-rule/models.go
package batteryrule

import "airline-bot/internal/models"

// Capacity and voltage arrive as extracted text, not numbers; the router
// does no numeric validation.
type Input struct {
	Capacity string `json:"capacity"`
	Unit     string `json:"unit"`
	Voltage  string `json:"voltage"`
}

type Output struct {
	Answer  models.Answer `json:"answer"`
	WattHrs float64       `json:"wattHours"`
	Verdict string        `json:"verdict"`
}
