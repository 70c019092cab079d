// internal/handlers/baggage-policy/models.go
package baggagepolicy

import "airline-bot/internal/models"

// Airline carries the canonical airline name extracted by the router, or
// "" when the query named no airline.
type Input struct {
	Airline string `json:"airline"`
}

type Output struct {
	Answer models.Answer `json:"answer"`
}
