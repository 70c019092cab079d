// internal/handlers/live-flights/models.go
package liveflights

import "airline-bot/internal/models"

type Input struct {
	Location string `json:"location"`
}

type Output struct {
	Answer   models.Answer     `json:"answer"`
	Label    string            `json:"label"`
	Count    int               `json:"count"`
	Aircraft []models.Aircraft `json:"aircraft"`
	Degraded bool              `json:"degraded"`
}

// stateResponse is the OpenSky /states/all envelope. Each state vector is
// a positional array; only callsign (1), origin country (2) and geometric
// altitude (13) are consumed.
type stateResponse struct {
	Time   int64           `json:"time"`
	States [][]interface{} `json:"states"`
}
