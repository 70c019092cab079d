// internal/models/answer.go
package models

// Answer is the unit every lookup handler produces: display text, an
// optional official source URL, and an optional structured payload.
// Answers are built fresh per request and never mutated afterwards.
type Answer struct {
	Text    string      `json:"text"`
	Source  string      `json:"source,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// Aircraft is one live state vector reduced to the fields we present.
type Aircraft struct {
	Callsign      string  `json:"callsign"`
	OriginCountry string  `json:"originCountry,omitempty"`
	AltitudeM     float64 `json:"altitudeM"`
}

// Airport is one row of the OpenFlights dataset.
type Airport struct {
	Name    string  `json:"name"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	IATA    string  `json:"iata"`
	ICAO    string  `json:"icao"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
