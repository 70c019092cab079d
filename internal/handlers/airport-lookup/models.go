// internal/handlers/airport-lookup/models.go
package airportlookup

import "airline-bot/internal/models"

type Input struct {
	CodeOrCity string `json:"codeOrCity"`
}

type Output struct {
	Answer  models.Answer  `json:"answer"`
	Airport models.Airport `json:"airport"`
}
