// internal/handlers/tsa-rule/models.go
package tsarule

import "airline-bot/internal/models"

type Input struct{}

type Output struct {
	Answer models.Answer `json:"answer"`
}
