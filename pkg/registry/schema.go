// pkg/registry/schema.go
package registry

type IntentRegistry struct {
	Version     string             `json:"version"`
	LastUpdated string             `json:"lastUpdated"`
	Intents     []IntentDefinition `json:"intents"`
}

type IntentDefinition struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Intent      string   `json:"intent"`
	Params      []string `json:"params"`
	Examples    []string `json:"examples"`
	Sources     []string `json:"sources"`
	ErrorCodes  []string `json:"errorCodes"`
	Tags        []string `json:"tags"`
}
