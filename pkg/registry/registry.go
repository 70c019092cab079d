// Package registry loads the intent registry document that describes the
// chatbot's supported intents. The document drives the /intents endpoint
// and the CLI listing; classification itself is compiled into the router.
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// registrySchema is the structural contract a registry document must meet.
var registrySchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"version", "intents"},
	"properties": map[string]interface{}{
		"version":     map[string]interface{}{"type": "string"},
		"lastUpdated": map[string]interface{}{"type": "string"},
		"intents": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"id", "displayName", "intent"},
				"properties": map[string]interface{}{
					"id":          map[string]interface{}{"type": "string", "minLength": 1},
					"displayName": map[string]interface{}{"type": "string", "minLength": 1},
					"description": map[string]interface{}{"type": "string"},
					"intent":      map[string]interface{}{"type": "string", "minLength": 1},
					"params": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
					"examples": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
					"sources": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
					"errorCodes": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
					"tags": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
				},
			},
		},
	},
}

// LoadRegistry reads and validates the registry document at path.
func LoadRegistry(path string) (*IntentRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var reg IntentRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

func validateDocument(data []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(registrySchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("registry validation failed: %v", errs)
	}

	return nil
}

// Find returns the definition whose intent field equals name.
func (r *IntentRegistry) Find(name string) (IntentDefinition, bool) {
	for _, def := range r.Intents {
		if def.Intent == name {
			return def, true
		}
	}
	return IntentDefinition{}, false
}
