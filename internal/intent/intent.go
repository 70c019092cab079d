// Package intent classifies free-text traveler queries into a discrete
// intent plus extracted parameters. Classification is pure and
// deterministic: an ordered rule list is evaluated top to bottom and the
// first matching rule wins. No rule matching is never an error; it yields
// Unknown.
package intent

// Intent is the classified purpose of a user query.
type Intent string

const (
	AirportLookup Intent = "airport_lookup"
	LiveFlights   Intent = "live_flights"
	TsaRule       Intent = "tsa_rule"
	BatteryRule   Intent = "battery_rule"
	BaggagePolicy Intent = "baggage_policy"
	Unknown       Intent = "unknown"
)

// Parameter names extracted by the rules.
const (
	ParamCodeOrCity = "code_or_city"
	ParamLocation   = "location"
	ParamAirline    = "airline"
	ParamCapacity   = "capacity"
	ParamUnit       = "unit"
	ParamVoltage    = "voltage"
)

// ParsedRequest is the router output: exactly one intent and zero or more
// extracted parameters. Treat Params as immutable once produced.
type ParsedRequest struct {
	Intent Intent            `json:"intent"`
	Params map[string]string `json:"params"`
}

// Param returns the named parameter or "".
func (p ParsedRequest) Param(name string) string {
	return p.Params[name]
}
