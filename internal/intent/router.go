package intent

import (
	"regexp"
	"strings"

	"airline-bot/internal/airlines"
)

// Gazetteer is the slice of the airports dataset the router consults.
type Gazetteer interface {
	HasIATA(code string) bool
	MatchesPlace(q string) bool
}

// Rule maps a pattern to an intent. Match returns the extracted parameters
// and whether the rule fires. Rules must not mutate anything.
type Rule struct {
	Name   string
	Intent Intent
	Match  func(rt *Router, raw, lower string) (map[string]string, bool)
}

// Router evaluates the default rule set against a gazetteer.
type Router struct {
	gaz   Gazetteer
	rules []Rule
}

func NewRouter(gaz Gazetteer) *Router {
	return &Router{gaz: gaz, rules: defaultRules()}
}

// Rules returns the ordered rule names, mostly for the registry endpoint.
func (rt *Router) Rules() []string {
	names := make([]string, len(rt.rules))
	for i, r := range rt.rules {
		names[i] = r.Name
	}
	return names
}

// Classify maps text to exactly one intent. Pure function: no side
// effects, never fails. Unknown is a terminal classification, not an error.
func (rt *Router) Classify(text string) ParsedRequest {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return ParsedRequest{Intent: Unknown, Params: map[string]string{}}
	}
	lower := strings.ToLower(raw)

	for _, rule := range rt.rules {
		if params, ok := rule.Match(rt, raw, lower); ok {
			if params == nil {
				params = map[string]string{}
			}
			return ParsedRequest{Intent: rule.Intent, Params: params}
		}
	}

	return ParsedRequest{Intent: Unknown, Params: map[string]string{}}
}

var (
	iataTokenRe   = regexp.MustCompile(`\b[A-Z]{3}\b`)
	loneTokenRe   = regexp.MustCompile(`^[A-Za-z]{3}$`)
	locationCueRe = regexp.MustCompile(`(?i)\b(?:near|nearby|around|over|in)\s+([a-zA-Z .'-]+)`)
	whRe          = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*wh\b`)
	mahRe         = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*mah\b`)
	voltRe        = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*v\b`)
)

var flightKeywords = []string{"flight", "flights", "plane", "planes", "aircraft", "near", "nearby"}
var tsaKeywords = []string{"liquid", "toiletries", "tsa"}

// Numeric TSA cues must match as whole tokens: a capacity like "3110"
// contains "311" but is a battery question.
var tsaTokenRe = regexp.MustCompile(`(?i)\b(?:3-1-1|3 1 1|311|100 ?ml)\b`)
var batteryKeywords = []string{"battery", "power bank", "powerbank", "lithium"}
var baggageKeywords = []string{"baggage", "luggage", "carry-on", "carry on", "checked bag", "bag fee", "allowance"}

// defaultRules is the classification policy, first match wins. Airport
// codes outrank everything: any recognized 3-letter code means an airport
// question regardless of surrounding words.
func defaultRules() []Rule {
	return []Rule{
		{
			Name:   "airport-lookup",
			Intent: AirportLookup,
			Match: func(rt *Router, raw, lower string) (map[string]string, bool) {
				for _, code := range iataCandidates(raw) {
					if rt.gaz.HasIATA(code) {
						return map[string]string{ParamCodeOrCity: code}, true
					}
				}
				// Whole message naming a city or airport, e.g. "tokyo".
				if rt.gaz.MatchesPlace(lower) {
					return map[string]string{ParamCodeOrCity: raw}, true
				}
				return nil, false
			},
		},
		{
			Name:   "live-flights",
			Intent: LiveFlights,
			Match: func(rt *Router, raw, lower string) (map[string]string, bool) {
				if !containsAny(lower, flightKeywords) {
					return nil, false
				}
				// A flight keyword alone is not enough; "baggage on my
				// flight" must fall through to the baggage rule. A cue
				// like "near <place>" anchors the live-traffic reading.
				m := locationCueRe.FindStringSubmatch(raw)
				if m == nil {
					return nil, false
				}
				return map[string]string{ParamLocation: strings.TrimSpace(m[1])}, true
			},
		},
		{
			Name:   "tsa-rule",
			Intent: TsaRule,
			Match: func(rt *Router, raw, lower string) (map[string]string, bool) {
				if !containsAny(lower, tsaKeywords) && !tsaTokenRe.MatchString(lower) {
					return nil, false
				}
				return nil, true
			},
		},
		{
			Name:   "battery-rule",
			Intent: BatteryRule,
			Match: func(rt *Router, raw, lower string) (map[string]string, bool) {
				cleaned := strings.ReplaceAll(lower, ",", " ")
				hasUnit := whRe.MatchString(cleaned) || mahRe.MatchString(cleaned)
				if !containsAny(lower, batteryKeywords) && !hasUnit {
					return nil, false
				}

				params := map[string]string{}
				if m := whRe.FindStringSubmatch(cleaned); m != nil {
					params[ParamCapacity] = m[1]
					params[ParamUnit] = "Wh"
				} else if m := mahRe.FindStringSubmatch(cleaned); m != nil {
					params[ParamCapacity] = m[1]
					params[ParamUnit] = "mAh"
					if v := voltRe.FindStringSubmatch(cleaned); v != nil {
						params[ParamVoltage] = v[1]
					}
				}
				return params, true
			},
		},
		{
			Name:   "baggage-policy",
			Intent: BaggagePolicy,
			Match: func(rt *Router, raw, lower string) (map[string]string, bool) {
				if containsAny(lower, baggageKeywords) {
					params := map[string]string{}
					if airline, ok := airlines.Match(lower); ok {
						params[ParamAirline] = airline.Name
					}
					return params, true
				}
				// No baggage keyword: full airline names still count,
				// bare two-letter codes do not.
				if airline, ok := airlines.MatchName(lower); ok {
					return map[string]string{ParamAirline: airline.Name}, true
				}
				return nil, false
			},
		},
	}
}

// iataCandidates finds possible airport codes: uppercase whole words
// anywhere, or the entire message when it is a lone 3-letter token
// (any case, so "dfw" works). Lowercase tokens inside sentences are
// ignored; too many English words are also airport codes.
func iataCandidates(raw string) []string {
	hits := iataTokenRe.FindAllString(raw, -1)
	if len(hits) == 0 && loneTokenRe.MatchString(raw) {
		hits = []string{strings.ToUpper(raw)}
	}
	return hits
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
