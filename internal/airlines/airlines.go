// Package airlines maps airline names and two-letter codes to official
// baggage policy pages. The table is fixed at build time.
package airlines

import (
	"regexp"
	"strings"
)

// Airline is one entry of the baggage policy table.
type Airline struct {
	Name string
	URL  string
}

// Keys are lowercase names and IATA airline codes as they appear in text.
var byKeyword = map[string]Airline{
	// US carriers
	"american":  {Name: "American Airlines", URL: "https://www.aa.com/i18n/travel-info/baggage/baggage.jsp"},
	"aa":        {Name: "American Airlines", URL: "https://www.aa.com/i18n/travel-info/baggage/baggage.jsp"},
	"delta":     {Name: "Delta Air Lines", URL: "https://www.delta.com/traveling-with-us/baggage"},
	"dl":        {Name: "Delta Air Lines", URL: "https://www.delta.com/traveling-with-us/baggage"},
	"united":    {Name: "United Airlines", URL: "https://www.united.com/en/us/fly/travel/baggage.html"},
	"ua":        {Name: "United Airlines", URL: "https://www.united.com/en/us/fly/travel/baggage.html"},
	"southwest": {Name: "Southwest Airlines", URL: "https://www.southwest.com/help/baggage"},
	"wn":        {Name: "Southwest Airlines", URL: "https://www.southwest.com/help/baggage"},
	"alaska":    {Name: "Alaska Airlines", URL: "https://www.alaskaair.com/travel-info/baggage/overview"},
	"as":        {Name: "Alaska Airlines", URL: "https://www.alaskaair.com/travel-info/baggage/overview"},
	"jetblue":   {Name: "JetBlue", URL: "https://www.jetblue.com/help/baggage"},
	"b6":        {Name: "JetBlue", URL: "https://www.jetblue.com/help/baggage"},

	// International carriers
	"air canada":      {Name: "Air Canada", URL: "https://www.aircanada.com/ca/en/aco/home/plan/baggage.html"},
	"ac":              {Name: "Air Canada", URL: "https://www.aircanada.com/ca/en/aco/home/plan/baggage.html"},
	"british airways": {Name: "British Airways", URL: "https://www.britishairways.com/en-us/information/baggage-essentials"},
	"ba":              {Name: "British Airways", URL: "https://www.britishairways.com/en-us/information/baggage-essentials"},
	"lufthansa":       {Name: "Lufthansa", URL: "https://www.lufthansa.com/us/en/baggage-overview"},
	"lh":              {Name: "Lufthansa", URL: "https://www.lufthansa.com/us/en/baggage-overview"},
	"emirates":        {Name: "Emirates", URL: "https://www.emirates.com/us/english/before-you-fly/baggage/"},
	"ek":              {Name: "Emirates", URL: "https://www.emirates.com/us/english/before-you-fly/baggage/"},
	"qatar":           {Name: "Qatar Airways", URL: "https://www.qatarairways.com/en-us/baggage/allowance.html"},
	"qr":              {Name: "Qatar Airways", URL: "https://www.qatarairways.com/en-us/baggage/allowance.html"},
	"singapore":       {Name: "Singapore Airlines", URL: "https://www.singaporeair.com/en_UK/us/travel-info/baggage/"},
	"sq":              {Name: "Singapore Airlines", URL: "https://www.singaporeair.com/en_UK/us/travel-info/baggage/"},
}

// Multi-word names must win over the short code keys ("air canada" before "ac").
var multiWord = []string{"air canada", "british airways"}

// Fixed scan order keeps matching deterministic when several keys appear.
var keyOrder = []string{
	"american", "aa", "delta", "dl", "united", "ua", "southwest", "wn",
	"alaska", "as", "jetblue", "b6", "lufthansa", "lh", "emirates", "ek",
	"qatar", "qr", "singapore", "sq", "ac", "ba",
}

// Compiled once; the table is static and Match runs on every request.
var keywordRe = compileKeywordPatterns()

func compileKeywordPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(keyOrder))
	for _, key := range keyOrder {
		patterns[key] = regexp.MustCompile(`\b` + regexp.QuoteMeta(key) + `\b`)
	}
	return patterns
}

// Match finds the first airline referenced in text.
func Match(text string) (Airline, bool) {
	t := strings.ToLower(text)

	for _, key := range multiWord {
		if strings.Contains(t, key) {
			return byKeyword[key], true
		}
	}

	for _, key := range keyOrder {
		if keywordRe[key].MatchString(t) {
			return byKeyword[key], true
		}
	}

	return Airline{}, false
}

// MatchName behaves like Match but ignores the two-letter code keys. Used
// when there is no baggage keyword to anchor the query, where a bare "as"
// or "ba" in ordinary prose would misfire.
func MatchName(text string) (Airline, bool) {
	t := strings.ToLower(text)

	for _, key := range multiWord {
		if strings.Contains(t, key) {
			return byKeyword[key], true
		}
	}

	for _, key := range keyOrder {
		if len(key) == 2 {
			continue
		}
		if keywordRe[key].MatchString(t) {
			return byKeyword[key], true
		}
	}

	return Airline{}, false
}

// ByName returns the airline whose canonical name equals name.
func ByName(name string) (Airline, bool) {
	for _, airline := range byKeyword {
		if strings.EqualFold(airline.Name, name) {
			return airline, true
		}
	}
	return Airline{}, false
}
