// Package nlquery classifies free-text French questions about meters,
// readings, agents and consumption into a small set of query intents.
//
// Classification is a strict ordered decision list: detectors are evaluated
// in a fixed priority order and the first keyword match wins. All tables are
// immutable package data so classification is deterministic and safe for
// concurrent use
package nlquery

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Intent is the classified kind of a natural language query
type Intent string

// Intents in detector priority order
const (
	IntentConsumption   Intent = "consumption"
	IntentAgentRanking  Intent = "agents"
	IntentMeterLookup   Intent = "meters"
	IntentReadingLookup Intent = "readings"
	IntentStatistics    Intent = "statistics"
	IntentUnrecognized  Intent = "unrecognized"
)

var frLower = cases.Lower(language.French)

// Normalize lowercases and trims a raw query for keyword matching
func Normalize(raw string) string {
	return strings.TrimSpace(frLower.String(raw))
}

// detector pairs an intent with its keyword set
type detector struct {
	intent   Intent
	keywords []string
}

// detectors is the priority-ordered decision list. Consumption is tested
// first so "consommation eau des agents" classifies as consumption even
// though an agent keyword is present. Month names are parameters, not
// intent markers: "top 3 agents en mars" must rank agents, with the month
// extracted afterwards
var detectors = []detector{
	{IntentConsumption, []string{
		"consommation", "consommer", "eau", "électricité", "electricite",
	}},
	{IntentAgentRanking, []string{"agent", "agents", "top", "meilleur", "performance"}},
	{IntentMeterLookup, []string{"compteur", "compteurs", "mètre", "metre"}},
	{IntentReadingLookup, []string{"relevé", "relevés", "releve", "releves", "lecture", "lectures"}},
	{IntentStatistics, []string{"statistique", "statistiques", "moyenne", "total", "somme", "kpi"}},
}

// Classify returns the intent of a raw query using first-match-wins over the
// ordered detector list. Empty or whitespace-only input is Unrecognized
func Classify(raw string) Intent {
	q := Normalize(raw)
	if q == "" {
		return IntentUnrecognized
	}
	for _, d := range detectors {
		for _, kw := range d.keywords {
			if strings.Contains(q, kw) {
				return d.intent
			}
		}
	}
	return IntentUnrecognized
}
