// Package recommend derives design feature suggestions from a blended
// selection's aggregate profile via fixed lookup tables.
//
// Output order is deterministic: genre rules, then mechanic rules, then
// complexity rules, then co-occurrence rules. Identical strings produced by
// two rules are emitted once.
package recommend

import "strings"

// Rule thresholds.
const (
	// GenreThreshold is the minimum aggregated genre weight for the
	// genre's suggestions to apply.
	GenreThreshold = 0.3

	highComplexity = 0.7
	lowComplexity  = 0.3
)

// genreRule pairs a taxonomy genre with its fixed feature suggestions.
type genreRule struct {
	genre       string
	suggestions []string
}

// Evaluated in order; map iteration would make the output order flap.
var genreRules = []genreRule{
	{"Role-Playing", []string{
		"Character customization system",
		"Quest system with branching paths",
	}},
	{"Action", []string{
		"Responsive combat with combo system",
		"Boss battles with pattern learning",
	}},
	{"Strategy", []string{
		"Resource management layer",
		"Strategic planning phases",
	}},
	{"Puzzle", []string{
		"Environmental puzzles integrated into levels",
	}},
}

type mechanicRule struct {
	tag         string
	suggestions []string
}

var mechanicRules = []mechanicRule{
	{"exploration", []string{
		"Hidden areas and secrets to discover",
		"Metroidvania-style ability gating",
	}},
	{"character progression", []string{
		"Skill trees or ability unlocks",
		"Experience point system",
	}},
	{"collection", []string{
		"Collectibles that reward thorough play",
	}},
}

// Mechanic groups for the hybrid-mode co-occurrence rule.
var (
	actionMechanics    = []string{"combat", "real-time"}
	strategicMechanics = []string{"resource management", "turn-based"}
)

// Features maps the aggregated genre weights, mechanic tag union, and
// average complexity of a selection to a list of suggested design features.
func Features(genreWeights map[string]float64, mechanicTags []string, avgComplexity float64) []string {
	var out []string
	emitted := make(map[string]struct{})
	emit := func(suggestions ...string) {
		for _, s := range suggestions {
			if _, dup := emitted[s]; dup {
				continue
			}
			emitted[s] = struct{}{}
			out = append(out, s)
		}
	}

	tags := make(map[string]struct{}, len(mechanicTags))
	for _, t := range mechanicTags {
		tags[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	hasTag := func(tag string) bool {
		_, ok := tags[tag]
		return ok
	}
	hasAny := func(group []string) bool {
		for _, tag := range group {
			if hasTag(tag) {
				return true
			}
		}
		return false
	}

	for _, rule := range genreRules {
		if weightFor(genreWeights, rule.genre) > GenreThreshold {
			emit(rule.suggestions...)
		}
	}

	for _, rule := range mechanicRules {
		if hasTag(rule.tag) {
			emit(rule.suggestions...)
		}
	}

	switch {
	case avgComplexity > highComplexity:
		emit(
			"In-depth tutorial system",
			"Codex or journal for tracking information",
			"Hint system for stuck players",
		)
	case avgComplexity < lowComplexity:
		emit(
			"Pick-up-and-play design",
			"Visual feedback over text explanations",
			"Intuitive controls",
		)
	}

	if hasAny(actionMechanics) && hasAny(strategicMechanics) {
		emit("Pause-and-plan tactical mode")
	}

	return out
}

// weightFor looks up an aggregated genre weight case-insensitively so
// human-entered genre labels do not dodge the rule table.
func weightFor(weights map[string]float64, genre string) float64 {
	if w, ok := weights[genre]; ok {
		return w
	}
	for k, w := range weights {
		if strings.EqualFold(k, genre) {
			return w
		}
	}
	return 0
}
