package blend

import (
	"fmt"
	"strings"

	"github.com/okian/meld/internal/domain/model"
)

// Annotation rule constants. Strengths and severities are qualitative
// markers, not tuned quantities.
const (
	eraMatchStrength        = 0.8
	eraProximityStrength    = 0.6
	platformMatchStrength   = 0.5
	mechanicOverlapStrength = 0.6
	complexityMatchStrength = 0.7

	eraProximityYears  = 2
	complexityMatchGap = 0.2
	complexityClashGap = 0.5
	styleClashGap      = 1.0
	eraGapYears        = 10
	eraGapSeverity     = 0.4
	genreClashSeverity = 0.6
)

// antagonisticGenres lists genre pairings with very different player
// expectations. Matching is order-insensitive and case-insensitive.
var antagonisticGenres = [][2]string{
	{"Action", "Strategy"},
	{"Puzzle", "Action"},
	{"Racing", "Role-Playing"},
}

// Annotate evaluates the qualitative rule table for a pair of games. Rules
// are independent; several may fire for the same pair. The returned order is
// fixed: era, platform, mechanics, complexity for synergies; complexity,
// style, era gap, genre for conflicts.
func Annotate(a, b model.GameMetadata) ([]model.Synergy, []model.Conflict) {
	return annotateSynergies(a, b), annotateConflicts(a, b)
}

func annotateSynergies(a, b model.GameMetadata) []model.Synergy {
	var synergies []model.Synergy

	// Only one era rule fires per pair; the category match wins over the
	// year-proximity variant.
	switch {
	case a.EraCategory == b.EraCategory:
		synergies = append(synergies, model.Synergy{
			Type:        "Era Match",
			Description: fmt.Sprintf("Both games are from the %s era", a.EraCategory),
			Strength:    eraMatchStrength,
		})
	case absInt(a.Game.Year-b.Game.Year) <= eraProximityYears:
		synergies = append(synergies, model.Synergy{
			Type:        "Era Match",
			Description: "Games from similar years share technical constraints",
			Strength:    eraProximityStrength,
		})
	}

	if shared := sharedStrings(a.Game.Platforms, b.Game.Platforms); len(shared) > 0 {
		synergies = append(synergies, model.Synergy{
			Type:        "Platform Match",
			Description: "Both released on: " + strings.Join(shared, ", "),
			Strength:    platformMatchStrength,
		})
	}

	if shared := sharedStrings(a.MechanicTags, b.MechanicTags); len(shared) > 0 {
		synergies = append(synergies, model.Synergy{
			Type:        "Mechanic Overlap",
			Description: "Both games feature " + strings.Join(shared, ", "),
			Strength:    mechanicOverlapStrength,
		})
	}

	if absFloat(a.Features.Complexity-b.Features.Complexity) < complexityMatchGap {
		synergies = append(synergies, model.Synergy{
			Type:        "Complexity Match",
			Description: "Similar complexity levels ensure a consistent experience",
			Strength:    complexityMatchStrength,
		})
	}

	return synergies
}

func annotateConflicts(a, b model.GameMetadata) []model.Conflict {
	var conflicts []model.Conflict

	if diff := absFloat(a.Features.Complexity - b.Features.Complexity); diff > complexityClashGap {
		// The more complex game is always named first.
		moreComplex, lessComplex := a.Game.Name, b.Game.Name
		if b.Features.Complexity > a.Features.Complexity {
			moreComplex, lessComplex = b.Game.Name, a.Game.Name
		}
		conflicts = append(conflicts, model.Conflict{
			Type:           "Complexity Mismatch",
			Description:    fmt.Sprintf("%s is much more complex than %s", moreComplex, lessComplex),
			Severity:       diff,
			ResolutionHint: "Implement difficulty modes or a gradual complexity ramp",
		})
	}

	if diff := absFloat(a.Features.ActionStrategy - b.Features.ActionStrategy); diff > styleClashGap {
		conflicts = append(conflicts, model.Conflict{
			Type:           "Gameplay Style Conflict",
			Description:    "Conflicting pace: one game is action-focused while the other is strategy-focused",
			Severity:       diff / 2,
			ResolutionHint: "Create hybrid mechanics or a pause-and-plan mode",
		})
	}

	if absInt(a.Game.Year-b.Game.Year) > eraGapYears {
		conflicts = append(conflicts, model.Conflict{
			Type:           "Era Gap",
			Description:    "A large era gap may create inconsistent expectations",
			Severity:       eraGapSeverity,
			ResolutionHint: "Use modern quality-of-life features while preserving the era feel",
		})
	}

	for _, pair := range antagonisticGenres {
		if genrePairMatches(a.Game.Genre, b.Game.Genre, pair) {
			conflicts = append(conflicts, model.Conflict{
				Type:           "Genre Conflict",
				Description:    fmt.Sprintf("%s and %s have very different player expectations", pair[0], pair[1]),
				Severity:       genreClashSeverity,
				ResolutionHint: "Clearly communicate the genre blend in the game description",
			})
		}
	}

	return conflicts
}

// sharedStrings returns the entries of a that also occur in b, preserving
// a's order. Matching is case-insensitive; a's spelling is kept.
func sharedStrings(a, b []string) []string {
	var shared []string
	for _, s := range a {
		for _, t := range b {
			if strings.EqualFold(s, t) {
				shared = append(shared, s)
				break
			}
		}
	}
	return shared
}

func genrePairMatches(genreA, genreB string, pair [2]string) bool {
	return (strings.EqualFold(genreA, pair[0]) && strings.EqualFold(genreB, pair[1])) ||
		(strings.EqualFold(genreA, pair[1]) && strings.EqualFold(genreB, pair[0]))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
