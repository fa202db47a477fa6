package app

import (
	"fmt"
	"sort"
	"strings"
)

// selectionProfile is the aggregate design profile of a selection: summed
// and normalized genre weights, the union of mechanic tags, and averaged
// complexity and pacing balance.
type selectionProfile struct {
	names         []string
	years         []int
	genreWeights  map[string]float64
	mechanics     []string
	avgComplexity float64
	avgBalance    float64
}

// aggregateProfile assumes every id has already been validated against the
// catalog.
func (s *Service) aggregateProfile(ids []string) selectionProfile {
	profile := selectionProfile{
		genreWeights: make(map[string]float64),
	}

	mechanicSeen := make(map[string]struct{})
	for _, id := range ids {
		meta, ok := s.catalog.Get(id)
		if !ok {
			continue
		}

		profile.names = append(profile.names, meta.Game.Name)
		profile.years = append(profile.years, meta.Game.Year)

		if len(meta.GenreAffinity) > 0 {
			for genre, weight := range meta.GenreAffinity {
				profile.genreWeights[genre] += weight
			}
		} else if meta.Game.Genre != "" {
			// No affinities recorded; fall back to the primary genre.
			profile.genreWeights[meta.Game.Genre]++
		}

		for _, tag := range meta.MechanicTags {
			key := strings.ToLower(tag)
			if _, dup := mechanicSeen[key]; dup {
				continue
			}
			mechanicSeen[key] = struct{}{}
			profile.mechanics = append(profile.mechanics, tag)
		}

		profile.avgComplexity += meta.Features.Complexity
		profile.avgBalance += meta.Features.ActionStrategy
	}

	if n := float64(len(ids)); n > 0 {
		profile.avgComplexity /= n
		profile.avgBalance /= n
	}

	var total float64
	for _, w := range profile.genreWeights {
		total += w
	}
	if total > 0 {
		for genre := range profile.genreWeights {
			profile.genreWeights[genre] /= total
		}
	}

	sort.Strings(profile.mechanics)

	return profile
}

// blendName composes a display name for the blend from the selected game
// names.
func blendName(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return fmt.Sprintf("%s × %s", names[0], names[1])
	default:
		return fmt.Sprintf("%s meets %s (+%d)", names[0], names[len(names)-1], len(names)-2)
	}
}

// blendDescription summarizes the blend in one line keyed off the dominant
// genre and year span.
func blendDescription(profile selectionProfile) string {
	dominant := dominantGenre(profile.genreWeights)
	minYear, maxYear := yearSpan(profile.years)
	return fmt.Sprintf(
		"A %s experience blending %d classic games from %d-%d, combining the best elements of each era",
		strings.ToLower(dominant), len(profile.names), minYear, maxYear,
	)
}

// dominantGenre picks the highest-weight genre, breaking ties by the
// lexicographically smaller name so descriptions are stable.
func dominantGenre(weights map[string]float64) string {
	best := ""
	bestWeight := -1.0
	for genre, weight := range weights {
		if weight > bestWeight || (weight == bestWeight && genre < best) {
			best = genre
			bestWeight = weight
		}
	}
	if best == "" {
		return "hybrid"
	}
	return best
}

func yearSpan(years []int) (int, int) {
	if len(years) == 0 {
		return 0, 0
	}
	minYear, maxYear := years[0], years[0]
	for _, y := range years[1:] {
		if y < minYear {
			minYear = y
		}
		if y > maxYear {
			maxYear = y
		}
	}
	return minYear, maxYear
}
