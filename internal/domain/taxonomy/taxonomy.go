// Package taxonomy defines the fixed genre and mechanic enumerations shared
// between the metadata builder and the similarity engine.
//
// The taxonomies are resolved to integer indices once at load time; string
// labels are retained only for human-facing descriptions, never for control
// flow. Feature vectors produced against one taxonomy are only comparable to
// vectors produced against the same taxonomy.
package taxonomy

import "strings"

// Genres is the ordered list of recognized genre labels. Position i in any
// genre weight vector refers to Genres[i].
var Genres = []string{
	"Action",
	"Adventure",
	"Role-Playing",
	"Strategy",
	"Puzzle",
	"Platform",
	"Shooter",
	"Fighting",
	"Racing",
	"Sports",
	"Simulation",
	"Horror",
}

// Mechanics is the ordered list of recognized mechanic labels. Position i in
// any mechanic flag vector refers to Mechanics[i].
var Mechanics = []string{
	"Combat",
	"Exploration",
	"Puzzle Solving",
	"Platform Jumping",
	"Resource Management",
	"Character Progression",
	"Story Choices",
	"Time Pressure",
	"Collection",
	"Stealth",
	"Multiplayer",
	"Turn-Based",
	"Real-Time",
	"Physics-Based",
	"Procedural Generation",
}

// MaxPlatformGeneration is the highest hardware era ordinal.
const MaxPlatformGeneration = 5

// index maps are built once at package load; lookups are case-insensitive.
var (
	genreIndex    = buildIndex(Genres)
	mechanicIndex = buildIndex(Mechanics)
)

func buildIndex(labels []string) map[string]int {
	idx := make(map[string]int, len(labels))
	for i, label := range labels {
		idx[strings.ToLower(label)] = i
	}
	return idx
}

// GenreIndex resolves a genre label to its position in Genres.
func GenreIndex(label string) (int, bool) {
	i, ok := genreIndex[strings.ToLower(strings.TrimSpace(label))]
	return i, ok
}

// MechanicIndex resolves a mechanic label to its position in Mechanics.
func MechanicIndex(label string) (int, bool) {
	i, ok := mechanicIndex[strings.ToLower(strings.TrimSpace(label))]
	return i, ok
}

// GenreCount returns the size of the genre taxonomy.
func GenreCount() int { return len(Genres) }

// MechanicCount returns the size of the mechanic taxonomy.
func MechanicCount() int { return len(Mechanics) }
