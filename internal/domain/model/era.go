package model

// Era category labels derived from release year.
const (
	EraEarly80s = "early_80s"
	EraMid80s   = "mid_80s"
	EraLate80s  = "late_80s"
	EraEarly90s = "early_90s"
	EraMid90s   = "mid_90s"
	EraUnknown  = "unknown"
)

// Catalog year range covered by the named eras.
const (
	eraFirstYear = 1980
	eraFinalYear = 1995
)

// EraCategory buckets a release year into a named era. Years outside the
// catalog's range map to EraUnknown rather than an error.
func EraCategory(year int) string {
	switch {
	case year < eraFirstYear || year > eraFinalYear:
		return EraUnknown
	case year <= 1983:
		return EraEarly80s
	case year <= 1986:
		return EraMid80s
	case year <= 1989:
		return EraLate80s
	case year <= 1992:
		return EraEarly90s
	default:
		return EraMid90s
	}
}
