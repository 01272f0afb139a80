package kindle

import "time"

// Cadence is how often the highlight cache should be refreshed.
type Cadence string

const (
	CadenceAlways     Cadence = "always"
	CadenceDaily      Cadence = "daily"
	CadenceWeekly     Cadence = "weekly"
	CadenceMonthly    Cadence = "monthly"
	CadenceQuarterly  Cadence = "quarterly"
	CadenceBiannually Cadence = "biannually"
	CadenceAnnually   Cadence = "annually"
)

// IsStale reports whether a cache last written at lastModified needs a
// refresh at now. Daily and weekly compare elapsed time; the longer
// cadences compare calendar boundaries, so a monthly cache written on
// Jan 31 is stale on Feb 1. An unrecognised cadence falls back to
// monthly rather than failing.
func IsStale(cadence Cadence, lastModified, now time.Time) bool {
	switch cadence {
	case CadenceAlways:
		return true
	case CadenceDaily:
		return now.Sub(lastModified) >= 24*time.Hour
	case CadenceWeekly:
		return now.Sub(lastModified) >= 7*24*time.Hour
	case CadenceQuarterly:
		return quarter(now) != quarter(lastModified) || now.Year() != lastModified.Year()
	case CadenceBiannually:
		return half(now) != half(lastModified) || now.Year() != lastModified.Year()
	case CadenceAnnually:
		return now.Year() != lastModified.Year()
	case CadenceMonthly:
		fallthrough
	default:
		return now.Month() != lastModified.Month() || now.Year() != lastModified.Year()
	}
}

func quarter(t time.Time) int {
	return (int(t.Month()) - 1) / 3
}

func half(t time.Time) bool {
	return t.Month() <= 6
}
