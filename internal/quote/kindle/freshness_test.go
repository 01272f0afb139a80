package kindle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestIsStale(t *testing.T) {
	cases := []struct {
		name    string
		cadence Cadence
		last    time.Time
		now     time.Time
		expect  bool
	}{
		{"always is stale with fresh cache", CadenceAlways, date(2024, 6, 1), date(2024, 6, 1), true},
		{"daily under a day", CadenceDaily, date(2024, 6, 1), date(2024, 6, 1).Add(23 * time.Hour), false},
		{"daily at a day", CadenceDaily, date(2024, 6, 1), date(2024, 6, 2), true},
		{"weekly six days", CadenceWeekly, date(2024, 6, 1), date(2024, 6, 7), false},
		{"weekly eight days", CadenceWeekly, date(2024, 6, 1), date(2024, 6, 9), true},
		{"monthly same month", CadenceMonthly, date(2024, 1, 1), date(2024, 1, 31), false},
		{"monthly across boundary", CadenceMonthly, date(2024, 1, 31), date(2024, 2, 1), true},
		{"monthly same month next year", CadenceMonthly, date(2024, 3, 15), date(2025, 3, 15), true},
		{"quarterly inside Q1", CadenceQuarterly, date(2024, 1, 2), date(2024, 3, 31), false},
		{"quarterly Q1 to Q2", CadenceQuarterly, date(2024, 3, 31), date(2024, 4, 1), true},
		{"quarterly same quarter next year", CadenceQuarterly, date(2024, 2, 1), date(2025, 2, 1), true},
		{"biannually inside first half", CadenceBiannually, date(2024, 1, 1), date(2024, 6, 30), false},
		{"biannually across half", CadenceBiannually, date(2024, 6, 30), date(2024, 7, 1), true},
		{"biannually same half next year", CadenceBiannually, date(2024, 3, 1), date(2025, 3, 1), true},
		{"annually same year", CadenceAnnually, date(2024, 1, 1), date(2024, 12, 31), false},
		{"annually across boundary", CadenceAnnually, date(2024, 12, 31), date(2025, 1, 1), true},
		{"unknown cadence falls back to monthly", Cadence("hourly"), date(2024, 1, 31), date(2024, 2, 1), true},
		{"unknown cadence same month", Cadence("hourly"), date(2024, 2, 1), date(2024, 2, 28), false},
	}

	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expect, IsStale(test.cadence, test.last, test.now))
		})
	}
}

func TestIsStaleIsPure(t *testing.T) {
	last, now := date(2024, 3, 31), date(2024, 4, 1)
	for i := 0; i < 5; i++ {
		require.True(t, IsStale(CadenceQuarterly, last, now))
	}
}
