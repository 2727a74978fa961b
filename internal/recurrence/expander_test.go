package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpander_CountOccurrences(t *testing.T) {
	e := NewExpander(0)

	tests := []struct {
		name    string
		rule    domain.RecurrenceRule
		want    int
		wantErr error
	}{
		{
			name: "weekly three full weeks",
			rule: domain.RecurrenceRule{Cadence: domain.CadenceWeekly, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 22)},
			want: 4,
		},
		{
			name: "weekly partial week is dropped",
			rule: domain.RecurrenceRule{Cadence: domain.CadenceWeekly, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 27)},
			want: 4,
		},
		{
			name: "biweekly",
			rule: domain.RecurrenceRule{Cadence: domain.CadenceBiweekly, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 29)},
			want: 3,
		},
		{
			name: "monthly inclusive end",
			rule: domain.RecurrenceRule{Cadence: domain.CadenceMonthly, StartDate: date(2024, 3, 1), EndDate: date(2024, 5, 1)},
			want: 3,
		},
		{
			name: "monthly end one day before the next step",
			rule: domain.RecurrenceRule{Cadence: domain.CadenceMonthly, StartDate: date(2024, 3, 15), EndDate: date(2024, 5, 14)},
			want: 2,
		},
		{
			name: "monthly from 31st counts clamped february",
			rule: domain.RecurrenceRule{Cadence: domain.CadenceMonthly, StartDate: date(2024, 1, 31), EndDate: date(2024, 2, 29)},
			want: 2,
		},
		{
			name: "quarterly over a year",
			rule: domain.RecurrenceRule{Cadence: domain.CadenceQuarterly, StartDate: date(2024, 1, 10), EndDate: date(2025, 1, 10)},
			want: 5,
		},
		{
			name:    "end before start",
			rule:    domain.RecurrenceRule{Cadence: domain.CadenceWeekly, StartDate: date(2024, 2, 1), EndDate: date(2024, 1, 1)},
			wantErr: ErrEndBeforeStart,
		},
		{
			name:    "unknown cadence",
			rule:    domain.RecurrenceRule{Cadence: "daily", StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 2)},
			wantErr: ErrUnknownCadence,
		},
		{
			name:    "missing dates",
			rule:    domain.RecurrenceRule{Cadence: domain.CadenceWeekly},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative price",
			rule:    domain.RecurrenceRule{Cadence: domain.CadenceWeekly, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 1), BasePrice: -1},
			wantErr: ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.CountOccurrences(tt.rule)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpander_CountOccurrences_SingleDay(t *testing.T) {
	e := NewExpander(0)
	day := date(2024, 6, 15)

	for _, cadence := range domain.Cadences {
		t.Run(string(cadence), func(t *testing.T) {
			got, err := e.CountOccurrences(domain.RecurrenceRule{Cadence: cadence, StartDate: day, EndDate: day})
			require.NoError(t, err)
			assert.Equal(t, 1, got)
		})
	}
}

func TestExpander_CountOccurrences_Limit(t *testing.T) {
	e := NewExpander(10)

	_, err := e.CountOccurrences(domain.RecurrenceRule{
		Cadence:   domain.CadenceWeekly,
		StartDate: date(2024, 1, 1),
		EndDate:   date(2025, 1, 1),
	})
	assert.ErrorIs(t, err, ErrTooManyOccurrences)
}

func TestExpander_Expand_Biweekly(t *testing.T) {
	e := NewExpander(0)

	got, err := e.Expand(domain.RecurrenceRule{
		Cadence:   domain.CadenceBiweekly,
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 29),
		BasePrice: 45,
	}, "10:00", 30)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, date(2024, 1, 1), got[0].Date)
	assert.Equal(t, date(2024, 1, 15), got[1].Date)
	assert.Equal(t, date(2024, 1, 29), got[2].Date)
	for _, o := range got {
		assert.Equal(t, "10:00", o.Time.String())
		assert.Equal(t, 30, o.DurationMinutes)
		assert.Equal(t, 45.0, o.Price)
	}
}

func TestExpander_Expand_MonthEndClamp(t *testing.T) {
	e := NewExpander(0)

	got, err := e.Expand(domain.RecurrenceRule{
		Cadence:   domain.CadenceMonthly,
		StartDate: date(2024, 1, 31),
		EndDate:   date(2024, 5, 31),
	}, "09:00", 60)
	require.NoError(t, err)

	want := []time.Time{
		date(2024, 1, 31),
		date(2024, 2, 29),
		date(2024, 3, 31),
		date(2024, 4, 30),
		date(2024, 5, 31),
	}
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i], got[i].Date, "occurrence %d", i)
	}
}

func TestExpander_Expand_MatchesCount(t *testing.T) {
	e := NewExpander(0)
	start := date(2024, 1, 31)

	for _, cadence := range domain.Cadences {
		for days := 0; days < 400; days += 13 {
			rule := domain.RecurrenceRule{Cadence: cadence, StartDate: start, EndDate: start.AddDate(0, 0, days)}

			count, err := e.CountOccurrences(rule)
			require.NoError(t, err)
			got, err := e.Expand(rule, "12:00", 60)
			require.NoError(t, err)

			require.Len(t, got, count, "%s +%d days", cadence, days)
			assert.False(t, got[len(got)-1].Date.After(rule.EndDate))
			for i := 1; i < len(got); i++ {
				assert.True(t, got[i].Date.After(got[i-1].Date))
			}
		}
	}
}

func TestExpander_Expand_InvalidInput(t *testing.T) {
	e := NewExpander(0)
	rule := domain.RecurrenceRule{Cadence: domain.CadenceWeekly, StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 8)}

	_, err := e.Expand(rule, "10:00", 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = e.Expand(rule, "noon", 60)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = e.Expand(rule, "23:30", 60)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestTotalPrice(t *testing.T) {
	assert.Equal(t, 400.0, TotalPrice(100, 4, nil))
	assert.Equal(t, 100.0, TotalPrice(100, 0, nil))
	assert.Equal(t, 250.0, TotalPrice(100, 4, &domain.Package{Price: 250, TotalSessions: 5}))
}

func TestSessionCount(t *testing.T) {
	assert.Equal(t, 4, SessionCount(4, nil))
	assert.Equal(t, 1, SessionCount(0, nil))
	assert.Equal(t, 10, SessionCount(4, &domain.Package{TotalSessions: 10}))
}

func TestSplitAmount(t *testing.T) {
	parts := SplitAmount(100, 3)
	require.Len(t, parts, 3)
	assert.Equal(t, []float64{33.34, 33.33, 33.33}, parts)

	var sum int64
	for _, p := range SplitAmount(250, 7) {
		sum += int64(p*100 + 0.5)
	}
	assert.Equal(t, int64(25000), sum)

	assert.Nil(t, SplitAmount(10, 0))
}

func TestExpander_Preview(t *testing.T) {
	e := NewExpander(0)

	p, err := e.Preview(domain.RecurrenceRule{
		Cadence:   domain.CadenceWeekly,
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 1, 22),
		BasePrice: 100,
	}, "10:00", 60, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, p.OccurrenceCount)
	assert.Len(t, p.Occurrences, 4)
	assert.Equal(t, 100.0, p.PricePerOccurrence)
	assert.Equal(t, 400.0, p.TotalPrice)
}
