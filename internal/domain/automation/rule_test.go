package automation

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// week starting Sunday 2025-03-09, one date per weekday
func weekDates(t *testing.T) [7]time.Time {
	t.Helper()
	var week [7]time.Time
	for i := 0; i < 7; i++ {
		d := time.Date(2025, 3, 9+i, 0, 0, 0, 0, time.Local)
		require.Equal(t, time.Weekday(i), d.Weekday())
		week[i] = d
	}
	return week
}

func recurring(text string) *Automation {
	return &Automation{
		FrequencyType: FrequencyRecurring,
		FrequencyTime: sql.NullString{String: text, Valid: true},
	}
}

func TestIsDue_DailyTokens(t *testing.T) {
	week := weekDates(t)
	for _, text := range []string{"každý den", "denně", "Každý den ráno", "Opakovat denně"} {
		a := recurring(text)
		for _, day := range week {
			assert.True(t, IsDue(a, day), "%q should be due on %s", text, day.Weekday())
		}
	}
}

func TestIsDue_DailyTokenPrecedesDayName(t *testing.T) {
	week := weekDates(t)
	a := recurring("každý den, hlavně v pondělí")
	for _, day := range week {
		assert.True(t, IsDue(a, day), "daily token must short-circuit on %s", day.Weekday())
	}
}

func TestIsDue_DayTokens_AllInflections(t *testing.T) {
	week := weekDates(t)
	for _, entry := range dayTokens {
		a := recurring("Opakovat: " + entry.token)
		for wd, day := range week {
			want := time.Weekday(wd) == entry.weekday
			assert.Equal(t, want, IsDue(a, day), "token %q on %s", entry.token, day.Weekday())
		}
	}
}

func TestIsDue_MultiDayAbbreviationList(t *testing.T) {
	week := weekDates(t)
	a := recurring("PO, ST, PÁ")
	due := map[time.Weekday]bool{time.Monday: true, time.Wednesday: true, time.Friday: true}
	for _, day := range week {
		assert.Equal(t, due[day.Weekday()], IsDue(a, day), "on %s", day.Weekday())
	}
}

func TestIsDue_Recurring_EmptyFrequencyNeverDue(t *testing.T) {
	week := weekDates(t)
	cases := []*Automation{
		{FrequencyType: FrequencyRecurring},
		recurring(""),
		recurring("   "),
	}
	for _, a := range cases {
		for _, day := range week {
			assert.False(t, IsDue(a, day))
		}
	}
}

func TestIsDue_Recurring_UnknownTextNeverDue(t *testing.T) {
	week := weekDates(t)
	a := recurring("jednou za čas")
	for _, day := range week {
		assert.False(t, IsDue(a, day), "on %s", day.Weekday())
	}
}

func TestIsDue_OneTime_ExactDayOnly(t *testing.T) {
	scheduled := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	a := &Automation{
		FrequencyType: FrequencyOneTime,
		ScheduledDate: sql.NullTime{Time: scheduled, Valid: true},
	}

	assert.True(t, IsDue(a, scheduled))

	dayAfter := scheduled.AddDate(0, 0, 1)
	assert.False(t, IsDue(a, dayAfter))
	assert.False(t, IsDue(a, scheduled.AddDate(0, 0, -1)))
}

func TestIsDue_OneTime_IgnoresTimeOfDay(t *testing.T) {
	scheduled := time.Date(2025, 3, 10, 14, 45, 0, 0, time.Local)
	a := &Automation{
		FrequencyType: FrequencyOneTime,
		ScheduledDate: sql.NullTime{Time: scheduled, Valid: true},
	}
	today, _ := Today(time.Date(2025, 3, 10, 8, 0, 0, 0, time.Local))
	assert.True(t, IsDue(a, today))
}

func TestIsDue_OneTime_CrossLocationSameCalendarDay(t *testing.T) {
	// DATE columns come back from the driver as UTC-located values; the
	// comparison must still hit the same calendar day in the server zone.
	a := &Automation{
		FrequencyType: FrequencyOneTime,
		ScheduledDate: sql.NullTime{Time: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Valid: true},
	}

	zone := time.FixedZone("UTC+1", 60*60)
	today, _ := Today(time.Date(2025, 3, 10, 9, 0, 0, 0, zone))
	assert.True(t, IsDue(a, today))

	dayAfter, _ := Today(time.Date(2025, 3, 11, 9, 0, 0, 0, zone))
	assert.False(t, IsDue(a, dayAfter))

	zoneWest := time.FixedZone("UTC-5", -5*60*60)
	todayWest, _ := Today(time.Date(2025, 3, 10, 9, 0, 0, 0, zoneWest))
	assert.True(t, IsDue(a, todayWest))
}

func TestIsDue_OneTime_MissingDateNeverDue(t *testing.T) {
	a := &Automation{FrequencyType: FrequencyOneTime}
	today, _ := Today(time.Now())
	assert.False(t, IsDue(a, today))
}

func TestIsDue_UnknownFrequencyTypeNeverDue(t *testing.T) {
	a := recurring("každý den")
	a.FrequencyType = FrequencyType("weekly")
	today, _ := Today(time.Now())
	assert.False(t, IsDue(a, today))
}

func TestIsDue_SingleAbbreviations_WholeWeek(t *testing.T) {
	week := weekDates(t)
	for abbr, weekday := range dayAbbreviations {
		a := recurring(fmt.Sprintf("vždy v %s", abbr))
		for _, day := range week {
			want := day.Weekday() == weekday
			assert.Equal(t, want, IsDue(a, day), "abbr %q on %s", abbr, day.Weekday())
		}
	}
}
