package automation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToday_StripsTimeOfDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 17, 42, 13, 500, time.Local)
	day, key := Today(now)

	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local), day)
	assert.Equal(t, "2025-03-10", key)
}

func TestToday_KeyUsesLocalCalendarFields(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC; the key must follow the
	// local calendar, not a UTC rendering.
	zone := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, zone)

	day, key := Today(now)
	assert.Equal(t, "2025-03-10", key)
	assert.Equal(t, zone, day.Location())
	assert.Equal(t, 0, day.Hour())

	// Same guard on the other side of midnight in a positive offset.
	zoneEast := time.FixedZone("UTC+2", 2*60*60)
	_, keyEast := Today(time.Date(2025, 3, 10, 0, 30, 0, 0, zoneEast))
	assert.Equal(t, "2025-03-10", keyEast)
}

func TestToday_PadsSingleDigitFields(t *testing.T) {
	_, key := Today(time.Date(2025, 1, 5, 9, 0, 0, 0, time.Local))
	assert.Equal(t, "2025-01-05", key)
}
