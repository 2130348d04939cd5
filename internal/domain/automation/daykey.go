package automation

import (
	"fmt"
	"time"
)

// Today normalizes an instant to local midnight and returns it together with
// its YYYY-MM-DD key. The key is built from the local calendar fields, not
// from a UTC formatting of the instant, so runs near midnight in UTC-offset
// locales stay on the caller's calendar day.
func Today(now time.Time) (time.Time, string) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	key := fmt.Sprintf("%04d-%02d-%02d", day.Year(), int(day.Month()), day.Day())
	return day, key
}
