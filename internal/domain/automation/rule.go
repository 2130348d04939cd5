package automation

import (
	"strings"
	"time"
	"unicode"
)

// dailyTokens mark a frequency text as "every day", regardless of weekday.
var dailyTokens = []string{"každý den", "denně"}

// dayTokens maps Czech weekday tokens to time.Weekday (Sunday=0..Saturday=6).
// Every inflected form of each weekday name is listed alongside its
// two-letter abbreviation. Matching is deliberately a substring scan over the
// lowercased frequency text, not a parser; see IsDue.
var dayTokens = []struct {
	token   string
	weekday time.Weekday
}{
	{"neděle", time.Sunday},
	{"neděli", time.Sunday},
	{"pondělí", time.Monday},
	{"pondělky", time.Monday},
	{"úterý", time.Tuesday},
	{"středa", time.Wednesday},
	{"středu", time.Wednesday},
	{"středy", time.Wednesday},
	{"čtvrtek", time.Thursday},
	{"čtvrtky", time.Thursday},
	{"pátek", time.Friday},
	{"pátky", time.Friday},
	{"sobota", time.Saturday},
	{"sobotu", time.Saturday},
	{"soboty", time.Saturday},
	{"po", time.Monday},
	{"út", time.Tuesday},
	{"st", time.Wednesday},
	{"čt", time.Thursday},
	{"pá", time.Friday},
	{"so", time.Saturday},
	{"ne", time.Sunday},
}

// dayAbbreviations maps stand-alone two-letter abbreviations, as they appear
// in lists like "PO, ST, PÁ", to their weekday.
var dayAbbreviations = map[string]time.Weekday{
	"po": time.Monday,
	"út": time.Tuesday,
	"st": time.Wednesday,
	"čt": time.Thursday,
	"pá": time.Friday,
	"so": time.Saturday,
	"ne": time.Sunday,
}

// IsDue decides whether an automation should materialize an instance on the
// given day. today must already be normalized to local midnight (see Today).
//
// The recurring branch is a heuristic substring matcher over a fixed Czech
// vocabulary. The daily-token check runs before the day-name check, so a text
// containing both "denně" and a weekday name is due every day; callers must
// not reorder the checks.
func IsDue(a *Automation, today time.Time) bool {
	switch a.FrequencyType {
	case FrequencyOneTime:
		if !a.ScheduledDate.Valid {
			return false
		}
		// Compare day keys, not instants: the driver hands DATE columns
		// back as UTC-located values, so midnight-to-midnight instant
		// equality would miss the same calendar day on a non-UTC server.
		_, scheduledKey := Today(a.ScheduledDate.Time)
		_, todayKey := Today(today)
		return scheduledKey == todayKey

	case FrequencyRecurring:
		if !a.FrequencyTime.Valid {
			return false
		}
		text := strings.ToLower(strings.TrimSpace(a.FrequencyTime.String))
		if text == "" {
			return false
		}

		for _, token := range dailyTokens {
			if strings.Contains(text, token) {
				return true
			}
		}

		for _, entry := range dayTokens {
			if entry.weekday == today.Weekday() && strings.Contains(text, entry.token) {
				return true
			}
		}

		for _, word := range splitWords(text) {
			if weekday, ok := dayAbbreviations[word]; ok && weekday == today.Weekday() {
				return true
			}
		}
		return false
	}

	// Unknown frequency types are inert, not an error.
	return false
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
