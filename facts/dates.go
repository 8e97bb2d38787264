package facts

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "January 2, 2006"

const monthNames = `January|February|March|April|May|June|July|August|September|October|November|December`

// datePhrase matches an explicit month-day date with an optional ordinal
// suffix and an optional year.
var datePhrase = `(` + monthNames + `)\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?`

// relativeDateRe matches "tomorrow"/"today" immediately followed by an
// explicit date phrase, with or without an intervening "which is".
var relativeDateRe = regexp.MustCompile(`(?i)\b(tomorrow|today)\b,?(?:\s+which\s+is)?[\s,]+` + datePhrase)

var strayDateRe = regexp.MustCompile(`(?i)\b` + datePhrase + `\b`)

var tomorrowRe = regexp.MustCompile(`(?i)\btomorrow\b`)

// CorrectDateReferences rewrites wrong explicit dates attached to "tomorrow"
// or "today" into the real date, and replaces stray far-future dates when the
// surrounding text talks about tomorrow. Running it on already-corrected text
// changes nothing.
func CorrectDateReferences(text string, now time.Time) string {
	tomorrow := now.AddDate(0, 0, 1)

	out := relativeDateRe.ReplaceAllStringFunc(text, func(match string) string {
		m := relativeDateRe.FindStringSubmatch(match)
		word := m[1]
		actual := now
		if strings.EqualFold(word, "tomorrow") {
			actual = tomorrow
		}
		claimed, ok := parseDatePhrase(m[2], m[3], m[4], now)
		if ok && sameDay(claimed, actual) {
			return match
		}
		return fmt.Sprintf("%s, which is %s", word, actual.Format(dateLayout))
	})

	// A date more than 30 days out, in a sentence that also says "tomorrow",
	// is almost certainly the model inventing a calendar.
	if tomorrowRe.MatchString(out) {
		horizon := now.AddDate(0, 0, 30)
		out = strayDateRe.ReplaceAllStringFunc(out, func(match string) string {
			m := strayDateRe.FindStringSubmatch(match)
			if m[3] == "" {
				return match // no explicit year, leave it alone
			}
			claimed, ok := parseDatePhrase(m[1], m[2], m[3], now)
			if !ok || !claimed.After(horizon) {
				return match
			}
			return tomorrow.Format(dateLayout)
		})
	}
	return out
}

func parseDatePhrase(month, day, year string, now time.Time) (time.Time, bool) {
	mo, ok := monthByName(month)
	if !ok {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil || d < 1 || d > 31 {
		return time.Time{}, false
	}
	y := now.Year()
	if year != "" {
		if y, err = strconv.Atoi(year); err != nil {
			return time.Time{}, false
		}
	}
	return time.Date(y, mo, d, 0, 0, 0, 0, now.Location()), true
}

func monthByName(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return 0, false
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
