package facts

import (
	"fmt"
	"math"
	"strings"
	"time"

	"weather-assistant/models"
)

// Tolerances for the per-field accuracy checks. A difference strictly above
// the tolerance triggers a correction; a difference exactly at it does not.
const (
	temperatureToleranceC  = 2.0
	precipitationTolerance = 15
	windToleranceKmh       = 5.0
)

// Validate checks an extracted fact against the authoritative payload,
// overwrites inaccurate fields, and rewrites wrong date references in the
// response text. It returns the corrected fact, a human-readable correction
// note (empty when nothing was wrong), and the corrected text.
//
// Checks whose ground truth is missing from the payload are skipped silently.
func Validate(fact models.Fact, payload models.WeatherPayload, responseText string, now time.Time) (models.Fact, string, string) {
	correctedText := CorrectDateReferences(responseText, now)
	var notes []string

	if fact.Temperature != nil {
		if truth, ok := payload.CurrentTemp(); ok {
			if math.Abs(*fact.Temperature-truth) > temperatureToleranceC {
				v := truth
				fact.Temperature = &v
				fact.Verified = false
				notes = append(notes, fmt.Sprintf("current temperature is actually %.1f°C", truth))
			}
		}
	}

	if fact.Precipitation != nil {
		if truth, ok := payload.NextHourPop(); ok {
			if abs(*fact.Precipitation-truth) > precipitationTolerance {
				v := truth
				fact.Precipitation = &v
				fact.Verified = false
				notes = append(notes, fmt.Sprintf("precipitation probability is %d%%", truth))
			}
		}
	}

	if fact.Wind != nil {
		if truthKmh, ok := payload.CurrentWindKmh(); ok {
			rounded := math.Round(truthKmh)
			if math.Abs(*fact.Wind-rounded) > windToleranceKmh {
				v := rounded
				fact.Wind = &v
				fact.Verified = false
				notes = append(notes, fmt.Sprintf("current wind speed is %.0f km/h", rounded))
			}
		}
	}

	if fact.Condition != "" {
		if truth, ok := payload.CurrentCondition(); ok && string(fact.Condition) != truth {
			if note := significantMismatchNote(models.Condition(truth), fact.Condition); note != "" {
				notes = append(notes, note)
			}
			fact.Condition = models.Condition(truth)
			fact.Verified = false
		}
	}

	fact.CorrectionNote = strings.TrimSpace(strings.Join(notes, " "))
	return fact, fact.CorrectionNote, correctedText
}

// significantMismatchNote returns a note only for mismatches worth calling
// out: claiming clear skies during rain, or missing a thunderstorm or snow.
func significantMismatchNote(actual, claimed models.Condition) string {
	switch {
	case actual == models.ConditionRain && claimed == models.ConditionClear:
		return "it's actually raining at the moment"
	case actual == models.ConditionThunderstorm:
		return "there's actually a thunderstorm right now"
	case actual == models.ConditionSnow:
		return "it's actually snowing right now"
	}
	return ""
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
