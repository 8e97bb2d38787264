// Package facts extracts structured weather facts from free-form assistant
// text and validates them against the authoritative payload.
package facts

import (
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"weather-assistant/models"
)

// Markers of the embedded data block an assistant reply may carry. Anything
// between them is expected to be a single JSON object.
const (
	blockStart = "[WEATHER_DATA]"
	blockEnd   = "[/WEATHER_DATA]"
)

// Extract parses one raw assistant reply into a Fact plus the visible text
// with any data block stripped out.
//
// A well-formed embedded block wins and marks the fact verified; a block that
// fails to parse is still stripped, logged, and the heuristic matchers run on
// the remaining text instead. No error ever escapes.
func Extract(raw string, logger *slog.Logger) (models.Fact, string) {
	cleaned, block, found := stripBlock(raw)
	if found {
		if fact, ok := parseBlock(block); ok {
			return fact, cleaned
		}
		if logger != nil {
			logger.Warn("malformed weather data block, falling back to heuristics", "block", block)
		}
	}

	fact := models.Fact{Visual: models.VisualDefault}
	for _, m := range matchers {
		m.apply(cleaned, &fact)
	}
	return fact, cleaned
}

// stripBlock removes the delimited data block from the text and returns the
// remaining visible text, the block body, and whether a block was present.
func stripBlock(raw string) (cleaned, block string, found bool) {
	start := strings.Index(raw, blockStart)
	if start < 0 {
		return strings.TrimSpace(raw), "", false
	}
	rest := raw[start+len(blockStart):]
	end := strings.Index(rest, blockEnd)
	if end < 0 {
		// unterminated block: drop everything from the start marker on
		return strings.TrimSpace(raw[:start]), strings.TrimSpace(rest), true
	}
	block = strings.TrimSpace(rest[:end])
	cleaned = raw[:start] + rest[end+len(blockEnd):]
	return strings.TrimSpace(cleaned), block, true
}

// parseBlock builds a verified fact from the JSON body of a data block.
// Every field may arrive either as a scalar or as a single-element array;
// both forms are coerced to a scalar on ingestion.
func parseBlock(block string) (models.Fact, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(block), &fields); err != nil {
		return models.Fact{}, false
	}

	fact := models.Fact{Visual: models.VisualDefault, Verified: true}
	if v, ok := scalarFloat(fields["temperature"]); ok {
		fact.Temperature = &v
	}
	if s, ok := scalarString(fields["condition"]); ok {
		fact.Condition = models.Condition(strings.ToLower(s))
	}
	if v, ok := scalarFloat(fields["precipitation"]); ok {
		p := int(v)
		fact.Precipitation = &p
	}
	if v, ok := scalarFloat(fields["wind"]); ok {
		fact.Wind = &v
	}
	if s, ok := scalarString(fields["visualType"]); ok {
		switch models.VisualType(strings.ToLower(s)) {
		case models.VisualChart:
			fact.Visual = models.VisualChart
		case models.VisualForecast:
			fact.Visual = models.VisualForecast
		}
	}
	return fact, true
}

// scalar unwraps an array-or-scalar field: the first element of an array,
// the value itself otherwise, nil for an empty array or absent field.
func scalar(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) == 0 {
			return nil
		}
		return arr[0]
	}
	return raw
}

func scalarFloat(raw json.RawMessage) (float64, bool) {
	raw = scalar(raw)
	if raw == nil {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return v, true
	}
	// numbers quoted as strings show up often enough to tolerate
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v, true
		}
	}
	return 0, false
}

func scalarString(raw json.RawMessage) (string, bool) {
	raw = scalar(raw)
	if raw == nil {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// matcher is one independent heuristic extraction; matchers run in fixed
// priority order and each fills at most its own field.
type matcher struct {
	name  string
	apply func(text string, fact *models.Fact)
}

var matchers = []matcher{
	{"temperature", matchTemperature},
	{"precipitation", matchPrecipitation},
	{"wind", matchWind},
	{"visual", matchVisual},
	{"condition", matchCondition},
}

var temperaturePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(-?\d+(?:\.\d+)?)\s*°\s*C`),
	regexp.MustCompile(`(?i)(-?\d+(?:\.\d+)?)\s*degrees`),
	regexp.MustCompile(`(?i)temperature\s+(?:is|of|at)\s+(-?\d+(?:\.\d+)?)`),
}

func matchTemperature(text string, fact *models.Fact) {
	for _, re := range temperaturePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				fact.Temperature = &v
			}
			return
		}
	}
}

var precipitationPattern = regexp.MustCompile(
	`(?i)(\d+)\s*%\s*(?:chance|probability|likelihood|risk)\s+of\s+(?:precipitation|rain|snow|showers)`)

func matchPrecipitation(text string, fact *models.Fact) {
	if m := precipitationPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			fact.Precipitation = &v
		}
	}
}

var windPattern = regexp.MustCompile(
	`(?i)wind(?:\s+speed)?(?:\s+(?:of|at|is))?\s+(-?\d+(?:\.\d+)?)\s*(?:km/h|kph|mph|m/s)`)

func matchWind(text string, fact *models.Fact) {
	if m := windPattern.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			fact.Wind = &v
		}
	}
}

func matchVisual(text string, fact *models.Fact) {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "forecast") &&
		(strings.Contains(lowered, "days") || strings.Contains(lowered, "tomorrow")):
		fact.Visual = models.VisualForecast
	case strings.Contains(lowered, "average") || strings.Contains(lowered, "trend") ||
		strings.Contains(lowered, "comparison") || strings.Contains(lowered, "historical"):
		fact.Visual = models.VisualChart
	}
}

// conditionKeywords is scanned in order; the first keyword found in the text
// decides the condition.
var conditionKeywords = []struct {
	keyword   string
	condition models.Condition
}{
	{"sunny", models.ConditionClear},
	{"clear", models.ConditionClear},
	{"partly cloudy", models.ConditionClouds},
	{"cloud", models.ConditionClouds},
	{"overcast", models.ConditionClouds},
	{"rain", models.ConditionRain},
	{"shower", models.ConditionRain},
	{"drizzle", models.ConditionRain},
	{"storm", models.ConditionThunderstorm},
	{"thunder", models.ConditionThunderstorm},
	{"lightning", models.ConditionThunderstorm},
	{"snow", models.ConditionSnow},
	{"sleet", models.ConditionSnow},
	{"hail", models.ConditionSnow},
	{"fog", models.ConditionMist},
	{"mist", models.ConditionMist},
	{"haze", models.ConditionMist},
}

func matchCondition(text string, fact *models.Fact) {
	lowered := strings.ToLower(text)
	for _, kw := range conditionKeywords {
		if strings.Contains(lowered, kw.keyword) {
			fact.Condition = kw.condition
			return
		}
	}
}
