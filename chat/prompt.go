package chat

import (
	"fmt"
	"strings"
	"time"

	"weather-assistant/models"
)

// maxVerbatimTurns is how many recent conversation turns are sent to the
// model verbatim; older user questions are flattened into one summary line.
const maxVerbatimTurns = 10

// BuildPrompt assembles the model prompt: a system preamble embedding a
// trimmed digest of the authoritative payload, the recent conversation, and
// the new query.
func BuildPrompt(payload models.WeatherPayload, history []models.Turn, query, place string) string {
	var b strings.Builder

	b.WriteString("You are a weather assistant for a sports facility booking site. ")
	b.WriteString("Answer using only the weather data below. Keep answers short and friendly.\n")
	fmt.Fprintf(&b, "You may append exactly one machine-readable block of the form %s{\"temperature\": ..., \"condition\": ..., \"precipitation\": ..., \"wind\": ..., \"visualType\": ...}%s after your answer.\n\n",
		"[WEATHER_DATA]", "[/WEATHER_DATA]")

	fmt.Fprintf(&b, "Weather data for %s:\n%s\n", place, payloadDigest(payload))

	older, recent := splitHistory(history)
	if len(older) > 0 {
		fmt.Fprintf(&b, "Earlier user questions: %s\n", strings.Join(older, "; "))
	}
	for _, turn := range recent {
		role := "User"
		if turn.Role == "assistant" {
			role = "Assistant"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, turn.Text)
	}

	fmt.Fprintf(&b, "User: %s\nAssistant:", query)
	return b.String()
}

// splitHistory returns the flattened questions from turns beyond the
// verbatim window, plus the recent turns kept as-is.
func splitHistory(history []models.Turn) (older []string, recent []models.Turn) {
	if len(history) <= maxVerbatimTurns {
		return nil, history
	}
	cut := len(history) - maxVerbatimTurns
	for _, turn := range history[:cut] {
		if turn.Role == "user" {
			older = append(older, turn.Text)
		}
	}
	return older, history[cut:]
}

// payloadDigest renders the reduced field set the model is allowed to see.
func payloadDigest(p models.WeatherPayload) string {
	var b strings.Builder
	if p.Current != nil {
		condition := ""
		if len(p.Current.Weather) > 0 {
			condition = p.Current.Weather[0].Description
		}
		fmt.Fprintf(&b, "Now: %.1f°C (feels like %.1f°C), %s, humidity %d%%, wind %.0f km/h, pressure %d hPa\n",
			p.Current.Temp, p.Current.FeelsLike, condition, p.Current.Humidity,
			p.Current.WindSpeed*3.6, p.Current.Pressure)
	}
	if pop, ok := p.NextHourPop(); ok {
		fmt.Fprintf(&b, "Next hour: %d%% chance of precipitation\n", pop)
	}
	for i, d := range p.Daily {
		if i >= 5 {
			break
		}
		condition := ""
		if len(d.Weather) > 0 {
			condition = d.Weather[0].Main
		}
		fmt.Fprintf(&b, "Day %d (%s): %s, %.0f-%.0f°C, precipitation %.0f%%\n",
			i, time.Unix(d.Dt, 0).UTC().Format("Jan 2"), condition,
			d.Temp.Min, d.Temp.Max, d.Pop*100)
	}
	if n := len(p.Historic); n > 0 {
		fmt.Fprintf(&b, "Recorded history: %d days ending %s\n", n, p.Historic[n-1].Date)
	}
	return b.String()
}
