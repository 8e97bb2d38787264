package chat

import (
	"fmt"
	"strings"

	"weather-assistant/models"
)

// Fallback deterministically answers common weather questions straight from
// the payload, for when the conversational model is unavailable. It never
// touches the network and never mentions the model.
func Fallback(query string, payload models.WeatherPayload, place string) string {
	q := strings.ToLower(query)

	if containsAny(q, "rain", "precipitation", "shower", "umbrella", "wet") {
		if pop, ok := payload.NextHourPop(); ok {
			answer := fmt.Sprintf("There's a %d%% chance of rain in %s over the next hour.", pop, place)
			if pop > 30 {
				return answer + " You might want to bring an umbrella."
			}
			return answer + " An umbrella shouldn't be necessary."
		}
	}

	if strings.Contains(q, "tomorrow") && len(payload.Daily) > 1 {
		d := payload.Daily[1]
		condition := "similar conditions"
		if len(d.Weather) > 0 {
			condition = d.Weather[0].Description
		}
		return fmt.Sprintf("Tomorrow in %s expect %s, with temperatures between %.0f°C and %.0f°C and a %.0f%% chance of precipitation.",
			place, condition, d.Temp.Min, d.Temp.Max, d.Pop*100)
	}

	if containsAny(q, "temperature", "hot", "cold", "warm") && payload.Current != nil {
		return fmt.Sprintf("It's currently %.1f°C in %s, and it feels like %.1f°C.",
			payload.Current.Temp, place, payload.Current.FeelsLike)
	}

	if strings.Contains(q, "wind") {
		if kmh, ok := payload.CurrentWindKmh(); ok {
			return fmt.Sprintf("The wind in %s is currently around %.0f km/h.", place, kmh)
		}
	}

	if strings.Contains(q, "humid") && payload.Current != nil {
		return fmt.Sprintf("The humidity in %s is currently %d%%.", place, payload.Current.Humidity)
	}

	return summary(payload, place)
}

// summary is the catch-all current-conditions answer.
func summary(payload models.WeatherPayload, place string) string {
	if payload.Current == nil {
		return fmt.Sprintf("No live weather data is available for %s right now.", place)
	}
	condition := "steady conditions"
	if len(payload.Current.Weather) > 0 {
		condition = payload.Current.Weather[0].Description
	}
	return fmt.Sprintf("Right now in %s it's %.1f°C with %s, humidity at %d%% and wind around %.0f km/h.",
		place, payload.Current.Temp, condition, payload.Current.Humidity, payload.Current.WindSpeed*3.6)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
