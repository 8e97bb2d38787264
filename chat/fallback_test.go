package chat

import (
	"strings"
	"testing"

	"weather-assistant/models"
)

func fallbackPayload() models.WeatherPayload {
	return models.WeatherPayload{
		Location: "London",
		Current: &models.CurrentConditions{
			Temp:      21.4,
			FeelsLike: 20.1,
			Humidity:  65,
			WindSpeed: 5,
			Weather:   []models.ConditionRef{{Main: "Clouds", Description: "scattered clouds"}},
		},
		Hourly: []models.HourlyPoint{{Pop: 0.42}},
		Daily: []models.DailyPoint{
			{Temp: models.DailyTemp{Min: 12, Max: 22}},
			{
				Temp:    models.DailyTemp{Min: 10, Max: 18},
				Pop:     0.7,
				Weather: []models.ConditionRef{{Description: "light rain"}},
			},
		},
	}
}

func TestFallbackRainWithUmbrella(t *testing.T) {
	got := Fallback("Will it rain today?", fallbackPayload(), "London")

	if !strings.Contains(got, "42%") {
		t.Fatalf("answer %q missing the precipitation probability", got)
	}
	if !strings.Contains(got, "umbrella") || strings.Contains(got, "shouldn't be necessary") {
		t.Fatalf("pop above 30 must recommend an umbrella: %q", got)
	}
}

func TestFallbackRainLowChance(t *testing.T) {
	p := fallbackPayload()
	p.Hourly[0].Pop = 0.1

	got := Fallback("Do I need an umbrella?", p, "London")

	if !strings.Contains(got, "10%") || !strings.Contains(got, "shouldn't be necessary") {
		t.Fatalf("low pop answer wrong: %q", got)
	}
}

func TestFallbackTomorrow(t *testing.T) {
	got := Fallback("What about tomorrow?", fallbackPayload(), "London")

	if !strings.Contains(got, "light rain") {
		t.Fatalf("answer %q missing tomorrow's condition", got)
	}
	if !strings.Contains(got, "10°C") || !strings.Contains(got, "18°C") || !strings.Contains(got, "70%") {
		t.Fatalf("answer %q missing tomorrow's numbers", got)
	}
}

func TestFallbackTemperature(t *testing.T) {
	got := Fallback("How warm is it?", fallbackPayload(), "London")

	if !strings.Contains(got, "21.4°C") || !strings.Contains(got, "20.1°C") {
		t.Fatalf("answer %q missing current temperatures", got)
	}
}

func TestFallbackWind(t *testing.T) {
	got := Fallback("How windy is it?", fallbackPayload(), "London")

	if !strings.Contains(got, "18 km/h") {
		t.Fatalf("answer %q missing wind speed in km/h", got)
	}
}

func TestFallbackHumidity(t *testing.T) {
	got := Fallback("Is it humid?", fallbackPayload(), "London")

	if !strings.Contains(got, "65%") {
		t.Fatalf("answer %q missing humidity", got)
	}
}

func TestFallbackSummary(t *testing.T) {
	got := Fallback("What's the weather like?", fallbackPayload(), "London")

	if !strings.Contains(got, "scattered clouds") || !strings.Contains(got, "21.4°C") {
		t.Fatalf("summary answer wrong: %q", got)
	}
}

func TestFallbackWithoutData(t *testing.T) {
	got := Fallback("What's the weather like?", models.WeatherPayload{}, "Paris")

	if !strings.Contains(got, "No live weather data") || !strings.Contains(got, "Paris") {
		t.Fatalf("no-data answer wrong: %q", got)
	}
}
