package facts

import (
	"strings"
	"testing"

	"weather-assistant/models"
)

func TestExtractStructuredBlock(t *testing.T) {
	raw := `It's currently raining in London.
[WEATHER_DATA]{"temperature": 14.5, "condition": "Rain", "precipitation": 80, "wind": 22, "visualType": "forecast"}[/WEATHER_DATA]
Carry an umbrella.`

	fact, cleaned := Extract(raw, nil)

	if !fact.Verified {
		t.Fatal("structured block must produce a verified fact")
	}
	if fact.Temperature == nil || *fact.Temperature != 14.5 {
		t.Fatalf("temperature = %v, want 14.5", fact.Temperature)
	}
	if fact.Condition != models.ConditionRain {
		t.Fatalf("condition = %q, want rain", fact.Condition)
	}
	if fact.Precipitation == nil || *fact.Precipitation != 80 {
		t.Fatalf("precipitation = %v, want 80", fact.Precipitation)
	}
	if fact.Wind == nil || *fact.Wind != 22 {
		t.Fatalf("wind = %v, want 22", fact.Wind)
	}
	if fact.Visual != models.VisualForecast {
		t.Fatalf("visual = %q, want forecast", fact.Visual)
	}
	if strings.Contains(cleaned, "[WEATHER_DATA]") || strings.Contains(cleaned, "[/WEATHER_DATA]") {
		t.Fatalf("markers leaked into cleaned text: %q", cleaned)
	}
	if !strings.Contains(cleaned, "Carry an umbrella.") {
		t.Fatalf("surrounding text lost: %q", cleaned)
	}
}

func TestExtractArrayWrappedFields(t *testing.T) {
	raw := `[WEATHER_DATA]{"temperature": [21], "condition": ["Clear"], "wind": ["12.5"]}[/WEATHER_DATA]Sunny out.`

	fact, _ := Extract(raw, nil)

	if fact.Temperature == nil || *fact.Temperature != 21 {
		t.Fatalf("temperature = %v, want 21", fact.Temperature)
	}
	if fact.Condition != models.ConditionClear {
		t.Fatalf("condition = %q, want clear", fact.Condition)
	}
	if fact.Wind == nil || *fact.Wind != 12.5 {
		t.Fatalf("quoted wind = %v, want 12.5", fact.Wind)
	}
}

func TestExtractMalformedBlockFallsBack(t *testing.T) {
	raw := `[WEATHER_DATA]{not json at all[/WEATHER_DATA] It is sunny and 25°C.`

	fact, cleaned := Extract(raw, nil)

	if fact.Verified {
		t.Fatal("malformed block must not verify")
	}
	if strings.Contains(cleaned, "[WEATHER_DATA]") {
		t.Fatalf("malformed block not stripped: %q", cleaned)
	}
	if fact.Temperature == nil || *fact.Temperature != 25 {
		t.Fatalf("temperature = %v, want 25 from heuristics", fact.Temperature)
	}
	if fact.Condition != models.ConditionClear {
		t.Fatalf("condition = %q, want clear", fact.Condition)
	}
}

func TestExtractUnterminatedBlock(t *testing.T) {
	raw := `Warm today. [WEATHER_DATA]{"temperature": 30`

	fact, cleaned := Extract(raw, nil)

	if cleaned != "Warm today." {
		t.Fatalf("cleaned = %q, want text before the marker", cleaned)
	}
	if fact.Verified {
		t.Fatal("truncated block must not verify")
	}
}

func TestExtractHeuristics(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		check func(t *testing.T, f models.Fact)
	}{
		{"degrees", "It's about 18 degrees outside.", func(t *testing.T, f models.Fact) {
			if f.Temperature == nil || *f.Temperature != 18 {
				t.Fatalf("temperature = %v, want 18", f.Temperature)
			}
		}},
		{"temperature is", "The temperature is 7 right now.", func(t *testing.T, f models.Fact) {
			if f.Temperature == nil || *f.Temperature != 7 {
				t.Fatalf("temperature = %v, want 7", f.Temperature)
			}
		}},
		{"negative celsius", "Bundle up, it's -3.5°C.", func(t *testing.T, f models.Fact) {
			if f.Temperature == nil || *f.Temperature != -3.5 {
				t.Fatalf("temperature = %v, want -3.5", f.Temperature)
			}
		}},
		{"precipitation", "There's a 60% chance of rain this afternoon.", func(t *testing.T, f models.Fact) {
			if f.Precipitation == nil || *f.Precipitation != 60 {
				t.Fatalf("precipitation = %v, want 60", f.Precipitation)
			}
		}},
		{"wind", "Wind at 20 km/h from the west.", func(t *testing.T, f models.Fact) {
			if f.Wind == nil || *f.Wind != 20 {
				t.Fatalf("wind = %v, want 20", f.Wind)
			}
		}},
		{"plain percent ignored", "Humidity sits at 80% today.", func(t *testing.T, f models.Fact) {
			if f.Precipitation != nil {
				t.Fatalf("precipitation = %v, want nil for a bare percentage", f.Precipitation)
			}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fact, _ := Extract(tc.text, nil)
			if fact.Verified {
				t.Fatal("heuristic facts are never verified")
			}
			tc.check(t, fact)
		})
	}
}

func TestExtractVisualType(t *testing.T) {
	cases := []struct {
		text string
		want models.VisualType
	}{
		{"Here's the forecast for the next 5 days.", models.VisualForecast},
		{"The forecast for tomorrow looks dry.", models.VisualForecast},
		{"The average temperature has been rising.", models.VisualChart},
		{"Compared to the historical trend it's mild.", models.VisualChart},
		{"It's nice out.", models.VisualDefault},
	}
	for _, tc := range cases {
		fact, _ := Extract(tc.text, nil)
		if fact.Visual != tc.want {
			t.Fatalf("visual for %q = %q, want %q", tc.text, fact.Visual, tc.want)
		}
	}
}

func TestExtractConditionKeywordOrder(t *testing.T) {
	cases := []struct {
		text string
		want models.Condition
	}{
		{"Cloudy with a chance of rain.", models.ConditionClouds},
		{"Sunny spells between showers.", models.ConditionClear},
		{"Thunder and lightning expected.", models.ConditionThunderstorm},
		{"Light drizzle all morning.", models.ConditionRain},
		{"Dense fog until noon.", models.ConditionMist},
		{"Sleet turning to snow.", models.ConditionSnow},
	}
	for _, tc := range cases {
		fact, _ := Extract(tc.text, nil)
		if fact.Condition != tc.want {
			t.Fatalf("condition for %q = %q, want %q", tc.text, fact.Condition, tc.want)
		}
	}
}
