// Package series turns a raw weather payload into chart-ready numeric arrays
// for one metric over one time window.
package series

import (
	"math"
	"time"

	"weather-assistant/models"
)

// forecastCapDays limits the forecast side to 3 entries whenever a window
// narrower than "all" is selected. The cap applies to the 7-day window too;
// that asymmetry is a product decision, not an oversight.
const forecastCapDays = 3

// Build derives a Series from the payload for the given window and metric.
// Pure function over in-memory data; NaN and Inf samples are dropped here so
// the geometry mapper never sees them.
func Build(payload models.WeatherPayload, window models.TimeWindow, metric models.MetricKind) models.Series {
	historic := filterHistoric(payload.Historic, window)
	forecast := filterForecast(payload.Daily, window)

	s := models.Series{Metric: metric}
	s.HistoricLabels = historicLabels(historic)
	s.ForecastLabels = forecastLabels(forecast)

	switch metric {
	case models.MetricPrecipitation:
		s.Unit = "%"
		s.Synthesized = true
		for _, h := range historic {
			s.Historic = appendFinite(s.Historic, SynthesizedPrecip(h.Humidity))
		}
		for _, d := range forecast {
			s.Forecast = appendFinite(s.Forecast, d.Pop)
		}
	case models.MetricHumidity:
		s.Unit = "%"
		for _, h := range historic {
			s.Historic = appendFinite(s.Historic, float64(h.Humidity))
		}
		for _, d := range forecast {
			s.Forecast = appendFinite(s.Forecast, float64(d.Humidity))
		}
	default:
		s.Metric = models.MetricTemperature
		s.Unit = "°C"
		for _, h := range historic {
			s.HistoricMin = appendFinite(s.HistoricMin, h.Temp.Min)
			s.HistoricMax = appendFinite(s.HistoricMax, h.Temp.Max)
			s.HistoricAvg = appendFinite(s.HistoricAvg, h.Temp.Avg)
		}
		for _, d := range forecast {
			s.ForecastMin = appendFinite(s.ForecastMin, d.Temp.Min)
			s.ForecastMax = appendFinite(s.ForecastMax, d.Temp.Max)
			// the day value stands in for an average on the forecast side
			s.ForecastAvg = appendFinite(s.ForecastAvg, d.Temp.Day)
		}
	}
	return s
}

// SynthesizedPrecip fabricates a precipitation proxy in [0,1] from a recorded
// humidity percentage. There is no real historical precipitation source; the
// UI labels these values as simulated.
func SynthesizedPrecip(humidity int) float64 {
	v := (float64(humidity) - 40) / 2
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return v / 100
}

// filterHistoric slices the historic records from the end per the window.
func filterHistoric(historic []models.HistoricDay, window models.TimeWindow) []models.HistoricDay {
	switch window {
	case models.WindowLast7Days:
		return tail(historic, 7)
	case models.WindowLast3Days:
		return tail(historic, 3)
	default:
		return historic
	}
}

// filterForecast caps the daily forecast when a narrowed window is selected.
func filterForecast(daily []models.DailyPoint, window models.TimeWindow) []models.DailyPoint {
	if window == models.WindowAll {
		return daily
	}
	if len(daily) > forecastCapDays {
		return daily[:forecastCapDays]
	}
	return daily
}

func tail[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func appendFinite(dst []float64, v float64) []float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return dst
	}
	return append(dst, v)
}

const labelLayout = "Jan 2"

func historicLabels(historic []models.HistoricDay) []string {
	labels := make([]string, 0, len(historic))
	for _, h := range historic {
		if t, err := time.Parse("2006-01-02", h.Date); err == nil {
			labels = append(labels, t.Format(labelLayout))
		} else {
			labels = append(labels, h.Date)
		}
	}
	return labels
}

func forecastLabels(daily []models.DailyPoint) []string {
	labels := make([]string, 0, len(daily))
	for _, d := range daily {
		labels = append(labels, time.Unix(d.Dt, 0).UTC().Format(labelLayout))
	}
	return labels
}
