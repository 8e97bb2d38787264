package models

import (
	"math"
	"strings"
	"time"
)

// ConditionRef describes one weather condition entry as reported by a provider.
type ConditionRef struct {
	Main        string `json:"main"`        // e.g. "Rain", "Clear"
	Description string `json:"description"` // short text description
	Icon        string `json:"icon"`        // icon code
}

// CurrentConditions holds the current observation for a location.
type CurrentConditions struct {
	Temp      float64        `json:"temp"`       // in Celsius
	FeelsLike float64        `json:"feels_like"` // in Celsius
	Humidity  int            `json:"humidity"`   // percentage
	WindSpeed float64        `json:"wind_speed"` // in m/s
	Pressure  int            `json:"pressure"`   // in hPa
	Weather   []ConditionRef `json:"weather"`
}

// HourlyPoint is one hourly forecast step.
type HourlyPoint struct {
	Dt        int64          `json:"dt"`         // unix seconds
	Temp      float64        `json:"temp"`       // in Celsius
	Pop       float64        `json:"pop"`        // precipitation probability, 0-1
	Humidity  int            `json:"humidity"`   // percentage
	WindSpeed float64        `json:"wind_speed"` // in m/s
	Weather   []ConditionRef `json:"weather"`
}

// DailyTemp carries the per-day temperature summary of a forecast entry.
type DailyTemp struct {
	Day float64 `json:"day"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DailyPoint is one daily forecast entry. Index 0 of a payload's Daily slice
// is always today.
type DailyPoint struct {
	Dt        int64          `json:"dt"` // unix seconds
	Temp      DailyTemp      `json:"temp"`
	Humidity  int            `json:"humidity"`
	Pop       float64        `json:"pop"` // 0-1
	WindSpeed float64        `json:"wind_speed"`
	Weather   []ConditionRef `json:"weather"`
	Sunrise   int64          `json:"sunrise"`
	Sunset    int64          `json:"sunset"`
}

// HistoricTemp carries the recorded temperature summary for one past day.
type HistoricTemp struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// HistoricDay is one recorded past day. Historic records never overlap the
// forecast: the newest record is always the day before today.
type HistoricDay struct {
	Date      string       `json:"date"` // ISO date, YYYY-MM-DD
	Temp      HistoricTemp `json:"temp"`
	Humidity  int          `json:"humidity"`   // percentage
	WindSpeed float64      `json:"wind_speed"` // in m/s
	Weather   string       `json:"weather"`    // condition main, e.g. "Clouds"
	Icon      string       `json:"icon"`
}

// WeatherPayload is the full weather data object for one location. Current is
// nil when no current observation is available; the slices may be empty but
// are never nil after a successful fetch.
type WeatherPayload struct {
	Provider string             `json:"provider"`
	Location string             `json:"location"`
	Current  *CurrentConditions `json:"current"`
	Hourly   []HourlyPoint      `json:"hourly"`
	Daily    []DailyPoint       `json:"daily"`
	Historic []HistoricDay      `json:"historic"`
	Updated  time.Time          `json:"updated"` // when this payload was fetched
}

// CurrentTemp returns the current temperature and whether one is available.
func (p WeatherPayload) CurrentTemp() (float64, bool) {
	if p.Current == nil {
		return 0, false
	}
	return p.Current.Temp, true
}

// CurrentWindKmh returns the current wind speed converted to km/h.
func (p WeatherPayload) CurrentWindKmh() (float64, bool) {
	if p.Current == nil {
		return 0, false
	}
	return p.Current.WindSpeed * 3.6, true
}

// CurrentCondition returns the lowercased main condition of the current
// observation, e.g. "rain".
func (p WeatherPayload) CurrentCondition() (string, bool) {
	if p.Current == nil || len(p.Current.Weather) == 0 {
		return "", false
	}
	return strings.ToLower(p.Current.Weather[0].Main), true
}

// NextHourPop returns the precipitation probability for the coming hour as a
// rounded percentage.
func (p WeatherPayload) NextHourPop() (int, bool) {
	if len(p.Hourly) == 0 {
		return 0, false
	}
	return int(math.Round(p.Hourly[0].Pop * 100)), true
}
