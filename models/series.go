package models

// TimeWindow selects how much history a chart should cover.
type TimeWindow string

const (
	WindowAll       TimeWindow = "all"
	WindowLast7Days TimeWindow = "7d"
	WindowLast3Days TimeWindow = "3d"
)

// ParseTimeWindow maps a query-string value to a TimeWindow, defaulting to
// WindowAll for anything unrecognized.
func ParseTimeWindow(s string) TimeWindow {
	switch s {
	case string(WindowLast7Days), "last7", "7":
		return WindowLast7Days
	case string(WindowLast3Days), "last3", "3":
		return WindowLast3Days
	default:
		return WindowAll
	}
}

// MetricKind selects which measurement a chart plots.
type MetricKind string

const (
	MetricTemperature   MetricKind = "temperature"
	MetricPrecipitation MetricKind = "precipitation"
	MetricHumidity      MetricKind = "humidity"
)

// ParseMetricKind maps a query-string value to a MetricKind, defaulting to
// MetricTemperature.
func ParseMetricKind(s string) MetricKind {
	switch s {
	case string(MetricPrecipitation), "precip", "rain":
		return MetricPrecipitation
	case string(MetricHumidity):
		return MetricHumidity
	default:
		return MetricTemperature
	}
}

// Series holds chart-ready numeric arrays for one metric over one window.
// Temperature uses the three Min/Max/Avg pairs; the other metrics use the
// flat Historic/Forecast arrays. HistoricLabels and ForecastLabels carry the
// matching axis labels (short dates), parallel to the value arrays.
//
// For precipitation the historic values are synthesized from humidity, not
// measured; Synthesized is set so callers can label them as simulated.
type Series struct {
	Metric MetricKind `json:"metric"`
	Unit   string     `json:"unit"`

	Historic []float64 `json:"historic,omitempty"`
	Forecast []float64 `json:"forecast,omitempty"`

	HistoricMin []float64 `json:"historicMin,omitempty"`
	HistoricMax []float64 `json:"historicMax,omitempty"`
	HistoricAvg []float64 `json:"historicAvg,omitempty"`
	ForecastMin []float64 `json:"forecastMin,omitempty"`
	ForecastMax []float64 `json:"forecastMax,omitempty"`
	ForecastAvg []float64 `json:"forecastAvg,omitempty"`

	HistoricLabels []string `json:"historicLabels,omitempty"`
	ForecastLabels []string `json:"forecastLabels,omitempty"`

	Synthesized bool `json:"synthesized,omitempty"`
}

// HistoricCount returns the number of historic samples in the series.
func (s Series) HistoricCount() int {
	if s.Metric == MetricTemperature {
		return len(s.HistoricAvg)
	}
	return len(s.Historic)
}

// ForecastCount returns the number of forecast samples in the series.
func (s Series) ForecastCount() int {
	if s.Metric == MetricTemperature {
		return len(s.ForecastAvg)
	}
	return len(s.Forecast)
}

// Empty reports whether the series has no data on either side, in which case
// the caller must render a "no data available" state instead of a chart.
func (s Series) Empty() bool {
	return s.HistoricCount() == 0 && s.ForecastCount() == 0
}
