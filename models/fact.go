package models

// Condition is a normalized weather condition extracted from text.
type Condition string

const (
	ConditionClear        Condition = "clear"
	ConditionClouds       Condition = "clouds"
	ConditionRain         Condition = "rain"
	ConditionThunderstorm Condition = "thunderstorm"
	ConditionSnow         Condition = "snow"
	ConditionMist         Condition = "mist"
)

// VisualType hints which visualization should accompany an assistant message.
type VisualType string

const (
	VisualDefault  VisualType = "default"
	VisualChart    VisualType = "chart"
	VisualForecast VisualType = "forecast"
)

// Fact is a partial structured summary of weather conditions extracted from
// one assistant message. Nil pointer fields were not mentioned in the text.
// Verified is true only when the fact came from a well-formed embedded data
// block and survived validation without corrections.
type Fact struct {
	Temperature    *float64   `json:"temperature,omitempty"` // in Celsius
	Condition      Condition  `json:"condition,omitempty"`
	Precipitation  *int       `json:"precipitation,omitempty"` // percentage, 0-100
	Wind           *float64   `json:"wind,omitempty"`          // in km/h
	Visual         VisualType `json:"visualType"`
	Verified       bool       `json:"verified"`
	CorrectionNote string     `json:"correctionNote,omitempty"`
}
