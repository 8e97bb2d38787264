package models

// ChartKind is the visual form a metric is drawn with.
type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
	ChartArea ChartKind = "area"
)

// Point is one plotted coordinate in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tick is one axis tick: a pixel position plus its label.
type Tick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

// PathSeries is one drawable polyline: its points plus the SVG path data
// connecting them. Path is empty when the series has fewer than two points.
type PathSeries struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
	Path   string  `json:"path,omitempty"`
}

// Bar is one bar of a bar chart in pixel space.
type Bar struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Geometry is the fully computed drawing plan for one series. It is derived
// and ephemeral: recomputed on every render, never persisted.
type Geometry struct {
	Kind   ChartKind `json:"kind"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Stride float64   `json:"stride"`

	Series []PathSeries `json:"series,omitempty"`
	Bars   []Bar        `json:"bars,omitempty"`

	XTicks []Tick `json:"xTicks"`
	YTicks []Tick `json:"yTicks"`

	// DividerX marks the historic/forecast boundary ("Today") when both
	// sides are non-empty.
	DividerX      *float64 `json:"dividerX,omitempty"`
	DividerLabel  string   `json:"dividerLabel,omitempty"`
	NoData        bool     `json:"noData,omitempty"`
	HistoricCount int      `json:"historicCount"`
}
