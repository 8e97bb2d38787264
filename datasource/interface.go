package datasource

import (
	"context"

	"weather-assistant/models"
)

// PayloadSource is an interface for services that can fetch the full weather
// payload (current, hourly, daily) for a location. Historic records are
// merged in later from the local history store.
type PayloadSource interface {
	// FetchPayload fetches weather data for a location
	FetchPayload(ctx context.Context, location string) (models.WeatherPayload, error)

	// Name returns the source's name
	Name() string
}
