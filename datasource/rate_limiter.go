package datasource

import (
	"context"
	"fmt"

	"weather-assistant/models"

	"golang.org/x/time/rate"
)

// RateLimitedSource wraps a PayloadSource with rate limiting
type RateLimitedSource struct {
	source  PayloadSource
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedSource creates a new rate limited payload source
// rps is the maximum requests per second allowed (can be fractional for less than 1 request per second)
// burst is the maximum burst size allowed
func NewRateLimitedSource(source PayloadSource, rps float64, burst int) *RateLimitedSource {
	return &RateLimitedSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// FetchPayload fetches weather data, respecting rate limits
func (r *RateLimitedSource) FetchPayload(ctx context.Context, location string) (models.WeatherPayload, error) {
	// Wait for rate limiter permission or context cancellation
	if err := r.limiter.Wait(ctx); err != nil {
		return models.WeatherPayload{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	// Forward to the underlying source
	return r.source.FetchPayload(ctx, location)
}

// Name returns the source name
func (r *RateLimitedSource) Name() string {
	return r.name
}

var _ PayloadSource = (*RateLimitedSource)(nil)
