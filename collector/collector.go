package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"weather-assistant/datasource"
	"weather-assistant/models"
)

// PayloadCollector manages the periodic collection of weather payloads from
// multiple sources for the configured locations.
type PayloadCollector struct {
	sources      []datasource.PayloadSource
	outputChan   chan models.WeatherPayload
	errorChan    chan error
	locations    []string
	interval     time.Duration
	fetchTimeout time.Duration
}

// NewPayloadCollector creates a new collector with the provided sources
func NewPayloadCollector(sources []datasource.PayloadSource, locations []string, interval time.Duration) *PayloadCollector {
	return &PayloadCollector{
		sources:      sources,
		outputChan:   make(chan models.WeatherPayload, 100), // Buffer size can be configured
		errorChan:    make(chan error, 100),                 // Buffer for errors
		locations:    locations,
		interval:     interval,
		fetchTimeout: 30 * time.Second, // Default timeout
	}
}

// SetFetchTimeout changes the timeout for API requests
func (pc *PayloadCollector) SetFetchTimeout(timeout time.Duration) {
	pc.fetchTimeout = timeout
}

// OutputChannel returns the channel that emits collected payloads
func (pc *PayloadCollector) OutputChannel() <-chan models.WeatherPayload {
	return pc.outputChan
}

// ErrorChannel returns the channel that emits errors
func (pc *PayloadCollector) ErrorChannel() <-chan error {
	return pc.errorChan
}

// Start begins collecting payloads from all sources for all locations.
// The returned function can be called to stop collection.
func (pc *PayloadCollector) Start(ctx context.Context) func() {
	collectionCtx, cancelCollection := context.WithCancel(ctx)

	var wg sync.WaitGroup
	for _, source := range pc.sources {
		for _, location := range pc.locations {
			wg.Add(1)
			go pc.collectFromSource(collectionCtx, &wg, source, location)
		}
	}

	// close channels once all collectors are done
	go func() {
		wg.Wait()
		close(pc.outputChan)
		close(pc.errorChan)
	}()

	return func() {
		cancelCollection()
		wg.Wait()
	}
}

// collectFromSource continuously collects payloads from a single source for a location
func (pc *PayloadCollector) collectFromSource(ctx context.Context, wg *sync.WaitGroup, source datasource.PayloadSource, location string) {
	defer wg.Done()

	ticker := time.NewTicker(pc.interval)
	defer ticker.Stop()

	// Do an initial fetch immediately
	pc.fetchOnce(ctx, source, location)

	for {
		select {
		case <-ticker.C:
			pc.fetchOnce(ctx, source, location)
		case <-ctx.Done():
			return
		}
	}
}

// fetchOnce performs a single fetch from a payload source
func (pc *PayloadCollector) fetchOnce(ctx context.Context, source datasource.PayloadSource, location string) {
	fetchCtx, cancel := context.WithTimeout(ctx, pc.fetchTimeout)
	defer cancel()

	payload, err := source.FetchPayload(fetchCtx, location)
	if err != nil {
		select {
		case pc.errorChan <- fmt.Errorf("error fetching from %s for %s: %w", source.Name(), location, err):
		default:
			// If error channel is full, drop the error
		}
		return
	}

	select {
	case pc.outputChan <- payload:
	case <-ctx.Done():
		return
	}
}
