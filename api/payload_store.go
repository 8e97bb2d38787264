package api

import (
	"sync"
	"time"

	"weather-assistant/models"
)

// PayloadStore holds the latest weather payload per location and provider
type PayloadStore struct {
	data  map[string]map[string]models.WeatherPayload // key is location, then provider
	mutex sync.RWMutex
}

// NewPayloadStore creates a new in-memory payload store
func NewPayloadStore() *PayloadStore {
	return &PayloadStore{
		data: make(map[string]map[string]models.WeatherPayload),
	}
}

// Update adds or replaces the payload for a location and provider
func (s *PayloadStore) Update(payload models.WeatherPayload) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	location := payload.Location
	if _, exists := s.data[location]; !exists {
		s.data[location] = make(map[string]models.WeatherPayload)
	}
	s.data[location][payload.Provider] = payload
}

// GetLatest returns the most recently updated payload for a location across
// all providers
func (s *PayloadStore) GetLatest(location string) (models.WeatherPayload, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	providerMap, exists := s.data[location]
	if !exists || len(providerMap) == 0 {
		return models.WeatherPayload{}, false
	}

	var latest models.WeatherPayload
	found := false
	for _, payload := range providerMap {
		if !found || payload.Updated.After(latest.Updated) {
			latest = payload
			found = true
		}
	}
	return latest, found
}

// GetByProvider returns the payload for a specific location and provider
func (s *PayloadStore) GetByProvider(location, provider string) (models.WeatherPayload, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	providerMap, exists := s.data[location]
	if !exists {
		return models.WeatherPayload{}, false
	}
	payload, exists := providerMap[provider]
	return payload, exists
}

// GetAllLocations returns a list of all locations with payload data
func (s *PayloadStore) GetAllLocations() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	locations := make([]string, 0, len(s.data))
	for loc := range s.data {
		locations = append(locations, loc)
	}
	return locations
}

// PruneStale removes payloads older than the specified duration
func (s *PayloadStore) PruneStale(maxAge time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := time.Now().Add(-maxAge)
	prunedCount := 0

	for location, providers := range s.data {
		for provider, payload := range providers {
			if payload.Updated.Before(cutoff) {
				delete(s.data[location], provider)
				prunedCount++
			}
		}
		if len(s.data[location]) == 0 {
			delete(s.data, location)
		}
	}
	return prunedCount
}
