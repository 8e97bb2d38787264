package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"weather-assistant/chart"
	"weather-assistant/chat"
	"weather-assistant/history"
	"weather-assistant/models"
	"weather-assistant/series"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// historyFetchLimit caps how many recorded days are merged into a payload.
const historyFetchLimit = 30

// Default chart canvas when the client doesn't specify one.
const (
	defaultChartWidth  = 800.0
	defaultChartHeight = 300.0
)

// Server represents the API server
type Server struct {
	store       *PayloadStore
	historyRepo *history.Store
	chatService *chat.Service
	logger      *slog.Logger
	server      *http.Server
}

// NewServer creates a new API server
func NewServer(store *PayloadStore, historyRepo *history.Store, chatService *chat.Service, port int, logger *slog.Logger) *Server {
	s := &Server{
		store:       store,
		historyRepo: historyRepo,
		chatService: chatService,
		logger:      logger,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/weather/locations", s.handleGetLocations).Methods("GET")
	router.HandleFunc("/api/weather/{location}", s.handleGetPayload).Methods("GET")
	router.HandleFunc("/api/series/{location}", s.handleGetSeries).Methods("GET")
	router.HandleFunc("/api/chart/{location}", s.handleGetChart).Methods("GET")
	router.HandleFunc("/api/chat/{location}", s.handlePostChat).Methods("POST")
	router.HandleFunc("/api/health", s.handleHealthCheck).Methods("GET")

	logged := handlers.LoggingHandler(os.Stdout, router)
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: handlers.RecoveryHandler()(logged),
	}
	return s
}

// Start begins the API server
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown stops the API server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// payloadFor returns the latest payload for a location with recorded history
// merged in. The zero payload is returned when nothing is known yet.
func (s *Server) payloadFor(ctx context.Context, location string) (models.WeatherPayload, bool) {
	payload, ok := s.store.GetLatest(location)
	if !ok {
		return models.WeatherPayload{}, false
	}
	if s.historyRepo != nil {
		today := time.Now().UTC().Format("2006-01-02")
		days, err := s.historyRepo.ListBefore(ctx, location, today, historyFetchLimit)
		if err != nil {
			s.logger.Error("failed to load history", "location", location, "error", err)
		} else {
			payload.Historic = days
		}
	}
	return payload, true
}

// handleGetLocations returns a list of all locations with payload data
func (s *Server) handleGetLocations(w http.ResponseWriter, r *http.Request) {
	locations := s.store.GetAllLocations()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"locations": locations,
		"count":     len(locations),
	})
}

// handleGetPayload returns the full payload (including historic records)
func (s *Server) handleGetPayload(w http.ResponseWriter, r *http.Request) {
	location := mux.Vars(r)["location"]
	payload, ok := s.payloadFor(r.Context(), location)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("No weather data found for location: %s", location),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"location":  location,
		"data":      payload,
		"timestamp": time.Now(),
	})
}

// handleGetSeries returns chart-ready numeric arrays for one metric
func (s *Server) handleGetSeries(w http.ResponseWriter, r *http.Request) {
	location := mux.Vars(r)["location"]
	payload, ok := s.payloadFor(r.Context(), location)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("No weather data found for location: %s", location),
		})
		return
	}

	window := models.ParseTimeWindow(r.URL.Query().Get("window"))
	metric := models.ParseMetricKind(r.URL.Query().Get("metric"))
	built := series.Build(payload, window, metric)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"location": location,
		"window":   window,
		"series":   built,
		"noData":   built.Empty(),
	})
}

// handleGetChart returns the computed drawing plan for one metric
func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	location := mux.Vars(r)["location"]
	payload, ok := s.payloadFor(r.Context(), location)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("No weather data found for location: %s", location),
		})
		return
	}

	window := models.ParseTimeWindow(r.URL.Query().Get("window"))
	metric := models.ParseMetricKind(r.URL.Query().Get("metric"))
	width := queryFloat(r, "width", defaultChartWidth)
	height := queryFloat(r, "height", defaultChartHeight)

	geometry := chart.Map(series.Build(payload, window, metric), width, height)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"location": location,
		"window":   window,
		"metric":   metric,
		"geometry": geometry,
	})
}

// chatRequest is the body of a chat turn.
type chatRequest struct {
	Message string        `json:"message"`
	History []models.Turn `json:"history"`
}

// handlePostChat answers one user message. A missing payload is not an
// error: the chat surface must always produce an assistant message, so the
// service runs against an empty payload and degrades gracefully.
func (s *Server) handlePostChat(w http.ResponseWriter, r *http.Request) {
	location := mux.Vars(r)["location"]

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	payload, _ := s.payloadFor(r.Context(), location)
	message := s.chatService.Ask(r.Context(), req.Message, req.History, payload, location)
	writeJSON(w, http.StatusOK, message)
}

// handleHealthCheck provides a simple health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func queryFloat(r *http.Request, name string, fallback float64) float64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
