package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weather-assistant/api"
	"weather-assistant/cache"
	"weather-assistant/chat"
	"weather-assistant/collector"
	"weather-assistant/datasource"
	"weather-assistant/history"
	"weather-assistant/logging"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	logger, logFile := logging.Init()
	defer logFile.Close()

	// Parse command line arguments
	port := flag.Int("port", 8080, "Port to run the server on")
	updateInterval := flag.Duration("update", 15*time.Minute, "Weather data update interval")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable API rate limiting")
	cacheDuration := flag.Duration("cache", 5*time.Minute, "Payload cache duration")
	flag.Parse()

	// Load configuration
	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Create the payload sources based on configuration
	var sources []datasource.PayloadSource

	if config.OpenWeatherMap.Enabled {
		if config.OpenWeatherMap.APIKey == "" {
			logger.Error("OpenWeatherMap is enabled but no API key provided")
			os.Exit(1)
		}
		var src datasource.PayloadSource = datasource.NewOpenWeatherMapSource(config.OpenWeatherMap.APIKey)
		if *enableRateLimiting {
			// OpenWeatherMap free tier allows 60 calls/minute = 1 call per second
			src = datasource.NewRateLimitedSource(src, 1.0, 5)
			logger.Info("applied rate limiting to OpenWeatherMap source")
		}
		sources = append(sources, cache.NewCachedSource(src, *cacheDuration))
	}

	if config.WeatherAPI.Enabled {
		if config.WeatherAPI.APIKey == "" {
			logger.Error("WeatherAPI is enabled but no API key provided")
			os.Exit(1)
		}
		var src datasource.PayloadSource = datasource.NewWeatherAPISource(config.WeatherAPI.APIKey)
		if *enableRateLimiting {
			// WeatherAPI free tier allows ~23 calls/minute
			src = datasource.NewRateLimitedSource(src, 0.4, 3)
			logger.Info("applied rate limiting to WeatherAPI source")
		}
		sources = append(sources, cache.NewCachedSource(src, *cacheDuration))
	}

	if len(sources) == 0 {
		logger.Error("no weather sources enabled in configuration")
		os.Exit(1)
	}

	// Open the daily history store
	historyStore, err := history.Open(config.HistoryDB)
	if err != nil {
		logger.Error("failed to open history store", "error", err)
		os.Exit(1)
	}
	defer historyStore.Close()
	recorder := history.NewRecorder(historyStore, logger)

	// Conversational assistant; the chat service falls back to direct
	// payload answers when it is disabled or failing.
	var assistant chat.Assistant
	if config.Gemini.Enabled && config.Gemini.APIKey != "" {
		assistant = chat.NewGeminiAssistant(config.Gemini.APIKey)
		logger.Info("conversational assistant enabled")
	} else {
		logger.Info("conversational assistant disabled, chat will answer from weather data only")
	}
	chatService := chat.NewService(assistant, logger)

	// Create the in-memory payload store and API server
	payloadStore := api.NewPayloadStore()
	server := api.NewServer(payloadStore, historyStore, chatService, *port, logger)

	rootCtx, stopCollector := context.WithCancel(context.Background())

	// Start the payload collector and fan its output into the store and
	// the history recorder
	payloadCollector := collector.NewPayloadCollector(sources, config.Locations, *updateInterval)
	stop := payloadCollector.Start(rootCtx)

	go func() {
		for payload := range payloadCollector.OutputChannel() {
			payloadStore.Update(payload)
			recorder.Record(rootCtx, payload)
			logger.Info("updated weather payload", "location", payload.Location, "provider", payload.Provider)
		}
	}()
	go func() {
		for err := range payloadCollector.ErrorChannel() {
			logger.Error("payload collection failed", "error", err)
		}
	}()

	// Periodically drop payloads that stopped refreshing
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := payloadStore.PruneStale(24 * time.Hour); n > 0 {
					logger.Info("pruned stale payloads", "count", n)
				}
			case <-rootCtx.Done():
				return
			}
		}
	}()

	// Start the API server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Info("server stopped", "error", err)
		}
	}()

	// Wait for shutdown signal
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdownChan
	logger.Info("shutting down", "signal", sig.String())

	stop()
	stopCollector()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("shutdown complete")
}
