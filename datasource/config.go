package datasource

import (
	"encoding/json"
	"os"
)

// Config represents the application configuration
type Config struct {
	// API provider configurations
	OpenWeatherMap struct {
		Enabled bool   `json:"enabled"`
		APIKey  string `json:"apiKey"`
	} `json:"openWeatherMap"`

	WeatherAPI struct {
		Enabled bool   `json:"enabled"`
		APIKey  string `json:"apiKey"`
	} `json:"weatherAPI"`

	// Conversational assistant configuration
	Gemini struct {
		Enabled bool   `json:"enabled"`
		APIKey  string `json:"apiKey"`
	} `json:"gemini"`

	// List of locations to monitor
	Locations []string `json:"locations"`

	// Path of the sqlite file holding recorded daily history
	HistoryDB string `json:"historyDB"`
}

// LoadConfig loads configuration from a JSON file. API keys left empty in the
// file fall back to the environment (OWM_API_KEY, WEATHERAPI_KEY,
// GEMINI_API_KEY), so keys can live in .env instead of the config file.
func LoadConfig(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	if config.OpenWeatherMap.APIKey == "" {
		config.OpenWeatherMap.APIKey = os.Getenv("OWM_API_KEY")
	}
	if config.WeatherAPI.APIKey == "" {
		config.WeatherAPI.APIKey = os.Getenv("WEATHERAPI_KEY")
	}
	if config.Gemini.APIKey == "" {
		config.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if config.HistoryDB == "" {
		config.HistoryDB = "weather-history.db"
	}

	return &config, nil
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{}
	config.OpenWeatherMap.Enabled = false
	config.WeatherAPI.Enabled = false
	config.Gemini.Enabled = false
	config.Locations = []string{"London,UK", "New York,US", "Tokyo,JP"}
	config.HistoryDB = "weather-history.db"
	return config
}
