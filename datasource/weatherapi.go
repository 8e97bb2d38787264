package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"weather-assistant/models"
)

// WeatherAPISource fetches the forecast bundle from weatherapi.com and maps
// it into the common payload shape.
type WeatherAPISource struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewWeatherAPISource creates a new WeatherAPI source
func NewWeatherAPISource(apiKey string) *WeatherAPISource {
	return &WeatherAPISource{
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the source name
func (p *WeatherAPISource) Name() string {
	return "WeatherAPI"
}

// FetchPayload fetches current weather plus a 5-day forecast in one call.
func (p *WeatherAPISource) FetchPayload(ctx context.Context, location string) (models.WeatherPayload, error) {
	// Build URL
	endpoint := fmt.Sprintf("%s/forecast.json", p.baseURL)
	params := url.Values{}
	params.Add("q", location)
	params.Add("key", p.apiKey)
	params.Add("days", "5")

	// Create request
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return models.WeatherPayload{}, fmt.Errorf("failed to create request: %w", err)
	}

	// Execute request
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return models.WeatherPayload{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.WeatherPayload{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return models.WeatherPayload{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	// Parse response
	var response struct {
		Current struct {
			TempC      float64 `json:"temp_c"`
			FeelsLikeC float64 `json:"feelslike_c"`
			Humidity   int     `json:"humidity"`
			WindKph    float64 `json:"wind_kph"`
			PressureMb float64 `json:"pressure_mb"`
			Condition  struct {
				Text string `json:"text"`
				Icon string `json:"icon"`
			} `json:"condition"`
		} `json:"current"`
		Forecast struct {
			ForecastDay []struct {
				DateEpoch int64 `json:"date_epoch"`
				Day       struct {
					AvgTempC         float64 `json:"avgtemp_c"`
					MaxTempC         float64 `json:"maxtemp_c"`
					MinTempC         float64 `json:"mintemp_c"`
					AvgHumidity      float64 `json:"avghumidity"`
					MaxWindKph       float64 `json:"maxwind_kph"`
					DailyChanceRain  int     `json:"daily_chance_of_rain"`
					Condition        struct {
						Text string `json:"text"`
						Icon string `json:"icon"`
					} `json:"condition"`
				} `json:"day"`
				Astro struct {
					Sunrise string `json:"sunrise"`
					Sunset  string `json:"sunset"`
				} `json:"astro"`
				Hour []struct {
					TimeEpoch    int64   `json:"time_epoch"`
					TempC        float64 `json:"temp_c"`
					Humidity     int     `json:"humidity"`
					WindKph      float64 `json:"wind_kph"`
					ChanceOfRain int     `json:"chance_of_rain"`
					Condition    struct {
						Text string `json:"text"`
						Icon string `json:"icon"`
					} `json:"condition"`
				} `json:"hour"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return models.WeatherPayload{}, fmt.Errorf("failed to parse response: %w", err)
	}

	payload := models.WeatherPayload{
		Provider: p.Name(),
		Location: location,
		Current: &models.CurrentConditions{
			Temp:      response.Current.TempC,
			FeelsLike: response.Current.FeelsLikeC,
			Humidity:  response.Current.Humidity,
			WindSpeed: response.Current.WindKph / 3.6, // Convert to m/s
			Pressure:  int(response.Current.PressureMb),
			Weather: []models.ConditionRef{{
				Main:        response.Current.Condition.Text,
				Description: response.Current.Condition.Text,
				Icon:        response.Current.Condition.Icon,
			}},
		},
		Hourly:   []models.HourlyPoint{},
		Daily:    []models.DailyPoint{},
		Historic: []models.HistoricDay{},
		Updated:  time.Now(),
	}

	now := time.Now().Unix()
	for _, day := range response.Forecast.ForecastDay {
		payload.Daily = append(payload.Daily, models.DailyPoint{
			Dt: day.DateEpoch,
			Temp: models.DailyTemp{
				Day: day.Day.AvgTempC,
				Min: day.Day.MinTempC,
				Max: day.Day.MaxTempC,
			},
			Humidity:  int(day.Day.AvgHumidity),
			Pop:       float64(day.Day.DailyChanceRain) / 100,
			WindSpeed: day.Day.MaxWindKph / 3.6,
			Weather: []models.ConditionRef{{
				Main:        day.Day.Condition.Text,
				Description: day.Day.Condition.Text,
				Icon:        day.Day.Condition.Icon,
			}},
		})

		for _, hour := range day.Hour {
			// skip hours already in the past
			if hour.TimeEpoch < now {
				continue
			}
			payload.Hourly = append(payload.Hourly, models.HourlyPoint{
				Dt:        hour.TimeEpoch,
				Temp:      hour.TempC,
				Pop:       float64(hour.ChanceOfRain) / 100,
				Humidity:  hour.Humidity,
				WindSpeed: hour.WindKph / 3.6,
				Weather: []models.ConditionRef{{
					Main:        hour.Condition.Text,
					Description: hour.Condition.Text,
					Icon:        hour.Condition.Icon,
				}},
			})
		}
	}

	return payload, nil
}

var _ PayloadSource = (*WeatherAPISource)(nil)
