package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"weather-assistant/models"
)

// OpenWeatherMapSource fetches current conditions and the 5-day forecast and
// assembles them into a single weather payload.
type OpenWeatherMapSource struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMapSource creates a new OpenWeatherMap source
func NewOpenWeatherMapSource(apiKey string) *OpenWeatherMapSource {
	return &OpenWeatherMapSource{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the source name
func (p *OpenWeatherMapSource) Name() string {
	return "OpenWeatherMap"
}

// owmCondition is the condition entry shared by both OWM endpoints.
type owmCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// FetchPayload fetches current weather plus the forecast and folds the
// 3-hour forecast steps into hourly points and per-day summaries. Daily index
// 0 is always today.
func (p *OpenWeatherMapSource) FetchPayload(ctx context.Context, location string) (models.WeatherPayload, error) {
	current, err := p.fetchCurrent(ctx, location)
	if err != nil {
		return models.WeatherPayload{}, err
	}

	hourly, daily, err := p.fetchForecast(ctx, location)
	if err != nil {
		return models.WeatherPayload{}, err
	}

	return models.WeatherPayload{
		Provider: p.Name(),
		Location: location,
		Current:  current,
		Hourly:   hourly,
		Daily:    daily,
		Historic: []models.HistoricDay{},
		Updated:  time.Now(),
	}, nil
}

func (p *OpenWeatherMapSource) fetchCurrent(ctx context.Context, location string) (*models.CurrentConditions, error) {
	body, err := p.get(ctx, "weather", location, nil)
	if err != nil {
		return nil, err
	}

	var response struct {
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  int     `json:"humidity"`
			Pressure  int     `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []owmCondition `json:"weather"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	current := &models.CurrentConditions{
		Temp:      response.Main.Temp,
		FeelsLike: response.Main.FeelsLike,
		Humidity:  response.Main.Humidity,
		WindSpeed: response.Wind.Speed,
		Pressure:  response.Main.Pressure,
		Weather:   make([]models.ConditionRef, 0, len(response.Weather)),
	}
	for _, w := range response.Weather {
		current.Weather = append(current.Weather, models.ConditionRef{
			Main:        w.Main,
			Description: w.Description,
			Icon:        w.Icon,
		})
	}
	return current, nil
}

func (p *OpenWeatherMapSource) fetchForecast(ctx context.Context, location string) ([]models.HourlyPoint, []models.DailyPoint, error) {
	body, err := p.get(ctx, "forecast", location, nil)
	if err != nil {
		return nil, nil, err
	}

	var response struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp     float64 `json:"temp"`
				TempMin  float64 `json:"temp_min"`
				TempMax  float64 `json:"temp_max"`
				Humidity int     `json:"humidity"`
			} `json:"main"`
			Wind struct {
				Speed float64 `json:"speed"`
			} `json:"wind"`
			Pop     float64        `json:"pop"`
			Weather []owmCondition `json:"weather"`
		} `json:"list"`
		City struct {
			Sunrise int64 `json:"sunrise"`
			Sunset  int64 `json:"sunset"`
		} `json:"city"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, nil, fmt.Errorf("failed to parse response: %w", err)
	}

	hourly := make([]models.HourlyPoint, 0, len(response.List))
	type bucket struct {
		day      time.Time
		min, max float64
		tempSum  float64
		humSum   int
		windSum  float64
		pop      float64
		weather  []models.ConditionRef
		count    int
	}
	buckets := make(map[string]*bucket)

	for _, item := range response.List {
		weather := make([]models.ConditionRef, 0, len(item.Weather))
		for _, w := range item.Weather {
			weather = append(weather, models.ConditionRef{
				Main:        w.Main,
				Description: w.Description,
				Icon:        w.Icon,
			})
		}

		hourly = append(hourly, models.HourlyPoint{
			Dt:        item.Dt,
			Temp:      item.Main.Temp,
			Pop:       item.Pop,
			Humidity:  item.Main.Humidity,
			WindSpeed: item.Wind.Speed,
			Weather:   weather,
		})

		// group the 3-hour steps into per-day summaries
		day := time.Unix(item.Dt, 0).UTC().Truncate(24 * time.Hour)
		key := day.Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{day: day, min: item.Main.TempMin, max: item.Main.TempMax}
			buckets[key] = b
		}
		if item.Main.TempMin < b.min {
			b.min = item.Main.TempMin
		}
		if item.Main.TempMax > b.max {
			b.max = item.Main.TempMax
		}
		if item.Pop > b.pop {
			b.pop = item.Pop
		}
		if len(b.weather) == 0 {
			b.weather = weather
		}
		b.tempSum += item.Main.Temp
		b.humSum += item.Main.Humidity
		b.windSum += item.Wind.Speed
		b.count++
	}

	days := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		days = append(days, b)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].day.Before(days[j].day) })

	daily := make([]models.DailyPoint, 0, len(days))
	for i, b := range days {
		d := models.DailyPoint{
			Dt: b.day.Add(12 * time.Hour).Unix(),
			Temp: models.DailyTemp{
				Day: b.tempSum / float64(b.count),
				Min: b.min,
				Max: b.max,
			},
			Humidity:  b.humSum / b.count,
			Pop:       b.pop,
			WindSpeed: b.windSum / float64(b.count),
			Weather:   b.weather,
		}
		// sunrise/sunset are only reported for the city, not per day
		if i == 0 {
			d.Sunrise = response.City.Sunrise
			d.Sunset = response.City.Sunset
		}
		daily = append(daily, d)
	}

	return hourly, daily, nil
}

// get performs one API call and returns the raw body after status checks.
func (p *OpenWeatherMapSource) get(ctx context.Context, path, location string, extra url.Values) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/%s", p.baseURL, path)
	params := url.Values{}
	params.Add("q", location)
	params.Add("appid", p.apiKey)
	params.Add("units", "metric") // Use metric units
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}
	return body, nil
}

var _ PayloadSource = (*OpenWeatherMapSource)(nil)
