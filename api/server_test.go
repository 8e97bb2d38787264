package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"weather-assistant/chat"
	"weather-assistant/logging"
	"weather-assistant/models"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	store := NewPayloadStore()
	store.Update(models.WeatherPayload{
		Provider: "Test",
		Location: "London",
		Current: &models.CurrentConditions{
			Temp:      21.4,
			Humidity:  65,
			WindSpeed: 5,
			Weather:   []models.ConditionRef{{Main: "Clouds", Description: "scattered clouds"}},
		},
		Hourly: []models.HourlyPoint{{Pop: 0.42}},
		Daily: []models.DailyPoint{
			{Dt: time.Now().Unix(), Temp: models.DailyTemp{Day: 18, Min: 12, Max: 22}},
			{Dt: time.Now().AddDate(0, 0, 1).Unix(), Temp: models.DailyTemp{Day: 16, Min: 10, Max: 20}},
		},
		Updated: time.Now(),
	})

	svc := chat.NewService(nil, logging.Discard())
	return NewServer(store, nil, svc, 0, logging.Discard())
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(into); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestGetLocations(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/api/weather/locations", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Locations []string `json:"locations"`
		Count     int      `json:"count"`
	}
	decodeBody(t, rec, &body)
	if body.Count != 1 || len(body.Locations) != 1 || body.Locations[0] != "London" {
		t.Fatalf("body = %+v", body)
	}
}

func TestGetPayloadUnknownLocation(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/api/weather/Atlantis", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGetSeries(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/api/series/London?window=7d&metric=temperature", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Window string        `json:"window"`
		Series models.Series `json:"series"`
		NoData bool          `json:"noData"`
	}
	decodeBody(t, rec, &body)
	if body.Window != "7d" {
		t.Fatalf("window = %q, want 7d", body.Window)
	}
	if body.NoData {
		t.Fatal("payload with daily data must not be noData")
	}
	if len(body.Series.ForecastAvg) != 2 {
		t.Fatalf("forecast points = %d, want 2", len(body.Series.ForecastAvg))
	}
}

func TestGetChart(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/api/chart/London?metric=humidity&width=400&height=200", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Metric   string          `json:"metric"`
		Geometry models.Geometry `json:"geometry"`
	}
	decodeBody(t, rec, &body)
	if body.Metric != "humidity" {
		t.Fatalf("metric = %q, want humidity", body.Metric)
	}
	if body.Geometry.Kind != models.ChartArea {
		t.Fatalf("kind = %q, want area", body.Geometry.Kind)
	}
	if body.Geometry.Width != 400 || body.Geometry.Height != 200 {
		t.Fatalf("canvas = %vx%v, want 400x200", body.Geometry.Width, body.Geometry.Height)
	}
}

func TestPostChat(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodPost, "/api/chat/London",
		`{"message": "Will it rain today?"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var msg models.ChatMessage
	decodeBody(t, rec, &msg)
	if !msg.Fallback {
		t.Fatal("nil-assistant service must answer via fallback")
	}
	if !strings.Contains(msg.Text, "42%") {
		t.Fatalf("text = %q, want the payload answer", msg.Text)
	}
}

func TestPostChatUnknownLocationStillAnswers(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodPost, "/api/chat/Atlantis",
		`{"message": "How's the weather?"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; chat must always answer", rec.Code)
	}
	var msg models.ChatMessage
	decodeBody(t, rec, &msg)
	if !strings.Contains(msg.Text, "No live weather data") {
		t.Fatalf("text = %q, want the no-data answer", msg.Text)
	}
}

func TestPostChatEmptyMessage(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodPost, "/api/chat/London", `{"message": ""}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	rec := doRequest(t, testServer(t), http.MethodGet, "/api/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
