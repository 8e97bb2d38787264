package history

import (
	"context"
	"log/slog"
	"time"

	"weather-assistant/models"
)

// Recorder folds refreshed payloads into the daily history. Today's forecast
// entry is written (and rewritten on every refresh) under today's date, so it
// becomes a historic record once the calendar moves on.
type Recorder struct {
	store  *Store
	logger *slog.Logger
	now    func() time.Time
}

// NewRecorder creates a recorder writing into store.
func NewRecorder(store *Store, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger, now: time.Now}
}

// Record persists today's summary from the payload. A payload with no daily
// data is skipped.
func (r *Recorder) Record(ctx context.Context, payload models.WeatherPayload) {
	if len(payload.Daily) == 0 {
		return
	}
	today := payload.Daily[0]

	condition := ""
	icon := ""
	if len(today.Weather) > 0 {
		condition = today.Weather[0].Main
		icon = today.Weather[0].Icon
	}

	day := models.HistoricDay{
		Date: r.now().UTC().Format("2006-01-02"),
		Temp: models.HistoricTemp{
			Min: today.Temp.Min,
			Max: today.Temp.Max,
			Avg: today.Temp.Day,
		},
		Humidity:  today.Humidity,
		WindSpeed: today.WindSpeed,
		Weather:   condition,
		Icon:      icon,
	}

	if err := r.store.Upsert(ctx, payload.Location, day); err != nil {
		r.logger.Error("failed to record daily history", "location", payload.Location, "error", err)
	}
}
