package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"weather-assistant/logging"
	"weather-assistant/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func day(date string, avg float64) models.HistoricDay {
	return models.HistoricDay{
		Date:     date,
		Temp:     models.HistoricTemp{Min: avg - 5, Max: avg + 5, Avg: avg},
		Humidity: 60,
		Weather:  "Clouds",
	}
}

func TestListBeforeChronological(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 24; i <= 29; i++ {
		d := day(fmt.Sprintf("2026-08-%02d", i), float64(i))
		if err := store.Upsert(ctx, "London", d); err != nil {
			t.Fatalf("upsert %s: %v", d.Date, err)
		}
	}

	got, err := store.ListBefore(ctx, "London", "2026-08-29", 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d days, want 3", len(got))
	}
	// the 3 most recent days before the cutoff, oldest first
	for i, want := range []string{"2026-08-26", "2026-08-27", "2026-08-28"} {
		if got[i].Date != want {
			t.Fatalf("day %d = %s, want %s", i, got[i].Date, want)
		}
	}
}

func TestListBeforeExcludesCutoffDay(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, "London", day("2026-08-29", 20)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.ListBefore(ctx, "London", "2026-08-29", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("cutoff day leaked into history: %+v", got)
	}
}

func TestUpsertReplacesSameDay(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, "London", day("2026-08-28", 15)); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := store.Upsert(ctx, "London", day("2026-08-28", 17)); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := store.ListBefore(ctx, "London", "2026-08-29", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Temp.Avg != 17 {
		t.Fatalf("avg = %v, want the rewritten 17", got[0].Temp.Avg)
	}
}

func TestListBeforeScopesByLocation(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Upsert(ctx, "London", day("2026-08-28", 15)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.Upsert(ctx, "Paris", day("2026-08-28", 25)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.ListBefore(ctx, "Paris", "2026-08-29", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Temp.Avg != 25 {
		t.Fatalf("got %+v, want only the Paris record", got)
	}
}

func TestRecorderWritesTodaysForecast(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	rec := NewRecorder(store, logging.Discard())
	rec.now = func() time.Time {
		return time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	}

	rec.Record(ctx, models.WeatherPayload{
		Location: "London",
		Daily: []models.DailyPoint{{
			Temp:      models.DailyTemp{Day: 18, Min: 12, Max: 22},
			Humidity:  55,
			WindSpeed: 4,
			Weather:   []models.ConditionRef{{Main: "Rain", Icon: "10d"}},
		}},
	})

	got, err := store.ListBefore(ctx, "London", "2026-08-30", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	d := got[0]
	if d.Date != "2026-08-29" || d.Temp.Avg != 18 || d.Weather != "Rain" || d.Icon != "10d" {
		t.Fatalf("recorded day wrong: %+v", d)
	}
}

func TestRecorderSkipsEmptyPayload(t *testing.T) {
	store := openTestStore(t)
	rec := NewRecorder(store, logging.Discard())

	rec.Record(context.Background(), models.WeatherPayload{Location: "London"})

	got, err := store.ListBefore(context.Background(), "London", "2099-01-01", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("empty payload recorded: %+v", got)
	}
}
