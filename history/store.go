// Package history persists one weather summary per location per day, so the
// service can chart past conditions the upstream APIs no longer serve.
package history

import (
	"context"
	"database/sql"
	"fmt"

	"weather-assistant/models"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS daily_weather (
	location   TEXT NOT NULL,
	date       TEXT NOT NULL,
	temp_min   REAL NOT NULL,
	temp_max   REAL NOT NULL,
	temp_avg   REAL NOT NULL,
	humidity   INTEGER NOT NULL,
	wind_speed REAL NOT NULL,
	condition  TEXT NOT NULL,
	icon       TEXT NOT NULL,
	PRIMARY KEY (location, date)
)`

// Store persists daily weather records in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert persists one day's record for a location, replacing any existing
// record for the same day.
func (s *Store) Upsert(ctx context.Context, location string, day models.HistoricDay) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_weather (location, date, temp_min, temp_max, temp_avg, humidity, wind_speed, condition, icon)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(location, date) DO UPDATE SET
		   temp_min=excluded.temp_min, temp_max=excluded.temp_max,
		   temp_avg=excluded.temp_avg, humidity=excluded.humidity,
		   wind_speed=excluded.wind_speed, condition=excluded.condition,
		   icon=excluded.icon`,
		location, day.Date, day.Temp.Min, day.Temp.Max, day.Temp.Avg,
		day.Humidity, day.WindSpeed, day.Weather, day.Icon)
	return err
}

// ListBefore returns up to limit records for the location strictly before the
// given ISO date, oldest first. Passing today's date yields history that
// never overlaps the forecast.
func (s *Store) ListBefore(ctx context.Context, location, before string, limit int) ([]models.HistoricDay, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, temp_min, temp_max, temp_avg, humidity, wind_speed, condition, icon
		 FROM daily_weather
		 WHERE location = ? AND date < ?
		 ORDER BY date DESC LIMIT ?`,
		location, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.HistoricDay
	for rows.Next() {
		var d models.HistoricDay
		err := rows.Scan(&d.Date, &d.Temp.Min, &d.Temp.Max, &d.Temp.Avg,
			&d.Humidity, &d.WindSpeed, &d.Weather, &d.Icon)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// query returns newest first; callers want chronological order
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days, nil
}
