package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"weatherlog/internal/weather"
)

const defaultRecentLimit = 10

// row is the persisted shape of one entry in the weather_logs table.
type row struct {
	ID               int64   `gorm:"column:id;primaryKey;autoIncrement"`
	CityName         string  `gorm:"column:city_name;not null"`
	Temperature      float64 `gorm:"column:temperature;not null"`
	Humidity         int     `gorm:"column:humidity;not null"`
	Pressure         int     `gorm:"column:pressure;not null"`
	WindSpeed        float64 `gorm:"column:wind_speed;not null"`
	WeatherCondition string  `gorm:"column:weather_condition;not null"`
	Timestamp        string  `gorm:"column:timestamp;not null"`
	APIResponse      string  `gorm:"column:api_response;not null"`
}

func (row) TableName() string { return "weather_logs" }

// Log is the SQLite-backed weather log. It owns the store handle for the
// lifetime of the process; no other component touches storage.
type Log struct {
	db *gorm.DB
}

// Open opens (or creates) the database at path and ensures the weather_logs
// table exists. Existing history is never dropped.
func Open(path string) (*Log, error) {
	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open weather log %q: %w", path, err)
	}
	if err := db.AutoMigrate(&row{}); err != nil {
		return nil, fmt.Errorf("ensure weather_logs schema: %w", err)
	}
	return &Log{db: db}, nil
}

// Append inserts one row, assigning its identifier and logging timestamp.
// The insert is a single statement and therefore atomic.
func (l *Log) Append(ctx context.Context, rec *weather.Record) (*weather.Entry, error) {
	r := row{
		CityName:         rec.City,
		Temperature:      rec.Temperature,
		Humidity:         rec.Humidity,
		Pressure:         rec.Pressure,
		WindSpeed:        rec.WindSpeed,
		WeatherCondition: rec.Condition,
		Timestamp:        time.Now().Format(time.RFC3339),
		APIResponse:      string(rec.RawPayload),
	}
	if err := l.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, weather.NewError(weather.KindStorage, err, "append weather log")
	}
	return r.toEntry(), nil
}

// Recent returns up to limit entries, newest first by logging timestamp with
// the identifier as tiebreak. An empty log yields an empty slice.
func (l *Log) Recent(ctx context.Context, limit int) ([]weather.Entry, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	var rows []row
	if err := l.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, weather.NewError(weather.KindStorage, err, "read weather log")
	}

	entries := make([]weather.Entry, 0, len(rows))
	for i := range rows {
		entries = append(entries, *rows[i].toEntry())
	}
	return entries, nil
}

// Close releases the store handle.
func (l *Log) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *row) toEntry() *weather.Entry {
	return &weather.Entry{
		ID: r.ID,
		Record: weather.Record{
			City:        r.CityName,
			Temperature: r.Temperature,
			Humidity:    r.Humidity,
			Pressure:    r.Pressure,
			WindSpeed:   r.WindSpeed,
			Condition:   r.WeatherCondition,
			RawPayload:  json.RawMessage(r.APIResponse),
		},
		LoggedAt: r.Timestamp,
	}
}
