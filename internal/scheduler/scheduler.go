package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"weatherlog/internal/weather"
)

// Tracker periodically observes and logs weather for a fixed set of cities.
type Tracker struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	cities    []string
	interval  time.Duration
}

// New creates a new Tracker.
func New(cities []string, interval time.Duration, service *weather.Service) *Tracker {
	return &Tracker{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		cities:    cities,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// Cities are observed one at a time; a failure for one city is logged and
// the rest still run.
func (t *Tracker) Start() error {
	if len(t.cities) == 0 {
		log.Println("tracker: no cities configured; nothing to schedule")
		return nil
	}

	minutes := int(t.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := t.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("tracker: running weather observation job")

		for _, city := range t.cities {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if _, _, err := t.service.Observe(ctx, city); err != nil {
				log.Printf("tracker: observe failed for %s: %v", city, err)
			}
			cancel()
		}

		log.Println("tracker: completed weather observation job")
	})
	if err != nil {
		return err
	}

	t.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (t *Tracker) Stop() {
	if t.scheduler != nil {
		t.scheduler.Stop()
	}
}
