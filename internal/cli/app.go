package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"weatherlog/internal/weather"
)

const recentLogLimit = 5

// App drives the interactive menu loop. Exactly one user-selected action
// runs at a time, to completion, before the next prompt.
type App struct {
	service *weather.Service
	in      *bufio.Scanner
	out     io.Writer
}

// New creates an App reading selections from in and rendering to out.
func New(service *weather.Service, in io.Reader, out io.Writer) *App {
	return &App{
		service: service,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run processes menu selections until the user exits or input ends.
// Operation-level errors are reported and never terminate the loop.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "WELCOME TO THE WEATHER LOGGER")
	fmt.Fprintln(a.out, strings.Repeat("=", 60))

	for {
		fmt.Fprintln(a.out, "\nOptions:")
		fmt.Fprintln(a.out, "1. Get weather for a city")
		fmt.Fprintln(a.out, "2. View recent logs")
		fmt.Fprintln(a.out, "3. Exit")
		fmt.Fprint(a.out, "\nEnter your choice (1-3): ")

		choice, ok := a.readLine()
		if !ok {
			return a.in.Err()
		}

		switch choice {
		case "1":
			fmt.Fprint(a.out, "Enter city name: ")
			city, _ := a.readLine()
			a.getWeather(ctx, city)
		case "2":
			a.showRecent(ctx)
		case "3":
			fmt.Fprintln(a.out, "Thank you for using the weather logger. Goodbye!")
			return nil
		default:
			fmt.Fprintln(a.out, "Invalid choice. Please enter 1, 2, or 3.")
		}
	}
}

// getWeather runs one fetch-display-log operation. Rendering happens before
// the append, so a storage failure leaves what the user already saw intact.
func (a *App) getWeather(ctx context.Context, city string) {
	rec, err := a.service.Lookup(ctx, city)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}

	a.render(rec)

	if _, err := a.service.Log(ctx, rec); err != nil {
		fmt.Fprintf(a.out, "Warning: weather shown but not logged: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Weather data for %s logged successfully.\n", rec.City)
}

func (a *App) render(rec *weather.Record) {
	sep := strings.Repeat("=", 50)
	fmt.Fprintln(a.out, "")
	fmt.Fprintln(a.out, sep)
	fmt.Fprintf(a.out, "CITY: %s\n", rec.City)
	fmt.Fprintln(a.out, sep)
	fmt.Fprintf(a.out, "Observed at: %s\n", rec.ObservedAt)
	fmt.Fprintf(a.out, "Temperature: %.1f°C\n", rec.Temperature)
	fmt.Fprintf(a.out, "Humidity:    %d%%\n", rec.Humidity)
	fmt.Fprintf(a.out, "Pressure:    %d hPa\n", rec.Pressure)
	fmt.Fprintf(a.out, "Wind Speed:  %.1f m/s\n", rec.WindSpeed)
	fmt.Fprintf(a.out, "Condition:   %s\n", titleCase(rec.Condition))
	fmt.Fprintln(a.out, sep)
}

func (a *App) showRecent(ctx context.Context) {
	fmt.Fprintln(a.out, "\nRECENT WEATHER LOGS")
	fmt.Fprintln(a.out, strings.Repeat("=", 80))

	entries, err := a.service.Recent(ctx, recentLogLimit)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No logs found.")
		return
	}

	for _, e := range entries {
		fmt.Fprintf(a.out, "%d. %s | %.1f°C | %d%% | %dhPa | %.1fm/s | %s | %s\n",
			e.ID, e.City, e.Temperature, e.Humidity, e.Pressure, e.WindSpeed,
			e.Condition, displayTime(e.LoggedAt))
	}
}

func (a *App) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// displayTime reformats the stored RFC3339 logging timestamp for one-line
// display, falling back to the stored text if it does not parse.
func displayTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// titleCase uppercases the first letter of each word; display only, the
// stored condition stays raw.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
