package httpapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weatherlog/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q := currentQuery{City: c.Query("city")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec, entry, err := service.Observe(c.Context(), q.City)
		if err != nil {
			return fiber.NewError(statusForError(err), err.Error())
		}

		return c.JSON(fiber.Map{
			"record": rec,
			"entry":  entry,
		})
	})

	v1.Get("/logs/recent", func(c *fiber.Ctx) error {
		q := recentQuery{Limit: c.QueryInt("limit", 10)}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		entries, err := service.Recent(c.Context(), q.Limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather log")
		}

		return c.JSON(fiber.Map{
			"count":   len(entries),
			"entries": entries,
		})
	})
}

// currentQuery holds query parameters for the current-weather endpoint.
type currentQuery struct {
	City string `validate:"required"`
}

// recentQuery holds query parameters for the recent-logs endpoint.
type recentQuery struct {
	Limit int `validate:"gte=1,lte=100"`
}

// statusForError maps failure kinds onto HTTP status codes.
func statusForError(err error) int {
	switch weather.KindOf(err) {
	case weather.KindInvalidInput:
		return fiber.StatusBadRequest
	case weather.KindConnectivity, weather.KindUpstream, weather.KindMalformedResponse:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
