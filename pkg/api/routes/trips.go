package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"github.com/travigo/tickets/pkg/lookup"
	"github.com/travigo/tickets/pkg/railapi"
	"github.com/travigo/tickets/pkg/trains"
)

func TripsRouter(router fiber.Router, service *lookup.Service) {
	router.Get("/", func(c *fiber.Ctx) error {
		return listTrips(c, service)
	})
}

func listTrips(c *fiber.Ctx, service *lookup.Service) error {
	request := lookup.Request{
		From:    c.Query("from"),
		To:      c.Query("to"),
		Date:    c.Query("date"),
		Options: trains.ParseOptionSet(c.Query("types")),
	}

	if whereSource := c.Query("where"); whereSource != "" {
		where, err := trains.CompileWhere(whereSource)
		if err != nil {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		request.Where = where
	}

	trips, err := service.Resolve(c.UserContext(), request)
	if err != nil {
		c.Status(errorStatus(err))
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	groups := []string{"basic"}
	if c.QueryBool("detailed", false) {
		groups = append(groups, "detailed")
	}

	results := []fiber.Map{}
	for trip := range trips {
		tripReduced, err := sheriff.Marshal(&sheriff.Options{
			Groups: groups,
		}, trip)
		if err != nil {
			log.Error().Err(err).Str("train", trip.TrainNumber).Msg("Sheriff could not reduce Trip")
			c.Status(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sheriff could not reduce Trip",
			})
		}

		results = append(results, fiber.Map{
			"trip":      tripReduced,
			"formatted": trains.Format(trip).PlainText(),
		})
	}

	return c.JSON(results)
}

func errorStatus(err error) int {
	var notFound *lookup.StationNotFoundError
	var invalidDate *lookup.InvalidDateError
	var rejection *railapi.RejectionError

	switch {
	case errors.As(err, &notFound), errors.As(err, &invalidDate):
		return fiber.StatusBadRequest
	case errors.As(err, &rejection):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, railapi.ErrTransport):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
