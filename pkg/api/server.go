package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/tickets/pkg/api/routes"
	"github.com/travigo/tickets/pkg/lookup"
)

func NewApp(service *lookup.Service) *fiber.App {
	webApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	webApp.Use(NewLogger())

	webApp.Get("version", routes.APIVersion)

	routes.TripsRouter(webApp.Group("/trips"), service)

	return webApp
}

func SetupServer(listen string, service *lookup.Service) error {
	return NewApp(service).Listen(listen)
}
