package internal

import (
	"cerebro/internal/controllers"
	"cerebro/internal/providers"
	"net/http"
)

func InitRoutes(eventController *controllers.EventController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/events", http.HandlerFunc(eventController.Create))
	routers.Get("/events", http.HandlerFunc(eventController.List))
	routers.Get("/event", http.HandlerFunc(eventController.Get))
	routers.Delete("/event", http.HandlerFunc(eventController.Delete))
	routers.Get("/insights", http.HandlerFunc(eventController.Insights))
	routers.Get("/view", http.HandlerFunc(eventController.View))
	routers.Get("/export", http.HandlerFunc(eventController.Export))
	return routers
}
