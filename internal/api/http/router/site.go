package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/securewave/securewave_backend/internal/api/http/handler"
)

func (r *Router) registerSiteRoutes(app *fiber.App, h *handler.WidgetHandler) {
	site := app.Group("/api/site")
	site.Get("/widgets", h.List)
}
