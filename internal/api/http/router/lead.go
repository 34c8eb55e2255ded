package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/securewave/securewave_backend/internal/api/http/handler"
	"github.com/securewave/securewave_backend/internal/api/http/middleware"
	"github.com/securewave/securewave_backend/pkg/lead"
)

func (r *Router) registerLeadRoutes(app *fiber.App, h *handler.LeadHandler) {
	var limit fiber.Handler
	if r.p.Cfg.RateLimit.Enabled {
		limit = middleware.NewLimiter(r.p.Cfg.RateLimit, r.p.Redis)
	}

	post := func(path string, fn fiber.Handler) {
		if limit != nil {
			app.Post(path, limit, fn)
			return
		}
		app.Post(path, fn)
	}

	post(lead.EndpointConsultation, h.Consultation)
	post(lead.EndpointSubscribe, h.Subscribe)
	post(lead.EndpointLegacy, h.LegacySubscription)
}
