package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/securewave/securewave_backend/pkg/widget"
)

type WidgetHandler struct {
	handles []*widget.Handle
	err     error
}

// NewWidgetHandler initializes the widgets once; configuration does not
// change while the server runs.
func NewWidgetHandler(ws []widget.Widget) *WidgetHandler {
	handles, err := widget.InitializeAll(ws)
	return &WidgetHandler{handles: handles, err: err}
}

// Err reports widgets that failed to initialize. They are left out of List.
func (h *WidgetHandler) Err() error { return h.err }

// GET /api/site/widgets
func (h *WidgetHandler) List(c fiber.Ctx) error {
	return ok(c, h.handles)
}
