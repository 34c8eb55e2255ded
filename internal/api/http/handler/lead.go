package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/securewave/securewave_backend/internal/service/dispatch"
	"github.com/securewave/securewave_backend/pkg/lead"
)

const (
	msgLegacyMissingFields = "Please fill in all required fields."
	msgLegacyFailed        = "Error processing subscription."

	msgConsultationRequired = "Name and Email are required."
	msgEmailRequired        = "Email is required."
	msgConsultationFailed   = "Could not submit your consultation request. Please try again later."
	msgSubscribeFailed      = "Could not process your subscription. Please try again later."
)

type LeadHandler struct {
	svc              dispatch.Service
	confirmationPath string
}

func NewLeadHandler(svc dispatch.Service, confirmationPath string) *LeadHandler {
	if confirmationPath == "" {
		confirmationPath = "/thank_you.html"
	}
	return &LeadHandler{svc: svc, confirmationPath: confirmationPath}
}

// POST /api/consultation-submit
func (h *LeadHandler) Consultation(c fiber.Ctx) error {
	var p lead.Payload
	if err := c.Bind().Body(&p); err != nil {
		return badRequest(c, "invalid request body")
	}

	_, err := h.svc.Dispatch(c.Context(), dispatch.Consultation, p)
	if err != nil {
		return h.jsonError(c, err, msgConsultationRequired, msgConsultationFailed)
	}
	return message(c, lead.Consultation.SuccessMessage)
}

// POST /api/secureai-subscribe
func (h *LeadHandler) Subscribe(c fiber.Ctx) error {
	var p lead.Payload
	if err := c.Bind().Body(&p); err != nil {
		return badRequest(c, "invalid request body")
	}

	sent, err := h.svc.Dispatch(c.Context(), dispatch.ServiceUpdates, p)
	if err != nil {
		return h.jsonError(c, err, msgEmailRequired, msgSubscribeFailed)
	}
	return message(c, fmt.Sprintf("Successfully subscribed to updates for %q!", sent.Service))
}

// POST /process_subscription
//
// Accepts form-encoded or JSON bodies and answers in plain text, redirecting
// to the confirmation page on success.
func (h *LeadHandler) LegacySubscription(c fiber.Ctx) error {
	var p lead.Payload
	if err := c.Bind().Body(&p); err != nil {
		// An unreadable body has no usable fields.
		p = lead.Payload{}
	}

	_, err := h.svc.Dispatch(c.Context(), dispatch.Subscription, p)
	var missing *dispatch.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		return plain(c, fiber.StatusBadRequest, msgLegacyMissingFields)
	case err != nil:
		return plain(c, fiber.StatusInternalServerError, msgLegacyFailed)
	}
	return c.Redirect().Status(fiber.StatusSeeOther).To(h.confirmationPath)
}

func (h *LeadHandler) jsonError(c fiber.Ctx, err error, missingMsg, failedMsg string) error {
	var missing *dispatch.MissingFieldsError
	switch {
	case errors.As(err, &missing):
		return badRequest(c, missingMsg)
	case errors.Is(err, dispatch.ErrOperatorDispatch):
		return serverError(c, failedMsg)
	default:
		return internalError(c)
	}
}
