package handler

import "github.com/gofiber/fiber/v3"

func ok(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"data": data})
}

func message(c fiber.Ctx, msg string) error {
	return c.JSON(fiber.Map{"message": msg})
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func serverError(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msg})
}

func internalError(c fiber.Ctx) error {
	return serverError(c, "internal server error")
}

// plain answers with a text/plain body, used by the form-encoded endpoint.
func plain(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).SendString(msg)
}
