package handler

import "github.com/gofiber/fiber/v2"

// NewApp returns a Fiber app exposing the chat endpoint for local runs.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "chat-agent",
		DisableStartupMessage: true,
	})

	app.Get("/health", health)
	api := app.Group("/api")
	api.Post("/chat", h.serveChat)
	return app
}

func health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) serveChat(c *fiber.Ctx) error {
	r := h.chat(c.UserContext(), c.Body(), c.Get(correlationHeader))
	c.Set(correlationHeader, r.correlationID)
	return c.Status(r.status).JSON(r.body)
}
