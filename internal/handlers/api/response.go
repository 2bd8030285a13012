package api

import (
	"github.com/gofiber/fiber/v3"
)

// CacheControl lets shared caches serve a bundle for a minute and revalidate
// in the background for five more.
const CacheControl = "public, s-maxage=60, stale-while-revalidate=300"

// jsonBody sends pre-encoded JSON with a 200 status.
func jsonBody(c fiber.Ctx, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(body)
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
