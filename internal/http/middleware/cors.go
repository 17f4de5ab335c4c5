package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS allows the given comma-separated origins (the Vite dev server by default)
// to call the API from a browser.
func CORS(origins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  strings.ReplaceAll(origins, " ", ""),
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, " + RequestIDHeader,
		ExposeHeaders: RequestIDHeader,
	})
}
