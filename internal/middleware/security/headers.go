package security

import (
	"github.com/gofiber/fiber/v2"
)

type HeadersConfig struct {
	AllowedOrigins []string
	IsDevelopment  bool
}

func HeadersMiddleware(cfg HeadersConfig) fiber.Handler {
	csp := buildCSP(cfg.AllowedOrigins)

	return func(c *fiber.Ctx) error {
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		if !cfg.IsDevelopment {
			c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Set("Content-Security-Policy", csp)

		return c.Next()
	}
}

func buildCSP(origins []string) string {
	// The pages ship small inline scripts and the live counter talks over
	// a same-origin websocket, so connect-src needs ws: alongside self.
	return "default-src 'self'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:; " +
		"font-src 'self' data:; " +
		"connect-src 'self' ws: wss: " + joinOrigins(origins) + "; " +
		"frame-ancestors 'none'; " +
		"base-uri 'self'; " +
		"form-action 'self'"
}

func joinOrigins(origins []string) string {
	joined := ""
	for _, origin := range origins {
		joined += origin + " "
	}
	return joined
}
