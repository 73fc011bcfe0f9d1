// Package session binds each request to a visitor session via an HttpOnly
// cookie. The session id is the key the workflow hangs its per-visitor
// state on; there is no account system behind it.
package session

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const localsKey = "session_id"

type Config struct {
	CookieName string
	Secure     bool
}

func Middleware(cfg Config) fiber.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = "dmc_session"
	}

	return func(c *fiber.Ctx) error {
		sid := c.Cookies(cfg.CookieName)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cfg.CookieName,
				Value:    sid,
				Path:     "/",
				HTTPOnly: true,
				Secure:   cfg.Secure,
				SameSite: "Lax",
			})
		}

		c.Locals(localsKey, sid)
		return c.Next()
	}
}

// FromCtx returns the session id the middleware attached.
func FromCtx(c *fiber.Ctx) string {
	sid, _ := c.Locals(localsKey).(string)
	return sid
}

// FromConn returns the session id captured at websocket upgrade time.
func FromConn(conn *websocket.Conn) string {
	sid, _ := conn.Locals(localsKey).(string)
	return sid
}
