package middleware

import (
	"github.com/go-warden/warden/internal/engine/consts"
	httpx "github.com/go-warden/warden/pkg/http"
	"github.com/gofiber/fiber/v2"
)

// locals keys, re-exported for handlers
const (
	DETAIL    = consts.DETAIL
	OPERATION = consts.OPERATION
)

// UnifiedResponseMiddleware wraps successful handler output in the standard
// envelope. Handlers set c.Locals(consts.DETAIL) for payloads or
// c.Locals(consts.OPERATION) for payload-less success.
func UnifiedResponseMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err != nil {
			return err
		}

		if c.Response().StatusCode() != fiber.StatusOK {
			return httpx.WithRepErrMsg(c, httpx.Failed.Code, httpx.Failed.Msg, c.Path())
		}

		if c.Response().StatusCode() == 0 {
			c.Status(fiber.StatusOK)
		}

		if c.Response().StatusCode() >= fiber.StatusOK && c.Response().StatusCode() < fiber.StatusMultipleChoices {
			if detail := c.Locals(consts.DETAIL); detail != nil {
				return httpx.WithRepJSON(c, detail)
			}

			if c.Locals(consts.OPERATION) != nil {
				return httpx.WithRepNotDetail(c)
			}
		}

		return nil
	}
}
