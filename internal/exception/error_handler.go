package exception

import (
	"fmt"

	"github.com/ferdian3456/leaguebot/internal/constant"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func panicMessage(r interface{}) string {
	switch v := r.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Recovery handles panics in HTTP handlers with a JSON response.
func Recovery(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic occurred and recovered", zap.String("path", c.Path()), zap.String("error", panicMessage(r)))

				_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": fiber.Map{
						"code":    constant.ERR_INTERNAL_SERVER_ERROR_CODE,
						"message": constant.ERR_INTENRAL_SERVER_ERROR_MESSAGE,
					},
				})
			}
		}()

		return c.Next()
	}
}

// RecoverEvent must be deferred directly by a gateway event handler. A panic in one event is logged
// and does not take the session down.
func RecoverEvent(log *zap.Logger, event string) {
	if r := recover(); r != nil {
		log.Error("panic occurred and recovered", zap.String("event", event), zap.String("error", panicMessage(r)))
	}
}
