package http

import (
	"context"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/social-network/internal/observability"
	apperrors "github.com/spec-kit/social-network/pkg/util"
)

// RegisterMiddlewares attaches global middlewares: timeout propagation,
// error handling and request logging, in that order.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				response := fiber.Map{"error": fiber.Map{
					"code":    domainErr.Code,
					"message": domainErr.Message,
				}}
				if len(domainErr.Details) > 0 {
					response["error"].(fiber.Map)["details"] = domainErr.Details
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(response)
				err = nil
			}
		}()
		return c.Next()
	}
}

// RateLimiter enforces a fixed-window limit per client IP and path,
// with counters in Redis. A limiter outage degrades to pass-through:
// auth must stay available when Redis is not.
func RateLimiter(client *redis.Client, max int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || max <= 0 {
			return c.Next()
		}

		key := "ratelimit:" + c.IP() + ":" + c.Path()
		count, err := client.Incr(c.UserContext(), key).Result()
		if err != nil {
			return c.Next()
		}
		if count == 1 {
			client.Expire(c.UserContext(), key, window)
		}
		if count > int64(max) {
			c.Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			return apperrors.NewTooManyRequests("too many requests")
		}
		return c.Next()
	}
}
