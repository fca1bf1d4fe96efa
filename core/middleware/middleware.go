package middleware

import (
	"time"

	"campus-events-api/core/cache"
	"campus-events-api/core/constants"
	"campus-events-api/core/controller"
	"campus-events-api/core/errors"
	"campus-events-api/core/logger"
	"campus-events-api/core/metrics"
	"campus-events-api/core/utils"

	"github.com/labstack/echo/v4"
)

// Middleware bundles the shared echo middleware with its dependencies.
type Middleware struct {
	cache cache.ICache
}

func New(c cache.ICache) *Middleware {
	return &Middleware{cache: c}
}

// AuthMiddleware validates the bearer token, rejects blacklisted tokens, and
// stores the parsed claims on the request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "missing or malformed authorization header")
			}

			blacklisted, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
			if err != nil {
				logger.Error("Middleware:Auth:IsTokenBlacklisted:Error:", err)
				return controller.NewErrorResponse(500, errors.ErrInternalServer, "failed to verify token")
			}
			if blacklisted {
				return controller.NewErrorResponse(401, errors.ErrUnauthorized, "token has been revoked")
			}

			claims, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "invalid or expired token")
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequestLogger logs each request with method, path, status, and latency, and
// feeds the request duration histogram.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			status := c.Response().Status
			metrics.ObserveHTTPRequest(c.Request().Method, c.Path(), status, elapsed)

			logger.Info("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", status,
				"latency_ms", elapsed.Milliseconds(),
			)
			return err
		}
	}
}
