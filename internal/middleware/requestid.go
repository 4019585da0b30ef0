package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/limpopo-connect-web/internal/backend"
)

// RequestID assigns every request an id (reusing a well-formed inbound
// X-Request-ID), echoes it in the response and stores it in the request
// context so backend calls forward it.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(echo.HeaderXRequestID)
			if _, err := uuid.Parse(id); err != nil {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			c.SetRequest(req.WithContext(backend.WithRequestID(req.Context(), id)))
			return next(c)
		}
	}
}
