package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/limpopo-connect-web/internal/backend"
)

// Health is the liveness probe.  It returns a plain text "ok" without
// touching any dependency.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// ReadyHandler probes the backend's health endpoint.
type ReadyHandler struct {
	API *backend.Client
}

// Ready returns 200 when the backend answers /api/health, 503 otherwise.
func (h *ReadyHandler) Ready(c echo.Context) error {
	ctx, cancel := backendContext(c)
	defer cancel()
	var body map[string]any
	if err := h.API.GetJSON(ctx, "/api/health", nil, &body); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "backend": body["status"]})
}
