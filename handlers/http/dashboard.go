package httpHandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"motor-monitor/usecases"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	useCase *usecases.DashboardUseCase
	logger  *slog.Logger
}

func NewDashboardHandler(useCase *usecases.DashboardUseCase, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{useCase: useCase, logger: logger}
}

// ListZones handles GET /api/zones
func (h *DashboardHandler) ListZones(c *gin.Context) {
	zones, err := h.useCase.ListZones(c.Request.Context())
	if err != nil {
		h.internalError(c, "list zones", err)
		return
	}
	c.JSON(http.StatusOK, zones)
}

// ListMotors handles GET /api/motors/:id where id is a zone id
func (h *DashboardHandler) ListMotors(c *gin.Context) {
	zoneID, ok := idParam(c)
	if !ok {
		emptyNotFound(c)
		return
	}
	if zoneID == 0 {
		c.JSON(http.StatusOK, []struct{}{})
		return
	}

	motors, err := h.useCase.ListMotorsInZone(c.Request.Context(), zoneID)
	if err != nil {
		h.internalError(c, "list motors", err)
		return
	}
	c.JSON(http.StatusOK, motors)
}

// MotorDetail handles GET /api/motors/:id/detail
func (h *DashboardHandler) MotorDetail(c *gin.Context) {
	motorID, ok := idParam(c)
	if !ok || motorID == 0 {
		emptyNotFound(c)
		return
	}

	detail, err := h.useCase.GetMotorDetail(c.Request.Context(), motorID)
	if errors.Is(err, usecases.ErrMotorNotFound) {
		emptyNotFound(c)
		return
	}
	if err != nil {
		h.internalError(c, "motor detail", err)
		return
	}
	c.JSON(http.StatusOK, []usecases.MotorView{*detail})
}

// SensorHistory handles GET /api/sensors/:id/history. Any integer id gets a
// history, known motor or not.
func (h *DashboardHandler) SensorHistory(c *gin.Context) {
	if _, ok := idParam(c); !ok {
		emptyNotFound(c)
		return
	}
	c.JSON(http.StatusOK, h.useCase.SensorHistory())
}

// LiveReading handles GET /api/motors/:id/live
func (h *DashboardHandler) LiveReading(c *gin.Context) {
	motorID, ok := idParam(c)
	if !ok || motorID == 0 {
		emptyNotFound(c)
		return
	}

	reading, err := h.useCase.LiveReading(c.Request.Context(), motorID)
	if errors.Is(err, usecases.ErrLiveReadingNotFound) {
		emptyNotFound(c)
		return
	}
	if err != nil {
		h.internalError(c, "live reading", err)
		return
	}
	c.JSON(http.StatusOK, reading)
}

func (h *DashboardHandler) internalError(c *gin.Context, op string, err error) {
	h.logger.Error(op+" failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// idParam reports whether the :id segment is a non-negative integer. Integers
// no row can carry (zero, or wider than the id column) come back as 0.
func idParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	if !isDigits(raw) {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, true
	}
	return uint(id), true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func emptyNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, []struct{}{})
}
