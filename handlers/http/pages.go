package httpHandler

import (
	"net/http"

	"motor-monitor/middlewares"

	"github.com/gin-gonic/gin"
)

// PageHandler renders the dashboard shells. Their data is loaded by the
// browser from the JSON API and the /ws feed.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// ZoneOverview handles GET / and GET /zones
func (h *PageHandler) ZoneOverview(c *gin.Context) {
	c.HTML(http.StatusOK, "zone_overview.html", h.base(c))
}

// MotorList handles GET /zone/:id/motors
func (h *PageHandler) MotorList(c *gin.Context) {
	if _, ok := idParam(c); !ok {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	data := h.base(c)
	data["ZoneID"] = c.Param("id")
	c.HTML(http.StatusOK, "motor_list.html", data)
}

// DeviceDetail handles GET /device/:id
func (h *PageHandler) DeviceDetail(c *gin.Context) {
	if _, ok := idParam(c); !ok {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}
	data := h.base(c)
	data["MotorID"] = c.Param("id")
	c.HTML(http.StatusOK, "device_detail.html", data)
}

func (h *PageHandler) base(c *gin.Context) gin.H {
	data := gin.H{}
	if session, ok := middlewares.CurrentSession(c); ok {
		data["Username"] = session.Username
		data["Role"] = session.Role
	}
	return data
}
