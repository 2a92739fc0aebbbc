package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"rental-alert-service/internal/config"
	"rental-alert-service/internal/logging"
)

func NewRouter(h *Handler, logger *logging.Logger, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(RequestLoggingMiddleware(logger))
	r.Use(MetricsMiddleware())

	api := r.Group(cfg.API.BasePath)
	{
		// Alerts
		api.GET("/alerts/user/:user_id", h.GetAlertsByUserID)

		// Properties
		api.GET("/properties/user/:user_id", h.GetPropertiesByUserID)
		api.GET("/properties/:id", h.GetProperty)
		api.POST("/properties", h.CreateProperty)
		api.PUT("/properties/:id", h.UpdateProperty)
		api.DELETE("/properties/:id", h.DeleteProperty)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
