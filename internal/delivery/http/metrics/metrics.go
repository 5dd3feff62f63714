package http_metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Controller struct {
	registry *prometheus.Registry
}

func New(registry *prometheus.Registry) *Controller {
	return &Controller{registry: registry}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	handler := promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
	router.GET("/metrics", gin.WrapH(handler))
}
