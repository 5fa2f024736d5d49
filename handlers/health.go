package handlers

import (
	"net/http"

	"tripmart/utils"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports the last snapshot from the background monitor.
func HealthCheck(c *gin.Context) {
	status := utils.GetHealthStatus()
	healthy := status.Mongo
	for _, ok := range status.Redis {
		healthy = healthy && ok
	}
	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
