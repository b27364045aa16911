package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/normsend/normsend-go/tool"
)

const healthProbeTimeout = 5 * time.Second

// Health probes the normalization service base URL so the front end can show
// reachability before the user stages a batch.
// GET /api/norm/v1/health
func Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, appConfig.ServiceURL, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Invalid service URL: "+err.Error()))
		return
	}
	resp, err := tool.GetHttpClient().Do(req)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, tool.FastReturnErrorWithData("Normalization service unreachable", gin.H{
			"serviceUrl": appConfig.ServiceURL,
		}))
		return
	}
	if err := resp.Body.Close(); err != nil {
		tool.DefaultLogger.Errorf("Failed to close health probe body: %v", err)
	}

	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(gin.H{
		"serviceUrl":    appConfig.ServiceURL,
		"serviceStatus": resp.StatusCode,
	}))
}
