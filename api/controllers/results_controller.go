package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/normsend/normsend-go/share"
	"github.com/normsend/normsend-go/tool"
)

// Results returns the cached view model of a completed batch.
// GET /api/norm/v1/results/:jobId
func Results(c *gin.Context) {
	jobID := c.Param("jobId")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Missing job id"))
		return
	}
	vm, ok := share.GetBatchResult(jobID)
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("No results for this job id"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(vm))
}
