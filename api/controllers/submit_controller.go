package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/normsend/normsend-go/tool"
	"github.com/normsend/normsend-go/transfer"
)

// Submit starts the batch upload in the background and returns immediately.
// Progress and results arrive through the notify websocket.
// POST /api/norm/v1/submit
func Submit(c *gin.Context) {
	if orchestrator.InFlight() {
		c.JSON(http.StatusConflict, tool.FastReturnError("A batch is already in flight"))
		return
	}
	if !selectionLedger.CanSubmit() {
		if selectionLedger.OverBudget() {
			c.JSON(http.StatusBadRequest, tool.FastReturnErrorWithData("Total size exceeds the batch limit", gin.H{
				"totalSize": tool.FormatBytes(selectionLedger.TotalSize()),
				"limit":     tool.FormatBytes(appConfig.MaxBatchBytes),
			}))
			return
		}
		c.JSON(http.StatusBadRequest, tool.FastReturnError("No files selected"))
		return
	}

	go func() {
		if _, err := orchestrator.Submit(context.Background()); err != nil {
			if errors.Is(err, transfer.ErrBatchInFlight) {
				return
			}
			tool.DefaultLogger.Errorf("Batch submission failed: %v", err)
		}
	}()

	c.JSON(http.StatusAccepted, tool.FastReturnSuccess())
}

// Status returns the current progress snapshot.
// GET /api/norm/v1/status
func Status(c *gin.Context) {
	view := estimator.Snapshot()
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(gin.H{
		"inFlight": orchestrator.InFlight(),
		"progress": view,
	}))
}
