package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/normsend/normsend-go/ledger"
	"github.com/normsend/normsend-go/tool"
	"github.com/normsend/normsend-go/types"
)

// FilesAddRequest is one selection event: a set of candidate local paths.
type FilesAddRequest struct {
	Files []types.FileCandidate `json:"files"`
}

// FilesList returns the current ledger render model.
// GET /api/norm/v1/files
func FilesList(c *gin.Context) {
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(selectionLedger.View()))
}

// FilesAdd handles a new selection event. Accepted files are appended,
// rejects are reported per file; transient progress state from a previous
// batch is cleared, the file list itself is not.
// POST /api/norm/v1/files
func FilesAdd(c *gin.Context) {
	var request FilesAddRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	if len(request.Files) == 0 {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("No files provided"))
		return
	}

	orchestrator.ResetTransient()

	added, rejections, err := selectionLedger.AddCandidates(request.Files)
	if err != nil {
		if errors.Is(err, ledger.ErrLocked) {
			c.JSON(http.StatusConflict, tool.FastReturnError("Selection is locked while a batch is in flight"))
			return
		}
		c.JSON(http.StatusInternalServerError, tool.FastReturnError(err.Error()))
		return
	}

	rejected := make([]gin.H, 0, len(rejections))
	for _, rej := range rejections {
		rejected = append(rejected, gin.H{"name": rej.Name, "reason": rej.Reason})
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(gin.H{
		"added":    added,
		"rejected": rejected,
		"ledger":   selectionLedger.View(),
	}))
}

// FilesRemove removes the pending file at the given position. An
// out-of-range index leaves the ledger unchanged.
// DELETE /api/norm/v1/files/:index
func FilesRemove(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid index: "+c.Param("index")))
		return
	}
	if err := selectionLedger.Remove(index); err != nil {
		if errors.Is(err, ledger.ErrLocked) {
			c.JSON(http.StatusConflict, tool.FastReturnError("Selection is locked while a batch is in flight"))
			return
		}
		c.JSON(http.StatusInternalServerError, tool.FastReturnError(err.Error()))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(selectionLedger.View()))
}
