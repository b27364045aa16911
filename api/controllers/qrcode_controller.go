package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/normsend/normsend-go/share"
	"github.com/normsend/normsend-go/tool"
)

const (
	defaultQRSize = 200
	maxQRSize     = 512
)

// BatchDownloadQRCode returns a PNG QR code of the batch download link for a
// completed job, so the archive can be pulled on another device.
// GET /api/norm/v1/qrcode/:jobId?size=200x200
func BatchDownloadQRCode(c *gin.Context) {
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
	if !vm.CanDownloadAll {
		c.JSON(http.StatusConflict, tool.FastReturnError("Batch download is not available for this job"))
		return
	}

	size := parseSize(c.Query("size"))
	if size <= 0 {
		size = defaultQRSize
	}
	if size > maxQRSize {
		size = maxQRSize
	}

	png, err := qrcode.Encode(vm.DownloadAllURL, qrcode.Medium, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to encode QR code: "+err.Error()))
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// parseSize parses size from "200x200" or "200" and returns the pixel dimension.
func parseSize(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if idx := strings.Index(s, "x"); idx > 0 {
		s = strings.TrimSpace(s[:idx])
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
