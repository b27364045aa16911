package transfer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"

	"github.com/normsend/normsend-go/tool"
	"github.com/normsend/normsend-go/types"
)

// BatchFieldName is the shared multipart field name the service expects for
// every file of the batch.
const BatchFieldName = "audioFiles"

// countingReader wraps the request body and reports upload byte progress.
// onBodySent fires once when the body has been fully handed to the
// transport, which is when the server-phase estimate takes over.
type countingReader struct {
	r          io.Reader
	total      int64
	sent       int64
	onProgress func(sent, total int64)
	onBodySent func()
	done       bool
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.sent += int64(n)
		if c.onProgress != nil {
			c.onProgress(c.sent, c.total)
		}
	}
	if err == io.EOF && !c.done {
		c.done = true
		if c.onBodySent != nil {
			c.onBodySent()
		}
	}
	return n, err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// BuildBatchBody assembles the multipart payload: one part per file under
// the shared field name, filenames and media types preserved.
func BuildBatchBody(files []types.PendingFile) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			BatchFieldName, quoteEscaper.Replace(f.Name)))
		mediaType := f.MediaType
		if mediaType == "" {
			mediaType = "application/octet-stream"
		}
		header.Set("Content-Type", mediaType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form part for %s: %v", f.Name, err)
		}
		src, err := os.Open(f.Path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s: %v", f.Name, err)
		}
		if _, err := io.Copy(part, src); err != nil {
			if cerr := src.Close(); cerr != nil {
				tool.DefaultLogger.Errorf("Failed to close %s: %v", f.Name, cerr)
			}
			return nil, "", fmt.Errorf("failed to read %s: %v", f.Name, err)
		}
		if err := src.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close %s: %v", f.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %v", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

// DoUpload issues the batch POST and returns the response status and body.
// A non-nil error means a transport-level failure before a response was
// obtained; status handling is left to the caller.
func DoUpload(ctx context.Context, uploadURL string, body *bytes.Buffer, contentType string,
	onProgress func(sent, total int64), onBodySent func()) (int, []byte, error) {

	total := int64(body.Len())
	reader := &countingReader{
		r:          body,
		total:      total,
		onProgress: onProgress,
		onBodySent: onBodySent,
	}

	req, err := http.NewRequestWithContext(ctx, "POST", uploadURL, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create upload request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = total

	client := tool.GetUploadHttpClient()
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, fmt.Errorf("upload cancelled: %w", ctx.Err())
		}
		return 0, nil, fmt.Errorf("failed to send upload request: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read upload response: %v", err)
	}
	tool.DefaultLogger.Infof("Upload request finished with status %d (%d bytes sent)", resp.StatusCode, total)
	return resp.StatusCode, respBody, nil
}
