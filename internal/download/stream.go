package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	rferrors "github.com/five82/reelfx/internal/errors"
)

// ProgressFunc receives the bytes written so far and the expected total, or
// -1 when the server did not send a length.
type ProgressFunc func(written, total int64)

const (
	userAgent = "Mozilla/5.0"
	referer   = "https://www.tiktok.com/"
)

// ErrStalled reports a transfer that received no data within the stream
// timeout. The transfer as a whole has no deadline.
var ErrStalled = errors.New("download stalled")

// Stream downloads mediaURL into dst. Data goes to dst+".part" first and is
// renamed into place only when the transfer completes. The stream timeout
// applies to the response headers and to every read, not to the whole body.
func (c *Client) Stream(ctx context.Context, mediaURL, dst string, progress ProgressFunc) error {
	reqCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	idle := c.streamIdle
	timer := time.AfterFunc(idle, func() {
		cancel(fmt.Errorf("%w: no data for %s", ErrStalled, idle))
	})
	defer timer.Stop()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return rferrors.NewDownloadError("build request", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", referer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return rferrors.NewDownloadError("request failed", stallCause(reqCtx, err))
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return rferrors.NewDownloadError(fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return rferrors.NewIOError("create download directory", err)
	}
	part := dst + ".part"
	f, err := os.Create(part)
	if err != nil {
		return rferrors.NewIOError("create download file", err)
	}

	body := &idleReader{r: resp.Body, timer: timer, idle: idle}
	written, copyErr := copyChunks(f, body, c.cfg.ChunkSize, resp.ContentLength, progress)
	closeErr := f.Close()
	if copyErr == nil {
		copyErr = closeErr
	}
	if copyErr != nil {
		_ = os.Remove(part)
		return rferrors.NewDownloadError(fmt.Sprintf("transfer stopped after %d bytes", written), stallCause(reqCtx, copyErr))
	}
	if err := os.Rename(part, dst); err != nil {
		_ = os.Remove(part)
		return rferrors.NewIOError("finalize download", err)
	}
	return nil
}

func copyChunks(dst io.Writer, src io.Reader, chunkSize int, total int64, progress ProgressFunc) (int64, error) {
	buf := make([]byte, chunkSize)
	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return written, err
			}
			written += int64(n)
			if progress != nil {
				progress(written, total)
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}

// idleReader pushes the stall deadline back whenever a read returns.
type idleReader struct {
	r     io.Reader
	timer *time.Timer
	idle  time.Duration
}

func (r *idleReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.timer.Reset(r.idle)
	return n, err
}

// stallCause replaces a context error caused by the stall timer with the
// stall itself.
func stallCause(ctx context.Context, err error) error {
	if cause := context.Cause(ctx); errors.Is(cause, ErrStalled) {
		return cause
	}
	return err
}
