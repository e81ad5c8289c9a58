package download

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/five82/reelfx/internal/logging"
)

// Fetched describes one downloaded video. Thumbnail is empty when the cover
// image was unavailable.
type Fetched struct {
	SourceURL string
	VideoPath string
	Thumbnail string
	Provider  string
}

// FetchOptions controls where FetchAll writes files.
type FetchOptions struct {
	VideoDir     string
	ThumbnailDir string
	// DatedFolder places videos in a per-day subfolder such as "19-Oct".
	DatedFolder bool
	Progress    func(index int, written, total int64)
	Now         func() time.Time
}

// VideoName returns the file name for the index-th (1-based) video.
func VideoName(pageURL string, index int) string {
	if id := VideoID(pageURL); id != "" {
		return fmt.Sprintf("tiktok_%s_%d.mp4", id, index)
	}
	return fmt.Sprintf("tiktok_video_%d.mp4", index)
}

// ThumbnailName returns the cover image name for the index-th video.
func ThumbnailName(pageURL string, index int) string {
	return fmt.Sprintf("tiktok_%s_%d_thumb.jpg", VideoID(pageURL), index)
}

// FetchAll downloads urls one after another. It stops at the first failed
// video and returns what was fetched before it. Cover image failures are
// logged and ignored.
func (c *Client) FetchAll(ctx context.Context, urls []string, opts FetchOptions) ([]Fetched, error) {
	videoDir := opts.VideoDir
	if opts.DatedFolder {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		videoDir = filepath.Join(videoDir, now().Format("02-Jan"))
	}

	var fetched []Fetched
	for i, pageURL := range urls {
		index := i + 1
		if err := ctx.Err(); err != nil {
			return fetched, err
		}
		if err := ValidateURL(pageURL); err != nil {
			return fetched, fmt.Errorf("url %d: %w", index, err)
		}

		media, err := c.Resolve(ctx, pageURL)
		if err != nil {
			return fetched, fmt.Errorf("url %d: %w", index, err)
		}

		var progress ProgressFunc
		if opts.Progress != nil {
			progress = func(written, total int64) { opts.Progress(index, written, total) }
		}
		videoPath := filepath.Join(videoDir, VideoName(pageURL, index))
		if err := c.Stream(ctx, media.VideoURL, videoPath, progress); err != nil {
			return fetched, fmt.Errorf("url %d: %w", index, err)
		}

		item := Fetched{SourceURL: pageURL, VideoPath: videoPath, Provider: media.Provider}
		if media.ThumbnailURL != "" && opts.ThumbnailDir != "" {
			thumbPath := filepath.Join(opts.ThumbnailDir, ThumbnailName(pageURL, index))
			if err := c.Stream(ctx, media.ThumbnailURL, thumbPath, nil); err != nil {
				logging.Warn("thumbnail download failed", "url", pageURL, "error", err)
			} else {
				item.Thumbnail = thumbPath
			}
		}
		logging.Info("video downloaded", "url", pageURL, "path", videoPath, "provider", media.Provider)
		fetched = append(fetched, item)
	}
	return fetched, nil
}
