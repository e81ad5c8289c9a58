package download

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/five82/reelfx/internal/config"
	rferrors "github.com/five82/reelfx/internal/errors"
	"github.com/five82/reelfx/internal/logging"
)

// Provider names reported in Media.
const (
	ProviderTikwm    = "tikwm"
	ProviderRapidAPI = "rapidapi"
)

// Media is a resolved, directly downloadable video.
type Media struct {
	VideoURL     string
	ThumbnailURL string
	Provider     string
}

// Client resolves page links and streams media. Each request is tried once.
type Client struct {
	cfg        config.Download
	httpClient *http.Client
	// streamIdle bounds connection setup and each gap between body reads.
	streamIdle time.Duration
}

// NewClient builds a client from the download settings. Zero timeouts and
// chunk sizes fall back to the defaults.
func NewClient(cfg config.Download) *Client {
	if cfg.PrimaryTimeoutSeconds <= 0 {
		cfg.PrimaryTimeoutSeconds = config.DefaultPrimaryTimeout
	}
	if cfg.FallbackTimeoutSeconds <= 0 {
		cfg.FallbackTimeoutSeconds = config.DefaultStreamTimeout
	}
	if cfg.StreamTimeoutSeconds <= 0 {
		cfg.StreamTimeoutSeconds = config.DefaultStreamTimeout
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = config.DefaultChunkSize
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		streamIdle: seconds(cfg.StreamTimeoutSeconds),
	}
}

// Resolve asks the primary API for the media behind pageURL and falls back
// to the secondary API when it fails and a key is configured.
func (c *Client) Resolve(ctx context.Context, pageURL string) (Media, error) {
	media, primaryErr := c.resolveTikwm(ctx, pageURL)
	if primaryErr == nil {
		return media, nil
	}
	logging.Warn("primary resolver failed", "url", pageURL, "error", primaryErr)

	if strings.TrimSpace(c.cfg.RapidAPIKey) == "" {
		return Media{}, rferrors.NewDownloadError("could not resolve video", primaryErr)
	}

	media, fallbackErr := c.resolveRapidAPI(ctx, pageURL)
	if fallbackErr != nil {
		return Media{}, rferrors.NewDownloadError("all resolvers failed", errors.Join(primaryErr, fallbackErr))
	}
	return media, nil
}

type tikwmResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		HDPlay string `json:"hdplay"`
		Play   string `json:"play"`
		Cover  string `json:"cover"`
	} `json:"data"`
}

func (c *Client) resolveTikwm(ctx context.Context, pageURL string) (Media, error) {
	body, err := json.Marshal(map[string]any{"url": pageURL, "hd": 1})
	if err != nil {
		return Media{}, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, seconds(c.cfg.PrimaryTimeoutSeconds))
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.cfg.TikwmURL, bytes.NewReader(body))
	if err != nil {
		return Media{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var parsed tikwmResponse
	if err := c.doJSON(req, &parsed); err != nil {
		return Media{}, fmt.Errorf("tikwm: %w", err)
	}
	if parsed.Code != 0 {
		return Media{}, fmt.Errorf("tikwm: code %d: %s", parsed.Code, parsed.Msg)
	}
	video := parsed.Data.HDPlay
	if video == "" {
		video = parsed.Data.Play
	}
	if video == "" {
		return Media{}, errors.New("tikwm: response has no video url")
	}
	return Media{VideoURL: video, ThumbnailURL: parsed.Data.Cover, Provider: ProviderTikwm}, nil
}

type rapidAPIMedia struct {
	DownloadURL string `json:"downloadUrl"`
	Thumbnail   string `json:"thumbnail"`
	Cover       string `json:"cover"`
}

type rapidAPIResponse struct {
	rapidAPIMedia
	Data rapidAPIMedia `json:"data"`
}

func (c *Client) resolveRapidAPI(ctx context.Context, pageURL string) (Media, error) {
	endpoint, err := url.Parse(c.cfg.RapidAPIURL)
	if err != nil {
		return Media{}, fmt.Errorf("rapidapi url: %w", err)
	}
	q := endpoint.Query()
	q.Set("videoUrl", pageURL)
	endpoint.RawQuery = q.Encode()

	reqCtx, cancel := context.WithTimeout(ctx, seconds(c.cfg.FallbackTimeoutSeconds))
	defer cancel()
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Media{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("x-rapidapi-key", c.cfg.RapidAPIKey)
	req.Header.Set("x-rapidapi-host", c.cfg.RapidAPIHost)

	var parsed rapidAPIResponse
	if err := c.doJSON(req, &parsed); err != nil {
		return Media{}, fmt.Errorf("rapidapi: %w", err)
	}
	video := firstNonEmpty(parsed.DownloadURL, parsed.Data.DownloadURL)
	if video == "" {
		return Media{}, errors.New("rapidapi: response has no download url")
	}
	thumb := firstNonEmpty(parsed.Thumbnail, parsed.Data.Thumbnail, parsed.Cover, parsed.Data.Cover)
	return Media{VideoURL: video, ThumbnailURL: thumb, Provider: ProviderRapidAPI}, nil
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
