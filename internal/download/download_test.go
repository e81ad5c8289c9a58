package download

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/reelfx/internal/config"
	rferrors "github.com/five82/reelfx/internal/errors"
)

const pageURL = "https://www.tiktok.com/@someone/video/7301234567890123456?lang=en"

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{pageURL, true},
		{"http://tiktok.com/@a.b/video/1", true},
		{"https://tiktok.com/@a/photo/1", false},
		{"https://vm.tiktok.com/ZMabc/", false},
		{"https://example.com/@a/video/1", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err == nil) != tt.want {
				t.Errorf("ValidateURL(%q) = %v, want valid=%v", tt.url, err, tt.want)
			}
		})
	}
}

func TestNames(t *testing.T) {
	if got := VideoID(pageURL); got != "7301234567890123456" {
		t.Errorf("VideoID() = %q", got)
	}
	if got := VideoName(pageURL, 2); got != "tiktok_7301234567890123456_2.mp4" {
		t.Errorf("VideoName() = %q", got)
	}
	if got := VideoName("https://x/y", 3); got != "tiktok_video_3.mp4" {
		t.Errorf("VideoName(no id) = %q", got)
	}
	if got := ThumbnailName(pageURL, 2); got != "tiktok_7301234567890123456_2_thumb.jpg" {
		t.Errorf("ThumbnailName() = %q", got)
	}
}

// fakeAPIs serves both resolver APIs and the media files.
type fakeAPIs struct {
	srv         *httptest.Server
	tikwmCode   int
	tikwmStatus int
	rapidCalls  atomic.Int32
	tikwmCalls  atomic.Int32
	brokenMedia bool
}

func newFakeAPIs(t *testing.T) *fakeAPIs {
	t.Helper()
	f := &fakeAPIs{tikwmStatus: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/tikwm/", func(w http.ResponseWriter, r *http.Request) {
		f.tikwmCalls.Add(1)
		var body struct {
			URL string `json:"url"`
			HD  int    `json:"hd"`
		}
		if r.Method != http.MethodPost || json.NewDecoder(r.Body).Decode(&body) != nil || body.HD != 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if f.tikwmStatus != http.StatusOK {
			w.WriteHeader(f.tikwmStatus)
			return
		}
		_, _ = w.Write([]byte(`{"code":` + strconv.Itoa(f.tikwmCode) + `,"msg":"x","data":{"play":"` + f.srv.URL + `/media/sd.mp4","hdplay":"` + f.srv.URL + `/media/hd.mp4","cover":"` + f.srv.URL + `/media/cover.jpg"}}`))
	})
	mux.HandleFunc("/rapid/media", func(w http.ResponseWriter, r *http.Request) {
		f.rapidCalls.Add(1)
		if r.Header.Get("x-rapidapi-key") != "secret" || r.Header.Get("x-rapidapi-host") != "rapid.test" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("videoUrl") != pageURL {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"downloadUrl":"` + f.srv.URL + `/media/rapid.mp4","thumbnail":"` + f.srv.URL + `/media/missing.jpg"}}`))
	})
	mux.HandleFunc("/media/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Referer") != "https://www.tiktok.com/" || r.Header.Get("User-Agent") != "Mozilla/5.0" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		switch filepath.Base(r.URL.Path) {
		case "missing.jpg":
			w.WriteHeader(http.StatusNotFound)
		case "cover.jpg":
			_, _ = w.Write([]byte("jpeg"))
		default:
			if f.brokenMedia {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(strings.Repeat("v", 2500)))
		}
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPIs) client(key string) *Client {
	return NewClient(config.Download{
		TikwmURL:     f.srv.URL + "/tikwm/",
		RapidAPIURL:  f.srv.URL + "/rapid/media",
		RapidAPIHost: "rapid.test",
		RapidAPIKey:  key,
		ChunkSize:    1024,
	})
}

func TestResolvePrimary(t *testing.T) {
	f := newFakeAPIs(t)
	media, err := f.client("secret").Resolve(context.Background(), pageURL)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if media.Provider != ProviderTikwm || !strings.HasSuffix(media.VideoURL, "/hd.mp4") {
		t.Errorf("Resolve() = %+v", media)
	}
	if f.rapidCalls.Load() != 0 {
		t.Error("fallback called after primary success")
	}
}

func TestResolveFallback(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		status int
	}{
		{"nonzero code", -1, http.StatusOK},
		{"server error", 0, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeAPIs(t)
			f.tikwmCode = tt.code
			f.tikwmStatus = tt.status

			media, err := f.client("secret").Resolve(context.Background(), pageURL)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if media.Provider != ProviderRapidAPI || !strings.HasSuffix(media.VideoURL, "/rapid.mp4") {
				t.Errorf("Resolve() = %+v", media)
			}
			if f.tikwmCalls.Load() != 1 || f.rapidCalls.Load() != 1 {
				t.Errorf("calls = %d/%d, want 1/1", f.tikwmCalls.Load(), f.rapidCalls.Load())
			}
		})
	}
}

func TestResolveWithoutKeySkipsFallback(t *testing.T) {
	f := newFakeAPIs(t)
	f.tikwmCode = 1

	_, err := f.client("").Resolve(context.Background(), pageURL)
	if !rferrors.IsKind(err, rferrors.KindDownload) {
		t.Errorf("Resolve() error = %v, want download error", err)
	}
	if f.rapidCalls.Load() != 0 {
		t.Error("fallback called without a key")
	}
}

func TestStream(t *testing.T) {
	f := newFakeAPIs(t)
	dst := filepath.Join(t.TempDir(), "sub", "clip.mp4")

	var calls int
	var last int64
	err := f.client("").Stream(context.Background(), f.srv.URL+"/media/hd.mp4", dst, func(written, total int64) {
		calls++
		last = written
	})
	if err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	info, err := os.Stat(dst)
	if err != nil || info.Size() != 2500 {
		t.Fatalf("downloaded file = %v, %v", info, err)
	}
	if calls < 3 || last != 2500 {
		t.Errorf("progress calls = %d, last = %d", calls, last)
	}
	if _, err := os.Stat(dst + ".part"); !os.IsNotExist(err) {
		t.Error(".part file left behind")
	}
}

func TestStreamFailureLeavesNothing(t *testing.T) {
	f := newFakeAPIs(t)
	f.brokenMedia = true
	dst := filepath.Join(t.TempDir(), "clip.mp4")

	err := f.client("").Stream(context.Background(), f.srv.URL+"/media/hd.mp4", dst, nil)
	if !rferrors.IsKind(err, rferrors.KindDownload) {
		t.Errorf("Stream() error = %v", err)
	}
	if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
		t.Error("partial download left at destination")
	}
}

func tricklingServer(t *testing.T, chunks int, gap time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, _ := w.(http.Flusher)
		w.Header().Set("Content-Length", strconv.Itoa(chunks*100))
		w.WriteHeader(http.StatusOK)
		for i := 0; i < chunks; i++ {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(gap):
			}
			_, _ = w.Write([]byte(strings.Repeat("x", 100)))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestStreamSlowTransferWithinIdleTimeout(t *testing.T) {
	srv := tricklingServer(t, 6, 40*time.Millisecond)
	c := NewClient(config.Download{ChunkSize: 64})
	c.streamIdle = 150 * time.Millisecond
	dst := filepath.Join(t.TempDir(), "slow.mp4")

	start := time.Now()
	if err := c.Stream(context.Background(), srv.URL, dst, nil); err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed <= c.streamIdle {
		t.Fatalf("transfer took %s, want longer than the idle timeout %s", elapsed, c.streamIdle)
	}
	info, err := os.Stat(dst)
	if err != nil || info.Size() != 600 {
		t.Fatalf("downloaded file = %v, %v", info, err)
	}
}

func TestStreamStalledTransfer(t *testing.T) {
	srv := tricklingServer(t, 2, 300*time.Millisecond)
	c := NewClient(config.Download{ChunkSize: 64})
	c.streamIdle = 50 * time.Millisecond
	dst := filepath.Join(t.TempDir(), "stalled.mp4")

	err := c.Stream(context.Background(), srv.URL, dst, nil)
	if !rferrors.IsKind(err, rferrors.KindDownload) || !errors.Is(err, ErrStalled) {
		t.Fatalf("Stream() error = %v, want a stalled download error", err)
	}
	if _, statErr := os.Stat(dst + ".part"); !os.IsNotExist(statErr) {
		t.Error(".part file left behind")
	}
}

func TestFetchAll(t *testing.T) {
	f := newFakeAPIs(t)
	videoDir := t.TempDir()
	thumbDir := t.TempDir()
	second := "https://www.tiktok.com/@other/video/42"

	fetched, err := f.client("").FetchAll(context.Background(), []string{pageURL, second}, FetchOptions{
		VideoDir:     videoDir,
		ThumbnailDir: thumbDir,
		DatedFolder:  true,
		Now:          func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if len(fetched) != 2 {
		t.Fatalf("fetched %d, want 2", len(fetched))
	}
	want := filepath.Join(videoDir, "19-Oct", "tiktok_42_2.mp4")
	if fetched[1].VideoPath != want {
		t.Errorf("VideoPath = %q, want %q", fetched[1].VideoPath, want)
	}
	if fetched[0].Thumbnail != filepath.Join(thumbDir, "tiktok_7301234567890123456_1_thumb.jpg") {
		t.Errorf("Thumbnail = %q", fetched[0].Thumbnail)
	}
}

func TestFetchAllStopsAtFirstError(t *testing.T) {
	f := newFakeAPIs(t)
	fetched, err := f.client("").FetchAll(context.Background(),
		[]string{pageURL, "https://example.com/nope", pageURL},
		FetchOptions{VideoDir: t.TempDir()})

	if !errors.Is(err, ErrInvalidURL) {
		t.Errorf("FetchAll() error = %v, want ErrInvalidURL", err)
	}
	if len(fetched) != 1 {
		t.Errorf("fetched %d before the error, want 1", len(fetched))
	}
	if f.tikwmCalls.Load() != 1 {
		t.Errorf("resolver calls = %d, want 1", f.tikwmCalls.Load())
	}
}

func TestFetchAllThumbnailFailureIgnored(t *testing.T) {
	f := newFakeAPIs(t)
	f.tikwmCode = 7
	c := f.client("secret")

	fetched, err := c.FetchAll(context.Background(), []string{pageURL}, FetchOptions{
		VideoDir:     t.TempDir(),
		ThumbnailDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if fetched[0].Thumbnail != "" || fetched[0].Provider != ProviderRapidAPI {
		t.Errorf("fetched = %+v", fetched[0])
	}
}
