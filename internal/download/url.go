// Package download fetches short-form videos and their cover images through
// third-party resolver APIs.
package download

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidURL is returned for links that are not single-video pages.
var ErrInvalidURL = errors.New("not a tiktok video url")

var (
	videoURLPattern = regexp.MustCompile(`^https?://(?:www\.)?tiktok\.com/@[^/]+/video/\d+.*$`)
	videoIDPattern  = regexp.MustCompile(`/video/(\d+)`)
)

// ValidateURL checks that raw looks like a video page link.
func ValidateURL(raw string) error {
	if !videoURLPattern.MatchString(strings.TrimSpace(raw)) {
		return ErrInvalidURL
	}
	return nil
}

// VideoID returns the numeric id in the link, or "" when there is none.
func VideoID(raw string) string {
	m := videoIDPattern.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}
