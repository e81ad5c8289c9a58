package util

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UniqueToken returns a filename-safe token that is unique per call, even
// for calls within the same second: "<yyyymmdd_hhmmss>_<8 hex>".
func UniqueToken() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return time.Now().Format("20060102_150405") + "_" + id[:8]
}
