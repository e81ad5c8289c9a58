//go:build !linux && !darwin

package util

// GetAvailableSpace is not implemented on this platform.
func GetAvailableSpace(string) uint64 {
	return 0
}
