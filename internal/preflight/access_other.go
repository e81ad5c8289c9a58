//go:build !unix

package preflight

import "github.com/five82/reelfx/internal/util"

func checkAccess(path string) error {
	return util.EnsureDirectoryWritable(path)
}
