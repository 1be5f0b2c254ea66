//go:build !(linux || darwin || freebsd || openbsd)

package client

import "errors"

var errDiskUsageUnsupported = errors.New("disk usage is not supported on this platform")

func diskUsage(string) (int64, int64, error) {
	return 0, 0, errDiskUsageUnsupported
}
