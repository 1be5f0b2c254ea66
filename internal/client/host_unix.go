//go:build linux || darwin || freebsd || openbsd

package client

import "golang.org/x/sys/unix"

func diskUsage(dir string) (free, total int64, err error) {
	var st unix.Statfs_t
	if err = unix.Statfs(dir, &st); err != nil {
		return 0, 0, err
	}
	return int64(st.Bavail) * int64(st.Bsize), int64(st.Blocks) * int64(st.Bsize), nil
}
