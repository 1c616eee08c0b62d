//go:build unix

package mkbrr

import "golang.org/x/sys/unix"

func executable(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}
