//go:build unix

package trash

import (
	"errors"

	"golang.org/x/sys/unix"
)

func isCrossDeviceError(err error) bool {
	return errors.Is(err, unix.EXDEV)
}

func effectiveUID() int {
	return unix.Geteuid()
}
