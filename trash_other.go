//go:build !unix

package trash

import "os"

func isCrossDeviceError(error) bool {
	return false
}

func effectiveUID() int {
	return os.Geteuid()
}
