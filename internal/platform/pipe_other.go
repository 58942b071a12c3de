//go:build !linux

package platform

import "os"

func pipe() (*os.File, *os.File, error) {
	return os.Pipe()
}
