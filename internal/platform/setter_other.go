//go:build !darwin && !linux && !windows

package platform

import (
	"fmt"
	"runtime"
)

func newSetter() (Setter, error) {
	return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
}
