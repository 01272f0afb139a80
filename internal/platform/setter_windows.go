//go:build windows

package platform

import (
	"fmt"
	"path/filepath"
	"syscall"
	"unsafe"
)

const (
	spiSetDeskWallpaper  = 0x0014
	spifUpdateIniFile    = 0x01
	spifSendWinIniChange = 0x02
)

var (
	user32                = syscall.NewLazyDLL("user32.dll")
	systemParametersInfoW = user32.NewProc("SystemParametersInfoW")
)

type windowsSetter struct{}

func newSetter() (Setter, error) {
	return windowsSetter{}, nil
}

func (windowsSetter) Name() string { return "Windows" }

func (windowsSetter) Set(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	p, err := syscall.UTF16PtrFromString(abs)
	if err != nil {
		return err
	}

	ret, _, callErr := systemParametersInfoW.Call(
		spiSetDeskWallpaper,
		0,
		uintptr(unsafe.Pointer(p)),
		spifUpdateIniFile|spifSendWinIniChange,
	)
	if ret == 0 {
		return fmt.Errorf("SystemParametersInfoW: %w", callErr)
	}
	return nil
}
