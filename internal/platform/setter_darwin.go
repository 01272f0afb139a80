//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
)

type macosSetter struct{}

func newSetter() (Setter, error) {
	return macosSetter{}, nil
}

func (macosSetter) Name() string { return "macOS" }

// Set uses System Events so the change applies to every desktop/space.
func (macosSetter) Set(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	script := fmt.Sprintf(
		`tell application "System Events" to tell every desktop to set picture to %q`, abs)
	out, err := exec.Command("osascript", "-e", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript: %w: %s", err, out)
	}
	return nil
}
