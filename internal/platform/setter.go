// Package platform applies a wallpaper image as the desktop background
// using OS-specific mechanisms.
package platform

// Setter applies a wallpaper for one platform.
type Setter interface {
	// Name identifies the platform or desktop environment in messages.
	Name() string

	// Set makes the image at path the desktop background.
	Set(path string) error
}

// New returns the setter for the platform this binary was built for.
func New() (Setter, error) {
	return newSetter()
}
