package platform

import "strings"

// Desktop environments this package knows how to set wallpapers on.
const (
	DesktopGnome    = "gnome"
	DesktopKDE      = "kde"
	DesktopXFCE     = "xfce"
	DesktopMate     = "mate"
	DesktopCinnamon = "cinnamon"
	DesktopX11      = "x11"
)

// DetectDesktop identifies the Linux desktop environment from session
// environment variables. getenv is injected so the mapping is testable.
// Returns "" when nothing graphical is detected.
func DetectDesktop(getenv func(string) string) string {
	hints := strings.ToLower(getenv("XDG_CURRENT_DESKTOP") + " " + getenv("DESKTOP_SESSION"))

	for _, name := range []string{
		DesktopGnome, DesktopKDE, "plasma", DesktopXFCE,
		DesktopMate, DesktopCinnamon, "unity",
	} {
		if !strings.Contains(hints, name) {
			continue
		}
		switch name {
		case "plasma":
			return DesktopKDE
		case "unity":
			return DesktopGnome
		default:
			return name
		}
	}

	if getenv("DISPLAY") != "" {
		return DesktopX11
	}
	return ""
}
