//go:build linux

package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

type linuxSetter struct {
	desktop string
}

func newSetter() (Setter, error) {
	desktop := DetectDesktop(os.Getenv)
	if desktop == "" {
		return nil, fmt.Errorf(
			"unable to detect a desktop environment, set the wallpaper manually")
	}
	return linuxSetter{desktop: desktop}, nil
}

func (s linuxSetter) Name() string { return "Linux (" + s.desktop + ")" }

func (s linuxSetter) Set(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	switch s.desktop {
	case DesktopGnome:
		return s.setGnome(abs, "org.gnome.desktop.background")
	case DesktopKDE:
		return s.setKDE(abs)
	case DesktopXFCE:
		return s.setXFCE(abs)
	case DesktopMate:
		return run("gsettings", "set", "org.mate.background", "picture-filename", abs)
	case DesktopCinnamon:
		return run("gsettings", "set", "org.cinnamon.desktop.background",
			"picture-uri", "file://"+abs)
	case DesktopX11:
		return run("feh", "--bg-fill", abs)
	default:
		return fmt.Errorf("unsupported desktop environment: %s", s.desktop)
	}
}

// setGnome sets both the light and dark variants.
func (s linuxSetter) setGnome(abs, schema string) error {
	uri := "file://" + abs
	if err := run("gsettings", "set", schema, "picture-uri", uri); err != nil {
		return err
	}
	return run("gsettings", "set", schema, "picture-uri-dark", uri)
}

func (s linuxSetter) setKDE(abs string) error {
	script := fmt.Sprintf(`
		var allDesktops = desktops();
		for (i = 0; i < allDesktops.length; i++) {
			d = allDesktops[i];
			d.wallpaperPlugin = "org.kde.image";
			d.currentConfigGroup = Array("Wallpaper", "org.kde.image", "General");
			d.writeConfig("Image", "file://%s");
		}`, abs)
	err := run("qdbus", "org.kde.plasmashell", "/PlasmaShell",
		"org.kde.PlasmaShell.evaluateScript", script)
	if err == nil {
		return nil
	}
	logrus.WithError(err).Debug("qdbus failed, trying plasma-apply-wallpaperimage")
	return run("plasma-apply-wallpaperimage", abs)
}

func (s linuxSetter) setXFCE(abs string) error {
	// xfdesktop keys are per-monitor; set every known last-image property.
	out, err := exec.Command("xfconf-query", "-c", "xfce4-desktop", "-l").Output()
	if err != nil {
		return fmt.Errorf("xfconf-query: %w", err)
	}
	set := false
	for _, prop := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if !strings.HasSuffix(prop, "last-image") {
			continue
		}
		if err := run("xfconf-query", "-c", "xfce4-desktop", "-p", prop, "-s", abs); err != nil {
			return err
		}
		set = true
	}
	if !set {
		return fmt.Errorf("no xfce4-desktop wallpaper properties found")
	}
	return nil
}

func run(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, out)
	}
	return nil
}
