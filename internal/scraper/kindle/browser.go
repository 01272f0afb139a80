package kindle

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/sirupsen/logrus"
)

// ErrNoBrowserAvailable means every candidate browser failed to launch.
var ErrNoBrowserAvailable = errors.New("no suitable browser found")

// Browser names accepted by the --browser flag. Scraping drives the
// browser over the DevTools protocol, so only Chromium-family browsers
// can be used.
const (
	BrowserChrome   = "chrome"
	BrowserEdge     = "edge"
	BrowserChromium = "chromium"
	BrowserBrave    = "brave"
)

// Session owns one launched browser. The caller must Close it on every
// exit path.
type Session struct {
	Browser string

	rod      *rod.Browser
	launcher *launcher.Launcher
}

// Close disconnects from and terminates the browser process.
func (s *Session) Close() {
	if s.rod != nil {
		if err := s.rod.Close(); err != nil {
			logrus.WithError(err).Debug("closing browser")
		}
	}
	if s.launcher != nil {
		s.launcher.Kill()
	}
	logrus.Debug("browser closed")
}

// Launch starts the first available candidate browser with automation
// indicators disabled. If preferred is non-empty it is the sole
// candidate. The session is headed: login may need a human for 2FA.
func Launch(preferred string) (*Session, error) {
	candidates := candidateBrowsers(preferred, runtime.GOOS)

	for _, name := range candidates {
		bin, ok := findBinary(name, runtime.GOOS)
		if !ok {
			logrus.WithField("browser", name).Debug("browser not installed")
			continue
		}

		l := launcher.New().
			Bin(bin).
			Headless(false).
			Leakless(true).
			Set("disable-blink-features", "AutomationControlled").
			Delete("enable-automation")

		controlURL, err := l.Launch()
		if err != nil {
			logrus.WithError(err).WithField("browser", name).Debug("browser failed to launch")
			l.Kill()
			continue
		}

		browser := rod.New().ControlURL(controlURL)
		if err := browser.Connect(); err != nil {
			logrus.WithError(err).WithField("browser", name).Debug("browser failed to connect")
			l.Kill()
			continue
		}

		logrus.WithFields(logrus.Fields{"browser": name, "bin": bin}).Info("browser started")
		return &Session{Browser: name, rod: browser, launcher: l}, nil
	}

	return nil, fmt.Errorf(
		"%w (tried %v), install Chrome, Edge, Chromium or Brave",
		ErrNoBrowserAvailable, candidates)
}

// candidateBrowsers returns the ordered launch candidates. A preferred
// browser is the sole candidate; otherwise Chrome first, it tolerates
// automation best, then the platform's common alternatives.
func candidateBrowsers(preferred, goos string) []string {
	if preferred != "" {
		return []string{preferred}
	}
	switch goos {
	case "windows":
		return []string{BrowserChrome, BrowserEdge, BrowserChromium, BrowserBrave}
	case "darwin":
		return []string{BrowserChrome, BrowserEdge, BrowserBrave, BrowserChromium}
	default:
		return []string{BrowserChrome, BrowserChromium, BrowserBrave, BrowserEdge}
	}
}

// binaryPaths lists where a browser's executable may live on a platform.
// Bare names are resolved through PATH, absolute paths checked directly.
func binaryPaths(name, goos string) []string {
	switch goos {
	case "darwin":
		switch name {
		case BrowserChrome:
			return []string{"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome"}
		case BrowserEdge:
			return []string{"/Applications/Microsoft Edge.app/Contents/MacOS/Microsoft Edge"}
		case BrowserChromium:
			return []string{"/Applications/Chromium.app/Contents/MacOS/Chromium", "chromium"}
		case BrowserBrave:
			return []string{"/Applications/Brave Browser.app/Contents/MacOS/Brave Browser"}
		}
	case "windows":
		switch name {
		case BrowserChrome:
			return []string{
				`C:\Program Files\Google\Chrome\Application\chrome.exe`,
				`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			}
		case BrowserEdge:
			return []string{`C:\Program Files (x86)\Microsoft\Edge\Application\msedge.exe`}
		case BrowserChromium:
			return []string{"chromium.exe"}
		case BrowserBrave:
			return []string{`C:\Program Files\BraveSoftware\Brave-Browser\Application\brave.exe`}
		}
	default:
		switch name {
		case BrowserChrome:
			return []string{"google-chrome", "google-chrome-stable"}
		case BrowserEdge:
			return []string{"microsoft-edge", "microsoft-edge-stable"}
		case BrowserChromium:
			return []string{"chromium", "chromium-browser"}
		case BrowserBrave:
			return []string{"brave-browser", "brave"}
		}
	}
	return nil
}

func findBinary(name, goos string) (string, bool) {
	for _, candidate := range binaryPaths(name, goos) {
		if len(candidate) > 0 && (candidate[0] == '/' || (len(candidate) > 1 && candidate[1] == ':')) {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true
			}
			continue
		}
		if path, err := exec.LookPath(candidate); err == nil {
			return path, true
		}
	}
	return "", false
}
