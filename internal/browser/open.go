// Package browser hands URLs to the desktop's default browser.
package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// command is replaced in tests.
var command = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open opens an http or https URL in the user's default browser. Other
// schemes are refused, since the URL may come from an API response.
func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("browser: parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("browser: refusing to open %q url", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("browser: url has no host")
	}

	switch runtime.GOOS {
	case "darwin":
		return command("open", u.String())
	case "linux", "freebsd", "openbsd":
		return command("xdg-open", u.String())
	case "windows":
		return command("rundll32", "url.dll,FileProtocolHandler", u.String())
	default:
		return fmt.Errorf("browser: unsupported OS: %s", runtime.GOOS)
	}
}
