// Package browser opens URLs in the user's default browser, used to jump
// from the TUI to the stream or a player's channel page.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// command returns the launcher invocation for the given OS, or nil when
// the OS has no known launcher.
func command(goos, url string) []string {
	switch goos {
	case "darwin":
		return []string{"open", url}
	case "linux":
		return []string{"xdg-open", url}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", url}
	}
	return nil
}

// Open opens the URL in the default browser without waiting for the
// launcher to exit.
func Open(url string) error {
	argv := command(runtime.GOOS, url)
	if argv == nil {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
	return exec.Command(argv[0], argv[1:]...).Start()
}
