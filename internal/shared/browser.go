package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// browserArgs returns the launcher command for the given platform, or
// nil when no launcher is known.
func browserArgs(goos, url string) []string {
	switch goos {
	case "darwin":
		return []string{"open", url}
	case "linux":
		return []string{"xdg-open", url}
	case "windows":
		return []string{"cmd", "/c", "start", url}
	}
	return nil
}

// OpenBrowser opens the default system browser at the given URL. The
// caller should print the URL as a fallback when this fails, since the
// authorization flow cannot proceed without the page.
func OpenBrowser(url string) error {
	args := browserArgs(getRuntime(), url)
	if args == nil {
		return fmt.Errorf("unsupported platform: %s", getRuntime())
	}
	if err := exec.Command(args[0], args[1:]...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
