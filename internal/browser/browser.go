package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Commander abstracts process startup so tests can intercept it
type Commander interface {
	Start(name string, args ...string) error
}

// RealCommander launches real processes
type RealCommander struct{}

// Start launches the command without waiting for it
func (RealCommander) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	return cmd.Start()
}

var defaultCommander Commander = RealCommander{}

// Open launches the system browser at the given URL
func Open(url string) error {
	return OpenWithCommander(url, defaultCommander, runtime.GOOS)
}

// OpenWithCommander opens the URL via the given commander and GOOS (for testing)
func OpenWithCommander(url string, commander Commander, goos string) error {
	var name string
	var args []string

	switch goos {
	case "linux":
		name = "xdg-open"
		args = []string{url}
	case "darwin":
		name = "open"
		args = []string{url}
	case "windows":
		name = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	default:
		return fmt.Errorf("unsupported platform: %s", goos)
	}

	return commander.Start(name, args...)
}
