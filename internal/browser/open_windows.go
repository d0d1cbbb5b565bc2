//go:build windows

package browser

import "os/exec"

func openCommand(target string) *exec.Cmd {
	return exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
}
