//go:build darwin

package browser

import "os/exec"

func openCommand(target string) *exec.Cmd {
	return exec.Command("open", target)
}
