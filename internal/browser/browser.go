// Package browser opens files and URLs with the platform's default handler.
package browser

import "fmt"

// Open launches the platform handler for the given target (a file path or
// URL) and returns without waiting for it to exit. The handler process
// outlives the caller, which is the point: the browser keeps running after
// the CLI finishes.
func Open(target string) error {
	cmd := openCommand(target)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", target, err)
	}
	// Reap the launcher so it doesn't linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}
