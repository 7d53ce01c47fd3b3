// Package transifex wraps the external Transifex client CLI. The client is
// treated as opaque: tskit only cares whether the pull succeeded.
package transifex

import (
	"fmt"
	"os"
	"os/exec"
)

// DefaultCommand is the Transifex client binary name.
const DefaultCommand = "tx"

// Client invokes the Transifex CLI.
type Client struct {
	// Command overrides the binary name (mainly for tests).
	Command string
	// Dir is the working directory for the pull; empty means the current
	// directory. The tx client finds its .tx/config relative to it.
	Dir string
}

// Pull fetches all translations, overwriting local files (tx pull -f -a).
// Output streams to stderr so pull progress stays visible.
func (c *Client) Pull() error {
	name := c.Command
	if name == "" {
		name = DefaultCommand
	}

	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%s not found in PATH (install the transifex client): %w", name, err)
	}

	cmd := exec.Command(name, "pull", "-f", "-a")
	cmd.Dir = c.Dir
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("fetching translations: %w", err)
	}
	return nil
}
