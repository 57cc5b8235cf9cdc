package pty

import (
	"fmt"
	"os"
	"os/exec"
)

// Spawn builds an *exec.Cmd for shellPath and an environment announcing a
// color-capable terminal of the given size, then starts it on a new PTY.
// The child inherits the host's environment (LANG, LC_*, PATH, and so on)
// with TERM, COLORTERM, COLUMNS, and LINES overridden.
func Spawn(shellPath string, args []string, cols, rows uint16) (PTY, error) {
	cmd := exec.Command(shellPath, args...)
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
		fmt.Sprintf("COLUMNS=%d", cols),
		fmt.Sprintf("LINES=%d", rows),
	)
	return Start(cmd, cols, rows)
}
