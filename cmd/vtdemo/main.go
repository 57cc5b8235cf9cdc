// Command vtdemo spawns a shell under the engine and dumps its screen
// grid to stdout every time the shell produces output, until the shell
// exits or the process is interrupted. It is a minimal host integration,
// not a terminal emulator UI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/vtterm/vtterm/session"
)

func main() {
	cols := flag.Int("cols", 80, "terminal width in columns")
	rows := flag.Int("rows", 24, "terminal height in rows")
	shell := flag.String("shell", "", "shell to spawn (defaults to $SHELL)")
	flag.Parse()

	sess, err := session.New(*cols, *rows)
	if err != nil {
		log.Fatalf("vtdemo: %v", err)
	}
	defer sess.Close()

	if err := sess.SpawnShell(*shell); err != nil {
		log.Fatalf("vtdemo: %v", err)
	}

	fmt.Printf("spawned shell on a %dx%d grid, title %q\n", *cols, *rows, sess.Title())

	for {
		n, err := sess.ReadPTY()
		if n > 0 {
			dumpGrid(sess)
		}
		if err != nil {
			fmt.Println("shell exited:", err)
			return
		}
	}
}

func dumpGrid(sess *session.Session) {
	cols, rows := sess.GridSize()
	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := sess.Cell(row, col)
			if c.Char == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteRune(rune(c.Char))
			}
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(os.Stdout, "\x1b[2J\x1b[H", b.String())
}
