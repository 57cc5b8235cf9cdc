// Package pty wraps a spawned shell process on a pseudo-terminal: start the
// child with a controlling terminal of a given size, read and write the
// master side, resize the terminal on demand, and reap the child when the
// session is done with it.
package pty

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	creackpty "github.com/creack/pty"
)

// PTY is a pseudo-terminal connected to a spawned child process.
//
// Read drains whatever the child has written since the last call. It is a
// blocking read: with no output pending it waits until the child writes or
// its side of the terminal is gone. It reports EOF in the latter case,
// whether that surfaces from the kernel as io.EOF or (as is usual for Linux
// PTYs) syscall.EIO. Write retries on short writes until all of p
// is written or a hard error occurs. Resize changes the terminal's row/column
// count and, optionally, its pixel dimensions, and signals the foreground
// process group with SIGWINCH the way a real terminal driver would.
type PTY interface {
	// File returns the master side of the pseudo-terminal.
	File() *os.File

	// Read reads output produced by the child.
	Read(p []byte) (n int, err error)

	// Write sends input to the child, retrying short writes.
	Write(p []byte) (n int, err error)

	// Resize updates the terminal's size. pixelWidth and pixelHeight may be
	// zero when the host does not track cell geometry in pixels.
	Resize(cols, rows, pixelWidth, pixelHeight uint16) error

	// Close closes the master side of the pseudo-terminal. It does not by
	// itself kill the child; call Kill or Wait for that.
	Close() error

	// Kill sends SIGKILL to the child. It is a no-op if the child has
	// already exited or was never started.
	Kill() error

	// Wait reaps the child process, capturing and returning its exit state.
	// It is safe to call multiple times; only the first call actually waits.
	Wait() (*os.ProcessState, error)
}

// Start spawns cmd attached to a new pseudo-terminal sized (cols, rows) and
// returns a PTY wrapping the master side. cmd.Stdin/Stdout/Stderr are
// overwritten to the PTY's slave side, following creack/pty's convention.
func Start(cmd *exec.Cmd, cols, rows uint16) (PTY, error) {
	f, err := creackpty.StartWithSize(cmd, &creackpty.Winsize{Rows: rows, Cols: cols})
	if err != nil {
		return nil, err
	}
	return &ptyWrapper{file: f, cmd: cmd}, nil
}

type ptyWrapper struct {
	file *os.File
	cmd  *exec.Cmd

	waitOnce sync.Once
	waitErr  error
	state    *os.ProcessState
}

func (p *ptyWrapper) File() *os.File { return p.file }

// Read implements PTY. On a dead child, Linux surfaces syscall.EIO rather
// than io.EOF from the master fd; both are normalized to io.EOF here and
// trigger an eager reap, matching the "reap on read() EOF" contract.
func (p *ptyWrapper) Read(buf []byte) (int, error) {
	n, err := p.file.Read(buf)
	if err != nil && (errors.Is(err, syscall.EIO) || errors.Is(err, io.EOF)) {
		_, _ = p.Wait()
		return n, io.EOF
	}
	return n, err
}

// Write implements PTY, retrying until all of p is written or a write fails
// for a reason other than a short write.
func (p *ptyWrapper) Write(buf []byte) (int, error) {
	written := 0
	for written < len(buf) {
		n, err := p.file.Write(buf[written:])
		written += n
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}

func (p *ptyWrapper) Resize(cols, rows, pixelWidth, pixelHeight uint16) error {
	return creackpty.Setsize(p.file, &creackpty.Winsize{
		Rows: rows,
		Cols: cols,
		X:    pixelWidth,
		Y:    pixelHeight,
	})
}

func (p *ptyWrapper) Close() error {
	return p.file.Close()
}

func (p *ptyWrapper) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

func (p *ptyWrapper) Wait() (*os.ProcessState, error) {
	p.waitOnce.Do(func() {
		if p.cmd.Process == nil {
			return
		}
		p.waitErr = p.cmd.Wait()
		p.state = p.cmd.ProcessState
	})
	return p.state, p.waitErr
}

var _ PTY = (*ptyWrapper)(nil)
