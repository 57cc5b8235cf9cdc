// Package session wires a pseudo-terminal, the VT parser, and the screen
// model together behind one thread-safe handle: a Session owns a child
// shell's PTY and feeds its output into a term.Terminal, while PTY replies
// (DA/DSR/OSC query answers) and host keystrokes flow back out the same
// pipe. This is the thin façade a host UI integrates against; it does not
// render anything itself.
package session

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/vtterm/vtterm/pty"
	"github.com/vtterm/vtterm/term"
)

// Session is a single terminal instance: one PTY, one parser, one screen
// model, guarded by a single coarse lock as described by the engine's
// concurrency model. The host drives I/O from one thread (its UI thread or
// a dedicated PTY-reader thread); all Session methods are additionally safe
// to call from any goroutine.
type Session struct {
	mu sync.Mutex

	term *term.Terminal
	resp *ptyResponseWriter

	pty pty.PTY

	cols, rows uint16
	closed     bool

	config     atomic.Pointer[ConfigSnapshot]
	generation atomic.Uint64
}

// ptyResponseWriter forwards term.Terminal's query replies (DA, DSR, OSC
// color reports, ...) into whichever PTY is currently attached, or discards
// them if no shell has been spawned yet.
type ptyResponseWriter struct {
	mu  sync.Mutex
	pty pty.PTY
}

func (w *ptyResponseWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	target := w.pty
	w.mu.Unlock()

	if target == nil {
		return len(p), nil
	}
	return target.Write(p)
}

func (w *ptyResponseWriter) attach(p pty.PTY) {
	w.mu.Lock()
	w.pty = p
	w.mu.Unlock()
}

// DefaultScrollbackLines is the scrollback ring capacity a session is given
// when the caller does not configure one explicitly.
const DefaultScrollbackLines = 10000

// Option configures a Session at construction time.
type Option func(*sessionConfig)

type sessionConfig struct {
	scrollbackLines int
}

// WithScrollback overrides the scrollback ring's capacity. A value of 0
// makes scrollback unbounded, per term.MemoryScrollback's own convention.
func WithScrollback(lines int) Option {
	return func(c *sessionConfig) {
		c.scrollbackLines = lines
	}
}

// New creates a session with a cols x rows screen model. No shell is
// spawned yet; call SpawnShell to start one. The primary grid's scrollback
// ring defaults to DefaultScrollbackLines; pass WithScrollback to override.
func New(cols, rows int, opts ...Option) (*Session, error) {
	if cols <= 0 || rows <= 0 {
		return nil, ErrInvalidSize
	}

	cfg := sessionConfig{scrollbackLines: DefaultScrollbackLines}
	for _, opt := range opts {
		opt(&cfg)
	}

	resp := &ptyResponseWriter{}
	s := &Session{
		term: term.New(
			term.WithSize(rows, cols),
			term.WithResponse(resp),
			term.WithScrollback(term.NewMemoryScrollback(cfg.scrollbackLines)),
		),
		resp: resp,
		cols: uint16(cols),
		rows: uint16(rows),
	}
	s.config.Store(&ConfigSnapshot{})
	return s, nil
}

// SpawnShell starts shellPath (or the host's $SHELL, falling back to
// /bin/sh, when shellPath is empty) attached to a new pseudo-terminal sized
// to match the session's current screen model.
func (s *Session) SpawnShell(shellPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if s.pty != nil {
		return ErrAlreadySpawned
	}

	if shellPath == "" {
		shellPath = os.Getenv("SHELL")
	}
	if shellPath == "" {
		shellPath = "/bin/sh"
	}

	p, err := pty.Spawn(shellPath, nil, s.cols, s.rows)
	if err != nil {
		return fmt.Errorf("session: spawn shell %q: %w", shellPath, err)
	}

	s.pty = p
	s.resp.attach(p)
	return nil
}

// PTYFile returns the master side of the pseudo-terminal so the host can
// integrate it into its own event loop (select/epoll/kqueue). Returns
// ErrNotSpawned if no shell has been spawned yet.
func (s *Session) PTYFile() (*os.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pty == nil {
		return nil, ErrNotSpawned
	}
	return s.pty.File(), nil
}

// ReadPTY drains one chunk of output from the child and feeds it through the
// parser into the screen model. It returns the number of bytes consumed, or
// an error (io.EOF once the child's side of the terminal is gone). The host
// calls this once per readability notification from its event loop. The
// underlying PTY read blocks: called with no output pending, ReadPTY waits
// until the child writes or the terminal closes.
func (s *Session) ReadPTY() (int, error) {
	s.mu.Lock()
	p := s.pty
	closed := s.closed
	s.mu.Unlock()

	if closed {
		return 0, ErrClosed
	}
	if p == nil {
		return 0, ErrNotSpawned
	}

	buf := make([]byte, 4096)
	n, err := p.Read(buf)
	if n > 0 {
		// Parsing runs under s.mu so that every reply byte term.Write emits
		// through resp (DA/DSR/OSC answers) reaches the PTY before a
		// concurrent WritePTY can interleave host bytes in between them —
		// one chunk of host output may trigger more than one reply write.
		s.mu.Lock()
		s.term.Write(buf[:n])
		s.mu.Unlock()
	}
	return n, err
}

// WritePTY sends host-originated input (keystrokes, pastes) to the child.
func (s *Session) WritePTY(data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}
	if s.pty == nil {
		return 0, ErrNotSpawned
	}
	return s.pty.Write(data)
}

// Resize changes the screen model's dimensions and, if a shell is running,
// signals the new size (including pixel geometry, when known) down the PTY.
func (s *Session) Resize(cols, rows, pixelWidth, pixelHeight int) error {
	if cols <= 0 || rows <= 0 {
		return ErrInvalidSize
	}

	s.mu.Lock()
	s.cols = uint16(cols)
	s.rows = uint16(rows)
	p := s.pty
	// Resize runs under s.mu for the same reason ReadPTY holds it across
	// term.Write: the coarse lock, not term's own RWMutex, is what keeps a
	// resize from interleaving with a concurrent PTY read mid-parse.
	s.term.Resize(rows, cols)
	s.mu.Unlock()

	if p == nil {
		return nil
	}
	return p.Resize(uint16(cols), uint16(rows), uint16(pixelWidth), uint16(pixelHeight))
}

// Close reaps the child (if any), closes the PTY, and releases the session.
// Further calls to Close are safe no-ops.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.pty == nil {
		return nil
	}

	closeErr := s.pty.Close()
	_ = s.pty.Kill()
	_, _ = s.pty.Wait()
	return closeErr
}
