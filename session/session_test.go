package session

import (
	"bytes"
	"testing"
	"time"
)

func TestNew_InvalidSize(t *testing.T) {
	if _, err := New(0, 24); err != ErrInvalidSize {
		t.Errorf("New(0, 24) err = %v, want ErrInvalidSize", err)
	}
	if _, err := New(80, 0); err != ErrInvalidSize {
		t.Errorf("New(80, 0) err = %v, want ErrInvalidSize", err)
	}
}

func TestNew_GridSize(t *testing.T) {
	s, err := New(80, 24)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	cols, rows := s.GridSize()
	if cols != 80 || rows != 24 {
		t.Errorf("GridSize() = (%d, %d), want (80, 24)", cols, rows)
	}
}

func TestIOBeforeSpawn(t *testing.T) {
	s, err := New(80, 24)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if _, err := s.ReadPTY(); err != ErrNotSpawned {
		t.Errorf("ReadPTY before spawn: err = %v, want ErrNotSpawned", err)
	}
	if _, err := s.WritePTY([]byte("x")); err != ErrNotSpawned {
		t.Errorf("WritePTY before spawn: err = %v, want ErrNotSpawned", err)
	}
	if _, err := s.PTYFile(); err != ErrNotSpawned {
		t.Errorf("PTYFile before spawn: err = %v, want ErrNotSpawned", err)
	}
}

func TestSpawnShell_Echo(t *testing.T) {
	s, err := New(80, 24)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if err := s.SpawnShell("/bin/cat"); err != nil {
		t.Fatalf("SpawnShell: %v", err)
	}
	if err := s.SpawnShell("/bin/cat"); err != ErrAlreadySpawned {
		t.Errorf("second SpawnShell: err = %v, want ErrAlreadySpawned", err)
	}

	if _, err := s.WritePTY([]byte("hi")); err != nil {
		t.Fatalf("WritePTY: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := s.ReadPTY(); err != nil {
			break
		}
		if s.term.Cell(0, 0) != nil && s.term.Cell(0, 0).Char == 'h' {
			break
		}
	}

	if got := s.Cell(0, 0); got.Char != 'h' {
		t.Errorf("Cell(0,0).Char = %q, want 'h'", rune(got.Char))
	}
	if got := s.Cell(0, 1); got.Char != 'i' {
		t.Errorf("Cell(0,1).Char = %q, want 'i'", rune(got.Char))
	}
}

func TestResizeWithoutShell(t *testing.T) {
	s, err := New(80, 24)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if err := s.Resize(100, 40, 0, 0); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	cols, rows := s.GridSize()
	if cols != 100 || rows != 40 {
		t.Errorf("GridSize() = (%d, %d), want (100, 40)", cols, rows)
	}

	if err := s.Resize(0, 40, 0, 0); err != ErrInvalidSize {
		t.Errorf("Resize(0, 40): err = %v, want ErrInvalidSize", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	s, err := New(80, 24)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.SpawnShell("/bin/cat"); err != nil {
		t.Fatalf("SpawnShell: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := s.SpawnShell("/bin/cat"); err != ErrClosed {
		t.Errorf("SpawnShell after Close: err = %v, want ErrClosed", err)
	}
}

func TestConfigSnapshotAndPoll(t *testing.T) {
	s, err := New(80, 24)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if g := s.PollConfig(); g != 0 {
		t.Errorf("initial PollConfig() = %d, want 0", g)
	}

	s.SetConfig(ConfigSnapshot{FontSize: 14, FontFamily: "monospace"})
	if g := s.PollConfig(); g != 1 {
		t.Errorf("PollConfig() after SetConfig = %d, want 1", g)
	}

	cfg := s.Config()
	if cfg.FontSize != 14 || cfg.FontFamily != "monospace" {
		t.Errorf("Config() = %+v, want FontSize=14 FontFamily=monospace", cfg)
	}
}

func TestCommandTrackingEmpty(t *testing.T) {
	s, err := New(80, 24)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if n := s.CommandCount(); n != 0 {
		t.Errorf("CommandCount() = %d, want 0", n)
	}
	if row := s.CommandPromptRow(0); row != -1 {
		t.Errorf("CommandPromptRow(0) = %d, want -1", row)
	}
	if code := s.CommandExitCode(0); code != -1 {
		t.Errorf("CommandExitCode(0) = %d, want -1", code)
	}
	if ms := s.CommandDurationMS(0); ms != -1 {
		t.Errorf("CommandDurationMS(0) = %d, want -1", ms)
	}
}

func TestCommandTrackingAfterMarks(t *testing.T) {
	s, err := New(80, 24)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	s.term.Write([]byte("\x1b]133;C\x07"))
	time.Sleep(2 * time.Millisecond)
	s.term.Write([]byte("\x1b]133;D;0\x07"))

	if n := s.CommandCount(); n != 1 {
		t.Fatalf("CommandCount() = %d, want 1", n)
	}
	if code := s.CommandExitCode(0); code != 0 {
		t.Errorf("CommandExitCode(0) = %d, want 0", code)
	}
	if ms := s.CommandDurationMS(0); ms < 0 {
		t.Errorf("CommandDurationMS(0) = %d, want >= 0", ms)
	}
}

func TestScrollbackAndExtractText(t *testing.T) {
	s, err := New(3, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	s.term.WriteString("AAA\r\nBBB\r\nCCC\r\nDDD\r\n")

	if s.ScrollbackLen() == 0 {
		t.Fatal("expected at least one scrollback line after overflowing a 3-row grid")
	}

	text := s.ExtractText(0, 0, s.ScrollbackLen(), 3)
	if !bytes.Contains([]byte(text), []byte("AAA")) {
		t.Errorf("ExtractText = %q, want it to contain %q", text, "AAA")
	}
}

func TestNew_WithScrollbackCapacity(t *testing.T) {
	s, err := New(3, 2, WithScrollback(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	s.term.WriteString("AAA\r\nBBB\r\nCCC\r\nDDD\r\nEEE\r\n")

	if got := s.ScrollbackLen(); got != 2 {
		t.Fatalf("ScrollbackLen() = %d, want 2 (capacity override should cap eviction)", got)
	}

	text := s.ExtractText(0, 0, s.ScrollbackLen(), 3)
	if bytes.Contains([]byte(text), []byte("AAA")) {
		t.Errorf("ExtractText = %q, oldest row should have been evicted once capacity was exceeded", text)
	}
}

func TestNew_DefaultScrollbackCapacity(t *testing.T) {
	s, err := New(80, 24)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if s.ScrollbackLen() != 0 {
		t.Fatalf("ScrollbackLen() = %d, want 0 before anything scrolls off", s.ScrollbackLen())
	}
}
