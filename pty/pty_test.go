package pty

import (
	"bytes"
	"os/exec"
	"testing"
	"time"
)

func TestStartEchoesInput(t *testing.T) {
	p, err := Start(exec.Command("/bin/cat"), 80, 24)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Close()

	if _, err := p.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	buf := make([]byte, 64)
	deadline := time.Now().Add(2 * time.Second)
	var got []byte
	for time.Now().Before(deadline) && !bytes.Contains(got, []byte("hello")) {
		n, err := p.Read(buf)
		if n > 0 {
			got = append(got, buf[:n]...)
		}
		if err != nil {
			break
		}
	}

	if !bytes.Contains(got, []byte("hello")) {
		t.Fatalf("Read = %q, want it to contain %q", got, "hello")
	}
}

func TestResize(t *testing.T) {
	p, err := Start(exec.Command("/bin/cat"), 80, 24)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Close()

	if err := p.Resize(100, 40, 0, 0); err != nil {
		t.Fatalf("Resize: %v", err)
	}
}

func TestWaitReapsChild(t *testing.T) {
	p, err := Start(exec.Command("/bin/true"), 80, 24)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Close()

	state, err := p.Wait()
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if state == nil {
		t.Fatal("Wait returned nil ProcessState")
	}
	if !state.Exited() {
		t.Error("ProcessState.Exited() = false, want true")
	}
}

func TestReadReturnsEOFAfterChildExits(t *testing.T) {
	p, err := Start(exec.Command("/bin/true"), 80, 24)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Close()

	buf := make([]byte, 64)
	deadline := time.Now().Add(2 * time.Second)
	for {
		_, err := p.Read(buf)
		if err != nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Read never returned an error after child exit")
		}
	}
}

func TestSpawnSetsEnvironment(t *testing.T) {
	p, err := Spawn("/bin/sh", []string{"-c", "echo $TERM $COLUMNS $LINES"}, 90, 30)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	defer p.Close()

	buf := make([]byte, 256)
	deadline := time.Now().Add(2 * time.Second)
	var got []byte
	for time.Now().Before(deadline) {
		n, err := p.Read(buf)
		if n > 0 {
			got = append(got, buf[:n]...)
		}
		if err != nil {
			break
		}
	}

	if !bytes.Contains(got, []byte("xterm-256color 90 30")) {
		t.Fatalf("output = %q, want it to contain %q", got, "xterm-256color 90 30")
	}
}
