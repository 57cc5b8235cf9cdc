package term

import "testing"

func TestWorkingDirectoryTerminators(t *testing.T) {
	tests := []struct {
		name  string
		write string
		want  string
	}{
		{"BEL terminator", "\x1b]7;file://localhost/home/user\x07", "file://localhost/home/user"},
		{"ST terminator", "\x1b]7;file://myhost/var/log\x1b\\", "file://myhost/var/log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := New(WithSize(24, 80))
			tm.WriteString(tt.write)
			if got := tm.WorkingDirectory(); got != tt.want {
				t.Errorf("WorkingDirectory() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWorkingDirectoryNotSetReturnsEmpty(t *testing.T) {
	tm := New(WithSize(24, 80))
	if got := tm.WorkingDirectory(); got != "" {
		t.Errorf("WorkingDirectory() = %q, want empty before any OSC 7", got)
	}
	if got := tm.WorkingDirectoryPath(); got != "" {
		t.Errorf("WorkingDirectoryPath() = %q, want empty before any OSC 7", got)
	}
}

func TestWorkingDirectoryLatestOSC7Wins(t *testing.T) {
	tm := New(WithSize(24, 80))

	tm.WriteString("\x1b]7;file://localhost/home/user\x07")
	if got := tm.WorkingDirectory(); got != "file://localhost/home/user" {
		t.Fatalf("WorkingDirectory() = %q, want %q", got, "file://localhost/home/user")
	}

	tm.WriteString("\x1b]7;file://localhost/tmp\x07")
	if got := tm.WorkingDirectory(); got != "file://localhost/tmp" {
		t.Errorf("WorkingDirectory() = %q, want %q after a second OSC 7 (a shell cd emits a fresh one each prompt)", got, "file://localhost/tmp")
	}
}

func TestWorkingDirectoryPathStripsSchemeAndHost(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{"named host", "file://localhost/home/user", "/home/user"},
		{"FQDN host", "file://mycomputer.local/var/log/system", "/var/log/system"},
		{"empty host (some shells emit file:///path)", "file:///home/user", "/home/user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := New(WithSize(24, 80))
			tm.WriteString("\x1b]7;" + tt.uri + "\x07")
			if got := tm.WorkingDirectoryPath(); got != tt.want {
				t.Errorf("WorkingDirectoryPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWorkingDirectoryMiddlewareCanRewriteTheURI(t *testing.T) {
	var called bool
	var received string

	tm := New(WithSize(24, 80), WithMiddleware(&Middleware{
		SetWorkingDirectory: func(uri string, next func(string)) {
			called = true
			received = uri
			next(uri)
		},
	}))

	tm.WriteString("\x1b]7;file://localhost/test\x07")

	if !called {
		t.Fatal("expected the SetWorkingDirectory hook to be called")
	}
	if received != "file://localhost/test" {
		t.Errorf("middleware received %q, want %q", received, "file://localhost/test")
	}
	if got := tm.WorkingDirectory(); got != "file://localhost/test" {
		t.Errorf("WorkingDirectory() = %q, want %q", got, "file://localhost/test")
	}
}

func TestWorkingDirectoryMiddlewareCanBlockTheUpdate(t *testing.T) {
	tm := New(WithSize(24, 80), WithMiddleware(&Middleware{
		SetWorkingDirectory: func(uri string, next func(string)) {
			// never calls next: the update should not take effect
		},
	}))

	tm.WriteString("\x1b]7;file://localhost/blocked\x07")

	if got := tm.WorkingDirectory(); got != "" {
		t.Errorf("WorkingDirectory() = %q, want empty — middleware that never calls next should block the update", got)
	}
}
