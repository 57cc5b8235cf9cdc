package session

// ConfigSnapshot holds the host-visible configuration values the engine
// exposes but never populates itself: font and window geometry the host
// samples at startup and on reload, plus the theme colors used to resolve
// default foreground/background. The engine does no file I/O; a companion
// host-side watcher calls SetConfig whenever these change.
type ConfigSnapshot struct {
	FontSize     float64
	FontFamily   string
	WindowWidth  int
	WindowHeight int
	ThemeFg      uint32 // packed 0x00RRGGBB
	ThemeBg      uint32 // packed 0x00RRGGBB
}

// Config returns the currently active configuration snapshot.
func (s *Session) Config() ConfigSnapshot {
	return *s.config.Load()
}

// SetConfig installs a new configuration snapshot and bumps the generation
// counter so PollConfig observers notice the change. Intended to be called
// by the host's config-reload watcher, not by the engine itself.
func (s *Session) SetConfig(cfg ConfigSnapshot) {
	s.config.Store(&cfg)
	s.generation.Add(1)
}

// PollConfig returns the monotonic generation counter, incremented every
// time SetConfig installs a new snapshot. Hosts poll this cheaply to decide
// whether to re-fetch Config().
func (s *Session) PollConfig() uint64 {
	return s.generation.Load()
}
