package model

import "time"

// Shared defaults used by the TUI and the CLI subcommands.
const (
	DefaultTypingDelay  = 1500 * time.Millisecond
	DefaultQueryTimeout = 5 * time.Second
	DefaultSearchLimit  = 5
	DefaultRole         = "MANAGER"
)
