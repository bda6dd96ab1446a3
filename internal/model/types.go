// Package model defines the resolved practice settings shared by the CLI
// and the frontends.
package model

import "time"

// Frontend names a display implementation.
type Frontend string

// Supported frontends.
const (
	FrontendTUI   Frontend = "tui"
	FrontendPlain Frontend = "plain"
)

// Config defines practice settings after config file values and flags are
// merged.
type Config struct {
	KeySet      string
	Mode        string
	Width       int
	WordList    string
	Duration    time.Duration
	Tick        time.Duration
	Trail       int
	Frontend    Frontend
	Seed        int64
	NatsURL     string
	NatsSubject string
}

// Relayed reports whether key presses are also read from NATS.
func (c Config) Relayed() bool {
	return c.NatsURL != "" || c.NatsSubject != ""
}

// SeedOr returns the configured seed, or fallback when none is set.
func (c Config) SeedOr(fallback int64) int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return fallback
}
