package module

import (
	"time"

	"releves/internal/platform/config"
)

// Options holds configuration settings for the readings module
type Options struct {
	ListLimit     int
	NotifyTimeout time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	rf := cfg.Prefix("RELEVES_")
	return Options{
		ListLimit:     rf.MayInt("LIST_LIMIT", 500),
		NotifyTimeout: rf.MayDuration("NOTIFY_TIMEOUT", 5*time.Second),
	}
}
