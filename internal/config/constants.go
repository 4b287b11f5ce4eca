package config

import "time"

const (
	// Classification request timeout
	ClassifyTimeout = 60 * time.Second

	// Delay between classification retry attempts
	ClassifyRetryDelay = 2 * time.Second

	// Retention purge interval
	PurgeInterval = 12 * time.Hour
)
