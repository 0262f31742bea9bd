package deduplication

import (
	"fmt"
)

// Config holds configuration for duplicate detection
type Config struct {
	// TaskThreshold is the similarity a candidate must exceed (strictly) to
	// match in the task-scope check
	// Default: 0.7
	TaskThreshold float64

	// DeferredThreshold is the similarity a candidate must exceed (strictly)
	// in the deferred-list check
	// Default: 0.8
	DeferredThreshold float64

	// UseSynonyms enables the synonym rule in the task-scope check.
	// The deferred-list check never uses synonyms.
	// Default: true
	UseSynonyms bool

	// CacheSize is the number of similarity scores to memoize (0 disables)
	// Default: 512
	CacheSize int
}

// DefaultConfig returns the default detection configuration
func DefaultConfig() Config {
	return Config{
		TaskThreshold:     0.7,
		DeferredThreshold: 0.8,
		UseSynonyms:       true,
		CacheSize:         512,
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if c.TaskThreshold < 0.0 || c.TaskThreshold > 1.0 {
		return fmt.Errorf("task_threshold must be between 0.0 and 1.0 (got %.2f)", c.TaskThreshold)
	}
	if c.DeferredThreshold < 0.0 || c.DeferredThreshold > 1.0 {
		return fmt.Errorf("deferred_threshold must be between 0.0 and 1.0 (got %.2f)", c.DeferredThreshold)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size cannot be negative (got %d)", c.CacheSize)
	}
	if c.CacheSize > 100000 {
		return fmt.Errorf("cache_size too large (got %d, max 100000)", c.CacheSize)
	}
	return nil
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf("Config{TaskThreshold: %.2f, DeferredThreshold: %.2f, Synonyms: %t, CacheSize: %d}",
		c.TaskThreshold, c.DeferredThreshold, c.UseSynonyms, c.CacheSize)
}
