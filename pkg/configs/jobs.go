package configs

import "github.com/spf13/viper"

const (
	DefaultSweepEnabled         = false
	DefaultSweepIntervalMinutes = 60
	DefaultSweepMinAgeMinutes   = 30
)

// JobsConfig controls background maintenance jobs.
type JobsConfig struct {
	// SweepEnabled turns on the orphan blob sweep: blobs not referenced by
	// any document row are deleted. Orphans appear when a process dies
	// between writing a blob and committing (or rolling back) its batch.
	SweepEnabled         bool `mapstructure:"sweep_enabled"`
	SweepIntervalMinutes int  `mapstructure:"sweep_interval_minutes" rule:"min=1"`
	// SweepMinAgeMinutes protects blobs belonging to in-flight uploads.
	SweepMinAgeMinutes int `mapstructure:"sweep_min_age_minutes" rule:"min=1"`
}

func (c *JobsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("jobs.sweep_enabled", DefaultSweepEnabled)
	v.SetDefault("jobs.sweep_interval_minutes", DefaultSweepIntervalMinutes)
	v.SetDefault("jobs.sweep_min_age_minutes", DefaultSweepMinAgeMinutes)
}
