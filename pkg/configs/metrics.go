package configs

import (
	"github.com/spf13/viper"
)

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	Endpoint       string `mapstructure:"endpoint"`        // standalone metrics listener; empty = main engine only
	RuntimeMetrics bool   `mapstructure:"runtime_metrics"` // collect Go runtime/process collectors
}

func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.service_name", "repositorio65")
	v.SetDefault("metrics.endpoint", "")
	v.SetDefault("metrics.runtime_metrics", true)
}
