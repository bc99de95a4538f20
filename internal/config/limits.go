package config

import "time"

type Limits struct {
	MaxCodeSize    int             `yaml:"max_code_size" validate:"required,min=1000,max=10000000"`
	AnalyzeTimeout time.Duration   `yaml:"analyze_timeout" validate:"required,min=100ms,max=5m"`
	InsightTimeout time.Duration   `yaml:"insight_timeout" validate:"required,min=1s,max=1m"`
	CacheTTL       time.Duration   `yaml:"cache_ttl" validate:"required,min=1m,max=168h"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" validate:"required"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute" validate:"required,min=1,max=1000"`
	BurstSize         int `yaml:"burst_size" validate:"required,min=1,max=100"`
}

func DefaultLimits() Limits {
	return Limits{
		MaxCodeSize:    1_000_000,
		AnalyzeTimeout: 10 * time.Second,
		InsightTimeout: 10 * time.Second,
		CacheTTL:       12 * time.Hour,
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
			BurstSize:         10,
		},
	}
}
