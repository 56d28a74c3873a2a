package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"cpu-scheduling-simulator/internal/core"
	"cpu-scheduling-simulator/internal/logging"
	"cpu-scheduling-simulator/internal/schedulers"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type MetricsConfig struct {
	Enabled bool
	Port    int
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

type LogConfig struct {
	Level string
	JSON  bool
}

type SchedulerConfig struct {
	Port                                     int
	RoundRobinTimeQuantum                    int
	MultilevelFeedbackQueueLevelsTimeQuantum []int
	SafetyBuffer                             int
	MaxProcesses                             int
	Metrics                                  MetricsConfig
	RateLimit                                RateLimitConfig
	Tracing                                  TracingConfig
	Log                                      LogConfig
}

var (
	once   sync.Once
	mu     sync.RWMutex
	config *SchedulerConfig
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 9095)
	v.SetDefault("scheduler.round_robin.time_quantum", 2)
	v.SetDefault("scheduler.multilevel_feedback_queue.levels_time_quantum", []int{2, 4})
	v.SetDefault("scheduler.safety_buffer", schedulers.DefaultSafetyBuffer)
	v.SetDefault("scheduler.max_processes", core.MaxProcesses)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9096)
	v.SetDefault("ratelimit.rps", 20)
	v.SetDefault("ratelimit.burst", 40)
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// Load reads configuration from path, or from ./config.yaml when path is
// empty. A missing default file is not an error. Environment variables
// prefixed with SCHEDSIM_ override file values.
func Load(path string) (*SchedulerConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("SCHEDSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &SchedulerConfig{
		Port:                                     v.GetInt("port"),
		RoundRobinTimeQuantum:                    v.GetInt("scheduler.round_robin.time_quantum"),
		MultilevelFeedbackQueueLevelsTimeQuantum: v.GetIntSlice("scheduler.multilevel_feedback_queue.levels_time_quantum"),
		SafetyBuffer:                             v.GetInt("scheduler.safety_buffer"),
		MaxProcesses:                             v.GetInt("scheduler.max_processes"),
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
			Port:    v.GetInt("metrics.port"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("ratelimit.rps"),
			Burst: v.GetInt("ratelimit.burst"),
		},
		Tracing: TracingConfig{
			Enabled:  v.GetBool("tracing.enabled"),
			Endpoint: v.GetString("tracing.endpoint"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			JSON:  v.GetBool("log.json"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *SchedulerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	}
	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("%w: metrics port %d", ErrInvalidConfig, c.Metrics.Port)
	}
	if c.RoundRobinTimeQuantum <= 0 {
		return fmt.Errorf("%w: round robin time quantum %d", ErrInvalidConfig, c.RoundRobinTimeQuantum)
	}
	if len(c.MultilevelFeedbackQueueLevelsTimeQuantum) == 0 {
		return fmt.Errorf("%w: multilevel feedback queue needs at least one level", ErrInvalidConfig)
	}
	for _, q := range c.MultilevelFeedbackQueueLevelsTimeQuantum {
		if q <= 0 {
			return fmt.Errorf("%w: level time quantum %d", ErrInvalidConfig, q)
		}
	}
	if c.MaxProcesses <= 0 || c.MaxProcesses > core.MaxProcesses {
		return fmt.Errorf("%w: max processes must be within 1..%d", ErrInvalidConfig, core.MaxProcesses)
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalidConfig)
	}
	return nil
}

// SchedulerOptions converts the scheduler section into run options.
func (c *SchedulerConfig) SchedulerOptions() schedulers.Options {
	return schedulers.Options{
		TimeQuantum:       c.RoundRobinTimeQuantum,
		LevelsTimeQuantum: append([]int(nil), c.MultilevelFeedbackQueueLevelsTimeQuantum...),
		SafetyBuffer:      c.SafetyBuffer,
	}
}

// Logger builds a logger from the log section.
func (c *SchedulerConfig) Logger() *logging.Logger {
	return logging.NewLogger(logging.ParseLevel(c.Log.Level), c.Log.JSON)
}

// SetSchedulerConfig installs c as the process-wide configuration.
func SetSchedulerConfig(c *SchedulerConfig) {
	mu.Lock()
	config = c
	mu.Unlock()
}

// GetSchedulerConfig returns the process-wide configuration, loading
// ./config.yaml on first use when none was installed.
func GetSchedulerConfig() *SchedulerConfig {
	mu.RLock()
	c := config
	mu.RUnlock()
	if c != nil {
		return c
	}

	once.Do(func() {
		loaded, err := Load("")
		if err != nil {
			logging.Default().WithComponent("config").Fatal("failed to load configuration", logging.Fields{
				"error": err.Error(),
			})
			return
		}
		mu.Lock()
		if config == nil {
			config = loaded
		}
		mu.Unlock()
	})

	mu.RLock()
	defer mu.RUnlock()
	return config
}
