// Package config loads jiggle settings from flags, environment variables and
// an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/stigoleg/jiggle/internal/jiggler"
	"github.com/stigoleg/jiggle/internal/session"
	"github.com/stigoleg/jiggle/internal/util"
)

// EnvPrefix prefixes every environment override, e.g. JIGGLE_INTERVAL_SECONDS.
const EnvPrefix = "JIGGLE"

// DefaultLogFile receives log output when the terminal UI owns the screen.
const DefaultLogFile = "jiggle.log"

// Config holds the entire application configuration.
type Config struct {
	IntervalSeconds    float64       `mapstructure:"interval_seconds" yaml:"interval_seconds"`
	JitterRadiusPixels int           `mapstructure:"jitter_radius_pixels" yaml:"jitter_radius_pixels"`
	Mode               string        `mapstructure:"mode" yaml:"mode"`
	Glide              time.Duration `mapstructure:"glide" yaml:"glide"`
	MaxRetries         int           `mapstructure:"max_retries" yaml:"max_retries"`
	SkipWhenActive     bool          `mapstructure:"skip_when_active" yaml:"skip_when_active"`
	Failsafe           bool          `mapstructure:"failsafe" yaml:"failsafe"`
	ClickAfterMove     bool          `mapstructure:"click_after_move" yaml:"click_after_move"`
	StopTimeout        time.Duration `mapstructure:"stop_timeout" yaml:"stop_timeout"`
	Duration           string        `mapstructure:"duration" yaml:"duration"`
	Clock              string        `mapstructure:"clock" yaml:"clock"`
	Headless           bool          `mapstructure:"headless" yaml:"headless"`
	Seed               int64         `mapstructure:"seed" yaml:"seed"`
	Zones              ZoneConfig    `mapstructure:"avoidance_zone_sizes" yaml:"avoidance_zone_sizes"`
	Logger             LoggerConfig  `mapstructure:"logger" yaml:"logger"`
}

// ZoneConfig sizes the avoidance zones. Sizes are "WIDTHxHEIGHT" strings.
type ZoneConfig struct {
	TopRight      string `mapstructure:"top_right" yaml:"top_right"`
	StartMenu     string `mapstructure:"start_menu" yaml:"start_menu"`
	TaskbarHeight int    `mapstructure:"taskbar_height" yaml:"taskbar_height"`
	TaskbarEdge   string `mapstructure:"taskbar_edge" yaml:"taskbar_edge"`
	CornerGuard   int    `mapstructure:"corner_guard" yaml:"corner_guard"`
}

// LoggerConfig configures the console and file log outputs.
type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	d := jiggler.DefaultOptions()

	v.SetDefault("interval_seconds", d.Interval.Seconds())
	v.SetDefault("jitter_radius_pixels", d.JitterRadius)
	v.SetDefault("mode", string(d.Mode))
	v.SetDefault("glide", d.Glide)
	v.SetDefault("max_retries", d.MaxRetries)
	v.SetDefault("skip_when_active", d.SkipWhenActive)
	v.SetDefault("failsafe", true)
	v.SetDefault("click_after_move", d.ClickAfterMove)
	v.SetDefault("stop_timeout", session.DefaultStopTimeout)
	v.SetDefault("duration", "")
	v.SetDefault("clock", "")
	v.SetDefault("headless", false)
	v.SetDefault("seed", 0)

	// -- Avoidance zones --
	v.SetDefault("avoidance_zone_sizes.top_right", d.Zones.TopRight.String())
	v.SetDefault("avoidance_zone_sizes.start_menu", d.Zones.StartMenu.String())
	v.SetDefault("avoidance_zone_sizes.taskbar_height", d.Zones.TaskbarHeight)
	v.SetDefault("avoidance_zone_sizes.taskbar_edge", string(d.Zones.TaskbarEdge))
	v.SetDefault("avoidance_zone_sizes.corner_guard", d.Zones.CornerGuard)

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", true)
}

// ConfigDir returns ~/.config/jiggle.
func ConfigDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "jiggle"), nil
}

// ReadInConfig wires the environment and reads cfgFile, or jiggle.yaml from
// the working directory or ConfigDir when cfgFile is empty. A missing default
// file is not an error.
func ReadInConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("jiggle")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// NewConfigFromViper decodes and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Duration != "" && c.Clock != "" {
		return errors.New("duration and clock cannot be used together")
	}
	if c.Duration != "" {
		d, err := util.ParseDuration(c.Duration)
		if err != nil {
			return err
		}
		if d == 0 {
			return fmt.Errorf("duration must be positive, got %q (leave it empty to run until stopped)", c.Duration)
		}
	}
	if c.StopTimeout <= 0 {
		return fmt.Errorf("stop_timeout must be positive, got %v", c.StopTimeout)
	}
	if c.Clock != "" {
		if _, err := util.ParseClock(c.Clock, time.Now()); err != nil {
			return err
		}
	}
	if _, err := c.zoneSizes(); err != nil {
		return err
	}
	switch strings.ToLower(c.Logger.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	return c.options(0).Validate()
}

// JigglerOptions converts the configuration into run options. A clock time is
// resolved against now into a run duration.
func (c *Config) JigglerOptions(now time.Time) (jiggler.Options, error) {
	var run time.Duration
	switch {
	case c.Duration != "":
		d, err := util.ParseDuration(c.Duration)
		if err != nil {
			return jiggler.Options{}, err
		}
		run = d
	case c.Clock != "":
		d, err := util.UntilClock(c.Clock, now)
		if err != nil {
			return jiggler.Options{}, err
		}
		run = d
	}

	opts := c.options(run)
	zones, err := c.zoneSizes()
	if err != nil {
		return jiggler.Options{}, err
	}
	opts.Zones = zones
	return opts, opts.Validate()
}

func (c *Config) options(run time.Duration) jiggler.Options {
	zones, _ := c.zoneSizes()
	return jiggler.Options{
		Interval:       time.Duration(c.IntervalSeconds * float64(time.Second)),
		JitterRadius:   c.JitterRadiusPixels,
		Mode:           jiggler.Mode(strings.ToLower(c.Mode)),
		Glide:          c.Glide,
		MaxRetries:     c.MaxRetries,
		Zones:          zones,
		SkipWhenActive: c.SkipWhenActive,
		ClickAfterMove: c.ClickAfterMove,
		Duration:       run,
		Seed:           c.Seed,
	}
}

func (c *Config) zoneSizes() (jiggler.ZoneSizes, error) {
	tw, th, err := util.ParseSize(c.Zones.TopRight)
	if err != nil {
		return jiggler.ZoneSizes{}, fmt.Errorf("avoidance_zone_sizes.top_right: %w", err)
	}
	sw, sh, err := util.ParseSize(c.Zones.StartMenu)
	if err != nil {
		return jiggler.ZoneSizes{}, fmt.Errorf("avoidance_zone_sizes.start_menu: %w", err)
	}
	return jiggler.ZoneSizes{
		TopRight:      jiggler.Size{Width: tw, Height: th},
		StartMenu:     jiggler.Size{Width: sw, Height: sh},
		TaskbarHeight: c.Zones.TaskbarHeight,
		TaskbarEdge:   jiggler.Edge(strings.ToLower(c.Zones.TaskbarEdge)),
		CornerGuard:   c.Zones.CornerGuard,
	}, nil
}
