// Package config resolves run settings from defaults, a YAML file, the environment,
// flags and the positional core count, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/srodi/corejitter/pkg/types"
)

// EnvPrefix namespaces the environment overrides.
const EnvPrefix = "COREJITTER_"

// Config holds the settings of one measurement session.
type Config struct {
	Cores         int           `yaml:"cores"`
	Interval      time.Duration `yaml:"interval"`
	Warmup        int           `yaml:"warmup"`
	LogPath       string        `yaml:"log"`
	Runs          int           `yaml:"runs"`
	SchedSwitches bool          `yaml:"sched_switches"`
	Banner        bool          `yaml:"banner"`
}

// Default returns the built-in settings. Cores stays 0 until resolved against the host.
func Default() Config {
	return Config{
		Interval: types.DefaultInterval,
		Warmup:   types.DefaultWarmupIterations,
		LogPath:  types.DefaultLogPath,
		Banner:   true,
	}
}

// LoadDotEnv loads a .env file from the working directory into the process
// environment if one exists.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// LoadFile overlays the YAML file at path onto cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays COREJITTER_* variables found through lookup onto cfg.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error
	if raw, ok := lookup(EnvPrefix + "CORES"); ok {
		n, err := ParseCores([]string{raw}, 0)
		errs = append(errs, err)
		cfg.Cores = n
	}
	if raw, ok := lookup(EnvPrefix + "INTERVAL"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("%sINTERVAL: %w", EnvPrefix, err))
		}
		cfg.Interval = d
	}
	if raw, ok := lookup(EnvPrefix + "WARMUP"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("%sWARMUP: %w", EnvPrefix, err))
		}
		cfg.Warmup = n
	}
	if raw, ok := lookup(EnvPrefix + "LOG"); ok {
		cfg.LogPath = strings.TrimSpace(raw)
	}
	if raw, ok := lookup(EnvPrefix + "RUNS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("%sRUNS: %w", EnvPrefix, err))
		}
		cfg.Runs = n
	}
	if raw, ok := lookup(EnvPrefix + "SCHED_SWITCHES"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSCHED_SWITCHES: %w", EnvPrefix, err))
		}
		cfg.SchedSwitches = b
	}
	return errors.Join(errs...)
}

// ParseCores reads the optional positional core count. With no argument it returns
// available. More than one argument or a non-positive or malformed count is an error.
func ParseCores(args []string, available int) (int, error) {
	switch len(args) {
	case 0:
		return available, nil
	case 1:
	default:
		return 0, fmt.Errorf("expected at most one core count argument, got %d", len(args))
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid core count %q: %w", args[0], err)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid core count %d: must be at least 1", n)
	}
	return n, nil
}

// Parse resolves a Config from command line args (without the program name), the
// environment lookup and the number of cores available on the host.
func Parse(args []string, lookup func(string) (string, bool), available int, output io.Writer) (Config, error) {
	fs := flag.NewFlagSet("corejitter", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: corejitter [options] [cores]\n\nOptions:\n")
		fs.PrintDefaults()
	}

	defaults := Default()
	configPath := fs.String("config", "", "YAML file with settings (flags override it)")
	interval := fs.Duration("interval", defaults.Interval, "sampling and report interval")
	warmup := fs.Int("warmup", defaults.Warmup, "discarded samples per worker before measuring")
	logPath := fs.String("log", defaults.LogPath, "append-only report log")
	runs := fs.Int("runs", 0, "stop after this many reports (0 runs until interrupted)")
	schedSwitches := fs.Bool("sched-switches", false, "add per-core context switch counts (eBPF, needs root)")
	banner := fs.Bool("banner", defaults.Banner, "print the banner when stdout is a terminal")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := defaults
	if *configPath != "" {
		if err := LoadFile(*configPath, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg, lookup); err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interval":
			cfg.Interval = *interval
		case "warmup":
			cfg.Warmup = *warmup
		case "log":
			cfg.LogPath = *logPath
		case "runs":
			cfg.Runs = *runs
		case "sched-switches":
			cfg.SchedSwitches = *schedSwitches
		case "banner":
			cfg.Banner = *banner
		}
	})

	fallback := available
	if cfg.Cores > 0 {
		fallback = cfg.Cores
	}
	cores, err := ParseCores(fs.Args(), fallback)
	if err != nil {
		return Config{}, err
	}
	cfg.Cores = cores

	return normalize(cfg), nil
}

func normalize(cfg Config) Config {
	normalized := cfg
	if normalized.Interval <= 0 {
		normalized.Interval = types.DefaultInterval
	}
	if normalized.Warmup < 0 {
		normalized.Warmup = 0
	}
	if strings.TrimSpace(normalized.LogPath) == "" {
		normalized.LogPath = types.DefaultLogPath
	}
	if normalized.Runs < 0 {
		normalized.Runs = 0
	}
	if normalized.Cores < 1 {
		normalized.Cores = 1
	}
	return normalized
}
