// Package config loads tasktabs settings from a TOML file and command line
// flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bma-d/tasktabs/internal/input"
	"github.com/bma-d/tasktabs/internal/report"
	"github.com/bma-d/tasktabs/internal/tabs"
	"github.com/bma-d/tasktabs/internal/taskwarrior"
)

// FileName is the config file looked up under the user config directory.
const FileName = "config.toml"

const defaultWorkers = 3

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Duration is a time.Duration that decodes from strings such as "2s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config mirrors the TOML file.
type Config struct {
	TaskBinary    string            `toml:"task_binary"`
	Interval      Duration          `toml:"interval"`
	FetchTimeout  Duration          `toml:"fetch_timeout"`
	Workers       int               `toml:"workers"`
	InitialTab    string            `toml:"initial_tab"`
	RefreshPolicy string            `toml:"refresh_policy"`
	Mouse         bool              `toml:"mouse"`
	Directives    map[string]string `toml:"directives"`
}

// Defaults returns the settings used when no file or flag says otherwise.
func Defaults() Config {
	return Config{
		TaskBinary:    taskwarrior.DefaultBinary,
		Interval:      Duration{input.DefaultInterval},
		FetchTimeout:  Duration{taskwarrior.DefaultTimeout},
		Workers:       defaultWorkers,
		InitialTab:    strings.ToLower(tabs.Due.Title()),
		RefreshPolicy: report.PerTab.String(),
		Mouse:         true,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/tasktabs/config.toml or its platform
// equivalent.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		home, hErr := os.UserHomeDir()
		if hErr != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "tasktabs", FileName), nil
}

// Load decodes path over Defaults. A missing file is an error only when
// required is set. Keys the file sets but Config does not know are returned
// so callers can warn about them.
func Load(path string, required bool) (Config, []string, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return Defaults(), nil, nil
		}
		return Defaults(), nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return cfg, unknown, nil
}

// Settings is a validated Config in the types the rest of the program uses.
type Settings struct {
	TaskBinary   string
	Interval     time.Duration
	FetchTimeout time.Duration
	Workers      int
	InitialTab   tabs.Tab
	Policy       report.Policy
	Mouse        bool
	Directives   map[tabs.Tab][]string
}

// Resolve clamps numeric settings to their minimums and validates names.
func (c Config) Resolve() (Settings, error) {
	s := Settings{
		TaskBinary:   strings.TrimSpace(c.TaskBinary),
		Interval:     c.Interval.Duration,
		FetchTimeout: c.FetchTimeout.Duration,
		Workers:      c.Workers,
		Mouse:        c.Mouse,
		Directives:   make(map[tabs.Tab][]string, len(c.Directives)),
	}
	if s.TaskBinary == "" {
		s.TaskBinary = taskwarrior.DefaultBinary
	}
	if s.Interval < input.MinInterval {
		s.Interval = input.MinInterval
	}
	if s.FetchTimeout < taskwarrior.MinTimeout {
		s.FetchTimeout = taskwarrior.MinTimeout
	}
	if s.Workers < 1 {
		s.Workers = 1
	}

	var errs []error
	tab, err := tabs.Parse(c.InitialTab)
	if err != nil {
		errs = append(errs, fmt.Errorf("initial_tab: %w", err))
	}
	s.InitialTab = tab

	policy, err := report.ParsePolicy(c.RefreshPolicy)
	if err != nil {
		errs = append(errs, fmt.Errorf("refresh_policy: %w", err))
	}
	s.Policy = policy

	for name, directive := range c.Directives {
		tab, err := tabs.Parse(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("directives.%s: %w", name, err))
			continue
		}
		args := strings.Fields(directive)
		if len(args) == 0 {
			errs = append(errs, fmt.Errorf("directives.%s: empty directive", name))
			continue
		}
		s.Directives[tab] = args
	}

	if len(errs) > 0 {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return s, nil
}
