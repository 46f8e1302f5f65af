package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/marcus/otpbox/pkg/otp"
)

const configFile = ".otpbox/config.json"

// Defaults applied when neither the file nor the environment sets a value.
const (
	DefaultBoxes        = 6
	DefaultFilter       = "digits"
	DefaultSpacing      = 1
	DefaultCornerRadius = 1
	DefaultBorderWidth  = 1
)

// Config holds host preferences for the prompt. Pointer fields distinguish
// "unset" from an explicit zero.
type Config struct {
	Boxes           int    `json:"boxes,omitempty"`
	Filter          string `json:"filter,omitempty"`
	Once            bool   `json:"once,omitempty"`
	Mask            bool   `json:"mask,omitempty"`
	Bold            *bool  `json:"bold,omitempty"`
	Spacing         *int   `json:"spacing,omitempty"`
	CornerRadius    *int   `json:"corner_radius,omitempty"`
	BorderWidth     *int   `json:"border_width,omitempty"`
	BorderColor     string `json:"border_color,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`

	// Warnings lists environment values that were ignored while resolving.
	Warnings []string `json:"-"`
}

// Load reads the config from disk. A missing file yields an empty config.
func Load(baseDir string) (*Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ApplyEnv overlays OTPBOX_BOXES and OTPBOX_FILTER onto cfg. A zero box count
// is recorded in cfg.Warnings rather than applied.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("OTPBOX_BOXES"); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("OTPBOX_BOXES: invalid number %q", v)
		}
		if n == 0 {
			// zero means unset, which would quietly fall back to the default
			cfg.Warnings = append(cfg.Warnings,
				fmt.Sprintf("OTPBOX_BOXES=0 ignored, using %d boxes", cfg.BoxCount()))
		} else {
			cfg.Boxes = n
		}
	}
	if v := os.Getenv("OTPBOX_FILTER"); v != "" {
		cfg.Filter = v
	}
	return nil
}

// Resolve loads the file config and applies environment overrides.
func Resolve(baseDir string) (*Config, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BoxCount returns the configured box count or the default.
func (c *Config) BoxCount() int {
	if c.Boxes == 0 {
		return DefaultBoxes
	}
	return c.Boxes
}

// Kind returns the configured filter kind or the default.
func (c *Config) Kind() (otp.Kind, error) {
	if c.Filter == "" {
		return otp.ParseKind(DefaultFilter)
	}
	return otp.ParseKind(c.Filter)
}

// Style builds the widget style from the configured cosmetics.
func (c *Config) Style() otp.Style {
	s := otp.DefaultStyle()
	s.Spacing = intOr(c.Spacing, DefaultSpacing)
	s.CornerRadius = intOr(c.CornerRadius, DefaultCornerRadius)
	s.BorderWidth = intOr(c.BorderWidth, DefaultBorderWidth)
	if c.Bold != nil {
		s.Font.Bold = *c.Bold
	}
	if c.BorderColor != "" {
		s.BorderColor = lipglossColor(c.BorderColor)
	}
	if c.TextColor != "" {
		s.Text = lipglossColor(c.TextColor)
	}
	if c.BackgroundColor != "" {
		s.Background = lipglossColor(c.BackgroundColor)
	}
	return s
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// setter updates one config key from its string form.
type setter struct {
	set   func(cfg *Config, raw string) error
	unset func(cfg *Config)
}

var setters = map[string]setter{
	"boxes": {
		set: func(cfg *Config, raw string) error {
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil || n <= 0 || n > otp.MaxBoxes {
				return fmt.Errorf("boxes must be a number between 1 and %d, got %q", otp.MaxBoxes, raw)
			}
			cfg.Boxes = n
			return nil
		},
		unset: func(cfg *Config) { cfg.Boxes = 0 },
	},
	"filter": {
		set: func(cfg *Config, raw string) error {
			k, err := otp.ParseKind(raw)
			if err != nil {
				return err
			}
			cfg.Filter = k.String()
			return nil
		},
		unset: func(cfg *Config) { cfg.Filter = "" },
	},
	"once": {
		set:   boolSetter(func(cfg *Config, v bool) { cfg.Once = v }),
		unset: func(cfg *Config) { cfg.Once = false },
	},
	"mask": {
		set:   boolSetter(func(cfg *Config, v bool) { cfg.Mask = v }),
		unset: func(cfg *Config) { cfg.Mask = false },
	},
	"bold": {
		set:   boolSetter(func(cfg *Config, v bool) { cfg.Bold = &v }),
		unset: func(cfg *Config) { cfg.Bold = nil },
	},
	"spacing": {
		set:   intSetter(func(cfg *Config, v int) { cfg.Spacing = &v }),
		unset: func(cfg *Config) { cfg.Spacing = nil },
	},
	"corner_radius": {
		set:   intSetter(func(cfg *Config, v int) { cfg.CornerRadius = &v }),
		unset: func(cfg *Config) { cfg.CornerRadius = nil },
	},
	"border_width": {
		set:   intSetter(func(cfg *Config, v int) { cfg.BorderWidth = &v }),
		unset: func(cfg *Config) { cfg.BorderWidth = nil },
	},
	"border_color": {
		set:   func(cfg *Config, raw string) error { cfg.BorderColor = strings.TrimSpace(raw); return nil },
		unset: func(cfg *Config) { cfg.BorderColor = "" },
	},
	"text_color": {
		set:   func(cfg *Config, raw string) error { cfg.TextColor = strings.TrimSpace(raw); return nil },
		unset: func(cfg *Config) { cfg.TextColor = "" },
	},
	"background_color": {
		set:   func(cfg *Config, raw string) error { cfg.BackgroundColor = strings.TrimSpace(raw); return nil },
		unset: func(cfg *Config) { cfg.BackgroundColor = "" },
	},
}

func boolSetter(apply func(*Config, bool)) func(*Config, string) error {
	return func(cfg *Config, raw string) error {
		v, err := ParseBool(raw)
		if err != nil {
			return err
		}
		apply(cfg, v)
		return nil
	}
}

func intSetter(apply func(*Config, int)) func(*Config, string) error {
	return func(cfg *Config, raw string) error {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || v < 0 {
			return fmt.Errorf("expected a non-negative number, got %q", raw)
		}
		apply(cfg, v)
		return nil
	}
}

// ParseBool accepts 1/0, true/false, on/off and yes/no.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value %q", raw)
	}
}

// Keys lists the settable config keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set validates and stores a single key in the project config.
func Set(baseDir, key, value string) error {
	s, ok := setters[normalizeKey(key)]
	if !ok {
		return unknownKeyError(key)
	}
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}
	if err := s.set(cfg, value); err != nil {
		return fmt.Errorf("%s: %w", normalizeKey(key), err)
	}
	return Save(baseDir, cfg)
}

// Unset removes a single key from the project config.
func Unset(baseDir, key string) error {
	s, ok := setters[normalizeKey(key)]
	if !ok {
		return unknownKeyError(key)
	}
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}
	s.unset(cfg)
	return Save(baseDir, cfg)
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
}

func unknownKeyError(key string) error {
	return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(Keys(), ", "))
}
