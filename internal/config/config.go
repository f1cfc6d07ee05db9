package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"

	"photogrip/internal/eventbus"
)

// EnvPrefix prefixes every environment override, e.g. PHOTOGRIP_API_URL.
const EnvPrefix = "PHOTOGRIP_"

// Duration wraps time.Duration so it reads and writes as "260ms" in TOML and env.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	d.Duration = v
	return nil
}

// Config represents the application configuration
type Config struct {
	APIURL      string   `toml:"api_url" env:"API_URL"`
	WSURL       string   `toml:"ws_url" env:"WS_URL"`
	HTTPTimeout Duration `toml:"http_timeout" env:"HTTP_TIMEOUT"`
	AdminEmails []string `toml:"admin_emails" env:"ADMIN_EMAILS"`
	ShareDir    string   `toml:"share_dir" env:"SHARE_DIR"`
	CachePath   string   `toml:"cache_path" env:"CACHE_PATH"`

	GoogleClientID string `toml:"google_client_id" env:"GOOGLE_CLIENT_ID"`

	Log LogSettings `toml:"log" envPrefix:"LOG_"`
	UI  UISettings  `toml:"ui" envPrefix:"UI_"`
}

// LogSettings configures the log file
type LogSettings struct {
	Enabled bool   `toml:"enabled" env:"ENABLED"`
	Level   string `toml:"level" env:"LEVEL"`
	File    string `toml:"file" env:"FILE"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	CollapseDelay       Duration `toml:"collapse_delay" env:"COLLAPSE_DELAY"`
	VisibilityThreshold float64  `toml:"visibility_threshold" env:"VISIBILITY_THRESHOLD"`
	VisibilityMargin    float64  `toml:"visibility_margin" env:"VISIBILITY_MARGIN"`
	TileWidth           int      `toml:"tile_width" env:"TILE_WIDTH"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for the given file, or the default
// location when path is empty. bus may be nil.
func NewConfigService(path string, bus eventbus.EventBus) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/photogrip/config.toml or its platform equivalent.
func DefaultPath() string {
	return filepath.Join(userDir(os.UserConfigDir, ".config"), "photogrip", "config.toml")
}

func defaultStateDir() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return filepath.Join(d, "photogrip")
	}
	return filepath.Join(userDir(os.UserCacheDir, ".cache"), "photogrip")
}

func userDir(lookup func() (string, error), fallback string) string {
	dir, err := lookup()
	if err == nil {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, fallback)
}

func (cs *configService) Path() string { return cs.filePath }

// Load reads the config file when present, then applies environment overrides.
// A missing file is not an error.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = ApplyEnv(DefaultConfig())
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{APIURL: cfg.APIURL})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

// LoadFromPath loads defaults, the TOML file at path and environment overrides, in that order.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return ApplyEnv(cfg)
}

// SaveToPath writes configuration as TOML to path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overlays PHOTOGRIP_* environment variables onto cfg and validates the result.
func ApplyEnv(cfg *Config) (*Config, error) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	state := defaultStateDir()
	return &Config{
		APIURL:      "http://localhost:8000",
		HTTPTimeout: Duration{30 * time.Second},
		CachePath:   filepath.Join(state, "photogrip.db"),
		Log: LogSettings{
			Enabled: true,
			Level:   "info",
			File:    filepath.Join(state, "photogrip.log"),
		},
		UI: UISettings{
			CollapseDelay:       Duration{260 * time.Millisecond},
			VisibilityThreshold: 0.10,
			VisibilityMargin:    -0.10,
			TileWidth:           24,
		},
	}
}

func (c *Config) normalize() {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	c.WSURL = strings.TrimRight(strings.TrimSpace(c.WSURL), "/")
	if c.WSURL == "" {
		c.WSURL = DeriveWSURL(c.APIURL)
	}
	emails := c.AdminEmails[:0]
	for _, e := range c.AdminEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			emails = append(emails, e)
		}
	}
	c.AdminEmails = emails
}

// DeriveWSURL maps http(s)://host to ws(s)://host.
func DeriveWSURL(apiURL string) string {
	switch {
	case strings.HasPrefix(apiURL, "https://"):
		return "wss://" + strings.TrimPrefix(apiURL, "https://")
	case strings.HasPrefix(apiURL, "http://"):
		return "ws://" + strings.TrimPrefix(apiURL, "http://")
	default:
		return apiURL
	}
}

// Validate rejects values the rest of the program cannot work with
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_url %q: must be an http(s) URL", c.APIURL)
	}
	if w, err := url.Parse(c.WSURL); err != nil || (w.Scheme != "ws" && w.Scheme != "wss") {
		return fmt.Errorf("invalid ws_url %q: must be a ws(s) URL", c.WSURL)
	}
	if c.HTTPTimeout.Duration < 0 {
		return fmt.Errorf("invalid http_timeout %s: must not be negative", c.HTTPTimeout)
	}
	if c.UI.CollapseDelay.Duration < 0 {
		return fmt.Errorf("invalid ui.collapse_delay %s: must not be negative", c.UI.CollapseDelay)
	}
	if c.UI.VisibilityThreshold < 0 || c.UI.VisibilityThreshold > 1 {
		return fmt.Errorf("invalid ui.visibility_threshold %v: must be within [0, 1]", c.UI.VisibilityThreshold)
	}
	if c.UI.VisibilityMargin < -1 || c.UI.VisibilityMargin > 1 {
		return fmt.Errorf("invalid ui.visibility_margin %v: must be within [-1, 1]", c.UI.VisibilityMargin)
	}
	if c.UI.TileWidth < 8 {
		return fmt.Errorf("invalid ui.tile_width %d: must be at least 8", c.UI.TileWidth)
	}
	return nil
}

// IsAdmin reports whether email is listed in admin_emails
func (c *Config) IsAdmin(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, e := range c.AdminEmails {
		if e == email {
			return true
		}
	}
	return false
}
