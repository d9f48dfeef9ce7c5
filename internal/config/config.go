package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"agendacal/internal/agenda"
	appLog "agendacal/internal/log"
)

// ICSConfig describes a single ICS subscription source.
type ICSConfig struct {
	// URL is the ICS subscription endpoint.
	URL string `yaml:"url" json:"url"`
	// ID is an internal identifier used for de-dup and logging.
	ID string `yaml:"id" json:"id"`
	// Name is a human-friendly label.
	Name string `yaml:"name" json:"name"`
}

// SourceID returns ID, falling back to Name and then URL.
func (c ICSConfig) SourceID() string {
	switch {
	case c.ID != "":
		return c.ID
	case c.Name != "":
		return c.Name
	default:
		return c.URL
	}
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the Web UI/API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// SnapshotConfig controls the PNG capture of the agenda page.
type SnapshotConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the Web UI and API.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA timezone events are displayed in (e.g. "Asia/Seoul").
	Timezone string `yaml:"timezone" json:"timezone"`

	// Culture selects the message table ("en", "ko", "ja", ...).
	Culture string `yaml:"culture" json:"culture"`

	// LengthDays is the number of days the agenda shows. Absent means
	// agenda.DefaultLength; zero or negative shows an empty agenda.
	LengthDays *int `yaml:"length_days,omitempty" json:"length_days,omitempty"`

	// MaxLengthDays caps the day count a client may request.
	MaxLengthDays int `yaml:"max_length_days" json:"max_length_days"`

	// RefreshCron is a cron-style schedule string (e.g. "*/15 * * * *")
	// for re-fetching ICS sources.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// CacheDir holds the HTTP cache of ICS bodies.
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`

	// LogLevel is "debug", "info" or "error".
	LogLevel string `yaml:"log_level" json:"log_level"`

	Formats agenda.Formats `yaml:"formats" json:"formats"`

	// Messages overrides individual UI strings.
	Messages agenda.Messages `yaml:"messages" json:"messages"`

	// ICS is the list of subscribed ICS sources.
	ICS []ICSConfig `yaml:"ics" json:"ics"`

	Snapshot SnapshotConfig `yaml:"snapshot" json:"snapshot"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

const (
	defaultListen   = "127.0.0.1:8080"
	defaultTimezone = "UTC"
	defaultCulture  = "en"
	defaultRefresh  = "*/15 * * * *"
	defaultCacheDir = "./var/ics-cache"
	defaultMaxDays  = 366
)

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:        defaultListen,
		Timezone:      defaultTimezone,
		Culture:       defaultCulture,
		MaxLengthDays: defaultMaxDays,
		RefreshCron:   defaultRefresh,
		CacheDir:      defaultCacheDir,
		LogLevel:      "info",
		Formats:       agenda.DefaultFormats(),
		ICS:           []ICSConfig{},
		Snapshot:      SnapshotConfig{Width: 1024, Height: 1366},
	}
}

// Normalize fills in missing/zero values with defaults so that
// partially-filled configs still behave correctly. LengthDays is left
// alone: nil already means the default and an explicit value is honored.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = defaultListen
	}
	if c.Timezone == "" {
		c.Timezone = defaultTimezone
	}
	if c.Culture == "" {
		c.Culture = defaultCulture
	}
	if c.MaxLengthDays <= 0 {
		c.MaxLengthDays = defaultMaxDays
	}
	if c.RefreshCron == "" {
		c.RefreshCron = defaultRefresh
	}
	if c.CacheDir == "" {
		c.CacheDir = defaultCacheDir
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	d := agenda.DefaultFormats()
	if c.Formats.AgendaDate == "" {
		c.Formats.AgendaDate = d.AgendaDate
	}
	if c.Formats.AgendaTime == "" {
		c.Formats.AgendaTime = d.AgendaTime
	}
	if c.Formats.AgendaTimeRange == "" {
		c.Formats.AgendaTimeRange = d.AgendaTimeRange
	}
	if c.Formats.AgendaHeader == "" {
		c.Formats.AgendaHeader = d.AgendaHeader
	}
	if c.Snapshot.Width <= 0 {
		c.Snapshot.Width = 1024
	}
	if c.Snapshot.Height <= 0 {
		c.Snapshot.Height = 1366
	}
	if c.ICS == nil {
		c.ICS = []ICSConfig{}
	}
}

// Length resolves LengthDays against the default.
func (c *Config) Length() int {
	if c.LengthDays == nil {
		return agenda.DefaultLength
	}
	return *c.LengthDays
}

// Location loads Timezone, falling back to time.Local when it is empty or
// unknown.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", c.Timezone)
		return time.Local
	}
	return loc
}

// Validate rejects settings that cannot work at runtime.
func (c *Config) Validate() error {
	if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
		return fmt.Errorf("config: invalid refresh schedule %q: %w", c.RefreshCron, err)
	}
	if c.Length() > c.MaxLengthDays {
		return fmt.Errorf("config: length_days %d exceeds max_length_days %d", c.Length(), c.MaxLengthDays)
	}
	for i, src := range c.ICS {
		if src.URL == "" {
			return fmt.Errorf("config: ics[%d] has no url", i)
		}
	}
	return nil
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written with 0600
//     perms and returned.
//   - Otherwise the YAML is unmarshalled, normalized and validated.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes cfg to path atomically (temp file in the same directory, then
// rename) with 0600 permissions, creating the parent directory as 0700.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".agendacal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method delegating to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}

// AgendaOptions maps the agenda settings onto agenda.Options for events of
// type model.Event.
func (c *Config) AgendaOptions() agenda.Options {
	return agenda.Options{
		Length:    c.LengthDays,
		Accessors: agenda.DefaultAccessors(),
		Formats:   c.Formats,
		Culture:   c.Culture,
		Messages:  c.Messages,
		Formatter: agenda.LayoutFormatter{},
	}
}
