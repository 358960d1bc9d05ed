package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"ticketlist/internal/domain"
	perr "ticketlist/internal/errors"
	"ticketlist/internal/validate"
)

// Config represents the application configuration
type Config struct {
	Version  int           `toml:"version" validate:"min=1"`
	API      APISettings   `toml:"api"`
	Session  SessionConfig `toml:"session"`
	UI       UISettings    `toml:"ui"`
	Surfaces SurfaceSizes  `toml:"surfaces"`
	Log      LogSettings   `toml:"log"`
}

// APISettings configures the Listing Service client
type APISettings struct {
	BaseURL  string   `toml:"base_url" validate:"required,url"`
	Timeout  Duration `toml:"timeout"`
	RetryMax int      `toml:"retry_max" validate:"min=0,max=10"`
}

// SessionConfig carries the bearer token, if any
type SessionConfig struct {
	Token string `toml:"token,omitempty"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Debounce Duration `toml:"debounce"`
	Weekend  string   `toml:"weekend" validate:"oneof=upcoming current next"`
	Surface  string   `toml:"surface" validate:"oneof=catalog bookings organizer"`
}

// SurfaceSizes holds the page size of each surface
type SurfaceSizes struct {
	Catalog   PageSize `toml:"catalog"`
	Bookings  PageSize `toml:"bookings"`
	Organizer PageSize `toml:"organizer"`
}

// PageSize is one surface's fixed page size
type PageSize struct {
	PageSize int `toml:"page_size" validate:"min=1,max=100"`
}

// LogSettings configures the log file
type LogSettings struct {
	Level  string `toml:"level" validate:"oneof=trace debug info warn error off"`
	Format string `toml:"format" validate:"oneof=json console"`
	File   string `toml:"file"`
}

// Duration is a time.Duration written as "500ms" in TOML
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard library duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Weekend returns the configured weekend policy
func (c *Config) Weekend() domain.WeekendPolicy {
	return domain.WeekendPolicy(c.UI.Weekend)
}

// PageSizeFor returns the page size for a surface
func (c *Config) PageSizeFor(s domain.Surface) int {
	switch s {
	case domain.SurfaceBookings:
		return c.Surfaces.Bookings.PageSize
	case domain.SurfaceOrganizer:
		return c.Surfaces.Organizer.PageSize
	default:
		return c.Surfaces.Catalog.PageSize
	}
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.API.Timeout < 0 || c.UI.Debounce < 0 {
		return fmt.Errorf("invalid config: %w", perr.New(perr.KindValidation, "durations must not be negative"))
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service backed by the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "ticketlist", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service backed by an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

func (cs *configService) Path() string { return cs.filePath }

// Load returns the defaults when the file does not exist yet
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path.
// Keys missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			BaseURL:  "http://localhost:8000",
			Timeout:  Duration(10 * time.Second),
			RetryMax: 0,
		},
		UI: UISettings{
			Debounce: Duration(500 * time.Millisecond),
			Weekend:  string(domain.WeekendUpcoming),
			Surface:  string(domain.SurfaceCatalog),
		},
		Surfaces: SurfaceSizes{
			Catalog:   PageSize{PageSize: 8},
			Bookings:  PageSize{PageSize: 3},
			Organizer: PageSize{PageSize: 7},
		},
		Log: LogSettings{
			Level:  "info",
			Format: "json",
			File:   "ticketlist.log",
		},
	}
}
