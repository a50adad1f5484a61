package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	CMS      CMSConfig      `yaml:"cms"`
	Images   ImagesConfig   `yaml:"images"`
	Metadata MetadataConfig `yaml:"metadata"`
	Server   ServerConfig   `yaml:"server"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SiteConfig holds the site-wide defaults used for metadata fallbacks.
type SiteConfig struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url"`
	Locale      string `yaml:"locale,omitempty"`
	Twitter     string `yaml:"twitter,omitempty"`
	Image       string `yaml:"image,omitempty"` // fallback preview image URL
}

// CMSConfig configures the HTTP content store adapter.
type CMSConfig struct {
	ProjectID   string        `yaml:"project_id"`
	Dataset     string        `yaml:"dataset"`
	APIVersion  string        `yaml:"api_version,omitempty"`
	APIHost     string        `yaml:"api_host,omitempty"` // overrides https://<project>.api(cdn).sanity.io
	UseCDN      bool          `yaml:"use_cdn"`
	Token       string        `yaml:"token,omitempty"`
	AllowDrafts bool          `yaml:"allow_drafts"`
	Timeout     time.Duration `yaml:"timeout,omitempty"`
}

// ImagesConfig configures the image URL builder.
type ImagesConfig struct {
	ProjectID string `yaml:"project_id,omitempty"` // defaults to cms.project_id
	Dataset   string `yaml:"dataset,omitempty"`    // defaults to cms.dataset
	BaseURL   string `yaml:"base_url,omitempty"`
	Quality   int    `yaml:"quality,omitempty"`
}

// MetadataConfig configures SEO metadata generation.
type MetadataConfig struct {
	OGEndpoint string `yaml:"og_endpoint"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout,omitempty"`
	WriteTimeout    time.Duration `yaml:"write_timeout,omitempty"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout,omitempty"`
}

// SnapshotConfig configures the offline SQLite content store.
type SnapshotConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures the default slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug|info|warn|error
	Format string `yaml:"format,omitempty"` // text|json
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references from the
// environment, then applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyDefaults(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	exampleConfig := Config{
		Site: SiteConfig{
			Name:        "Example Studio",
			Title:       "Example Studio",
			Description: "Design and engineering for small teams",
			BaseURL:     "https://example.com",
			Locale:      "en_US",
		},
		CMS: CMSConfig{
			ProjectID:   "${SANITY_PROJECT_ID}",
			Dataset:     "production",
			APIVersion:  defaultAPIVersion,
			UseCDN:      true,
			Token:       "${SANITY_API_READ_TOKEN}",
			AllowDrafts: false,
		},
		Metadata: MetadataConfig{
			OGEndpoint: "https://example.com/api/og",
		},
		Server: ServerConfig{
			Addr: defaultServerAddr,
		},
		Snapshot: SnapshotConfig{
			Path: defaultSnapshotPath,
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
