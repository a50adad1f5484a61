package config

import "time"

const (
	defaultAPIVersion      = "2024-01-01"
	defaultServerAddr      = ":8080"
	defaultSnapshotPath    = "./content.db"
	defaultCMSTimeout      = 10 * time.Second
	defaultImageQuality    = 80
	defaultShutdownTimeout = 15 * time.Second
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SiteDefaultApplier handles site defaults.
type SiteDefaultApplier struct{}

func (s *SiteDefaultApplier) Domain() string { return "site" }

func (s *SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Site.Title == "" {
		cfg.Site.Title = cfg.Site.Name
	}
	if cfg.Site.Locale == "" {
		cfg.Site.Locale = "en_US"
	}
	return nil
}

// CMSDefaultApplier handles content store defaults.
type CMSDefaultApplier struct{}

func (c *CMSDefaultApplier) Domain() string { return "cms" }

func (c *CMSDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.CMS.APIVersion == "" {
		cfg.CMS.APIVersion = defaultAPIVersion
	}
	if cfg.CMS.Dataset == "" {
		cfg.CMS.Dataset = "production"
	}
	if cfg.CMS.Timeout <= 0 {
		cfg.CMS.Timeout = defaultCMSTimeout
	}
	return nil
}

// ImagesDefaultApplier inherits project and dataset from the CMS block.
type ImagesDefaultApplier struct{}

func (i *ImagesDefaultApplier) Domain() string { return "images" }

func (i *ImagesDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Images.ProjectID == "" {
		cfg.Images.ProjectID = cfg.CMS.ProjectID
	}
	if cfg.Images.Dataset == "" {
		cfg.Images.Dataset = cfg.CMS.Dataset
	}
	if cfg.Images.Quality <= 0 || cfg.Images.Quality > 100 {
		cfg.Images.Quality = defaultImageQuality
	}
	return nil
}

// RuntimeDefaultApplier handles server, snapshot and logging defaults.
type RuntimeDefaultApplier struct{}

func (r *RuntimeDefaultApplier) Domain() string { return "runtime" }

func (r *RuntimeDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = defaultServerAddr
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.Snapshot.Path == "" {
		cfg.Snapshot.Path = defaultSnapshotPath
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	return nil
}

// applyDefaults runs every domain applier in dependency order (images after cms).
func applyDefaults(cfg *Config) error {
	appliers := []DefaultApplier{
		&SiteDefaultApplier{},
		&CMSDefaultApplier{},
		&ImagesDefaultApplier{},
		&RuntimeDefaultApplier{},
	}
	for _, a := range appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
