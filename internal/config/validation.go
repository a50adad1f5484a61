package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateSite(); err != nil {
		return err
	}
	if err := cv.validateCMS(); err != nil {
		return err
	}
	if err := cv.validateMetadata(); err != nil {
		return err
	}
	return cv.validateLogging()
}

func (cv *configurationValidator) validateSite() error {
	if strings.TrimSpace(cv.config.Site.Name) == "" {
		return errors.New("site.name is required")
	}
	if cv.config.Site.BaseURL != "" {
		if err := validateAbsoluteURL("site.base_url", cv.config.Site.BaseURL); err != nil {
			return err
		}
	}
	return nil
}

func (cv *configurationValidator) validateCMS() error {
	cms := cv.config.CMS
	// Neither project nor host is valid: the snapshot store needs no CMS access.
	// An api_host alone addresses a self-hosted or proxied query API.
	if cms.ProjectID == "" && cms.APIHost == "" {
		return nil
	}
	if cms.APIHost != "" {
		if err := validateAbsoluteURL("cms.api_host", cms.APIHost); err != nil {
			return err
		}
	}
	if cms.AllowDrafts && cms.Token == "" {
		return errors.New("cms.allow_drafts requires cms.token")
	}
	return nil
}

func (cv *configurationValidator) validateMetadata() error {
	if cv.config.Metadata.OGEndpoint == "" {
		return nil
	}
	return validateAbsoluteURL("metadata.og_endpoint", cv.config.Metadata.OGEndpoint)
}

func (cv *configurationValidator) validateLogging() error {
	level := strings.ToLower(cv.config.Logging.Level)
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, level) {
		return fmt.Errorf("invalid logging.level: %s", cv.config.Logging.Level)
	}
	format := strings.ToLower(cv.config.Logging.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid logging.format: %s", cv.config.Logging.Format)
	}
	return nil
}

func validateAbsoluteURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s: scheme must be http or https", field)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s: missing host", field)
	}
	return nil
}
