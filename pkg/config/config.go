// Package config holds the file and environment configuration for the CLI
// and server. A YAML file provides the base, AMPGEN_-prefixed environment
// variables overlay it, and Validate gates everything before use.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-yaml"

	"github.com/goliatone/go-ampgen/pkg/target"
)

// Config is the full runtime configuration.
type Config struct {
	Site    Site    `yaml:"site" envPrefix:"SITE_"`
	Catalog Catalog `yaml:"catalog" envPrefix:"CATALOG_"`
	Theme   Theme   `yaml:"theme" envPrefix:"THEME_"`
	Build   Build   `yaml:"build" envPrefix:"BUILD_"`
	Serve   Serve   `yaml:"serve" envPrefix:"SERVE_"`
	Log     Log     `yaml:"log" envPrefix:"LOG_"`
}

// Site describes the published site.
type Site struct {
	// BaseURL is the canonical origin pages link themselves under.
	BaseURL string `yaml:"base_url" env:"BASE_URL"`
	// AMPPrefix is the path prefix the AMP variants serve under.
	AMPPrefix string `yaml:"amp_prefix" env:"AMP_PREFIX"`
	// DefaultLang is the html lang attribute default.
	DefaultLang string `yaml:"default_lang" env:"DEFAULT_LANG"`
}

// Catalog locates the component catalog.
type Catalog struct {
	Dir string `yaml:"dir" env:"DIR"`
}

// Theme names the theme selection renders default to.
type Theme struct {
	Name    string `yaml:"name" env:"NAME"`
	Variant string `yaml:"variant" env:"VARIANT"`
}

// Build configures the static exporter.
type Build struct {
	OutDir     string   `yaml:"out_dir" env:"OUT_DIR"`
	ExtractCSS bool     `yaml:"extract_css" env:"EXTRACT_CSS"`
	Gzip       bool     `yaml:"gzip" env:"GZIP"`
	Targets    []string `yaml:"targets" env:"TARGETS"`
}

// Serve configures the dev server.
type Serve struct {
	Addr string `yaml:"addr" env:"ADDR"`
	Dev  bool   `yaml:"dev" env:"DEV"`
}

// Log configures logging output.
type Log struct {
	// Level is a zerolog level name; empty means info.
	Level string `yaml:"level" env:"LEVEL"`
	// Format forces "console" or "json"; empty auto-detects a TTY.
	Format string `yaml:"format" env:"FORMAT"`
}

// Default returns a runnable configuration.
func Default() Config {
	return Config{
		Site: Site{
			BaseURL:     "http://localhost:8080",
			AMPPrefix:   "/amp",
			DefaultLang: "en",
		},
		Catalog: Catalog{Dir: "./components"},
		Build: Build{
			OutDir:  "./dist",
			Targets: []string{target.Web.String(), target.AMP.String()},
		},
		Serve: Serve{Addr: ":8080"},
	}
}

// Load reads a YAML config file, overlays AMPGEN_ environment variables,
// and validates the result. An empty path skips the file and starts from
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "AMPGEN_"}); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the rest of the module
// relies on.
func (c Config) Validate() error {
	if c.Site.BaseURL == "" {
		return errors.New("config: site.base_url is required")
	}
	if u, err := url.Parse(c.Site.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: site.base_url %q is not an absolute URL", c.Site.BaseURL)
	}
	if !strings.HasPrefix(c.Site.AMPPrefix, "/") {
		return fmt.Errorf("config: site.amp_prefix %q must start with /", c.Site.AMPPrefix)
	}
	if c.Catalog.Dir == "" {
		return errors.New("config: catalog.dir is required")
	}
	if c.Serve.Addr == "" {
		return errors.New("config: serve.addr is required")
	}
	for _, raw := range c.Build.Targets {
		if _, err := target.Parse(raw); err != nil {
			return fmt.Errorf("config: build.targets: %w", err)
		}
	}
	return nil
}

// BuildTargets returns the parsed build targets, defaulting to all.
func (c Config) BuildTargets() []target.Target {
	if len(c.Build.Targets) == 0 {
		return target.All()
	}
	out := make([]target.Target, 0, len(c.Build.Targets))
	for _, raw := range c.Build.Targets {
		t, err := target.Parse(raw)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}
