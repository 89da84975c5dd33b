package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level releve.yaml configuration.
type Config struct {
	Portal PortalConfig `yaml:"portal"`
	Export ExportConfig `yaml:"export"`
}

// PortalConfig locates the banking portal and its login form.
type PortalConfig struct {
	BaseURL        string `yaml:"base_url"`
	LandingPath    string `yaml:"landing_path"`
	LoginFormName  string `yaml:"login_form_name"`
	UsernameField  string `yaml:"username_field"`
	PasswordField  string `yaml:"password_field"`
	LandingRetries int    `yaml:"landing_retries"` // bound on the empty-response retry loop
}

// ExportConfig drives the statement-export request. Fields is an explicit
// table of export-form field values; every entry is set on the form before
// submission, creating fields the portal's markup omits (some are injected
// client-side by script and never appear in the static page).
type ExportConfig struct {
	Path       string            `yaml:"path"`
	Fields     map[string]string `yaml:"fields"`
	LinkSuffix string            `yaml:"link_suffix"`
}

// Load reads a releve.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the portal contract as observed: entry points, form and
// field names, and the export options (all accounts, EXL format, DDMMYY
// dates, comma separator, all dates, memos included).
func Default() *Config {
	return &Config{
		Portal: PortalConfig{
			BaseURL:        "https://www.secure.bnpparibas.net",
			LandingPath:    "/controller?type=auth",
			LoginFormName:  "logincanalnet",
			UsernameField:  "ch1",
			PasswordField:  "ch5",
			LandingRetries: 13,
		},
		Export: ExportConfig{
			Path: "/SAF_TLC",
			Fields: map[string]string{
				"ch_rib":        "tous",
				"ch_format":     "EXL",
				"ch_formatDate": "JJMMAA",
				"ch_separateur": "VIRGULE",
				"ch_dates":      "tous",
				"ch_memos":      "OUI",
			},
			LinkSuffix: ".exl",
		},
	}
}
