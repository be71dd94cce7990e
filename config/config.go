// Package config loads the application configuration: where the ledger files
// live and, per institution, how to reach its API and where its captured
// session credentials are stored. Credentials are opaque session tokens; they
// are loaded once per sync request and never inspected.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nroux/finledger/bank"
	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	StoreDir   string                 `mapstructure:"store_dir"`
	BackupPath string                 `mapstructure:"backup_path"`
	Banks      map[string]Institution `mapstructure:"banks"`
}

// Institution configures one bank integration.
type Institution struct {
	BaseURL     string `mapstructure:"base_url"`
	SessionFile string `mapstructure:"session_file"`
}

// MissingError reports a sync request for an institution that has no
// configuration or no stored credentials.
type MissingError struct {
	Institution string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("no credentials configured for institution %q", e.Institution)
}

// Load reads the configuration file (TOML) and applies defaults. A missing
// file is not an error: the defaults alone make a usable local setup.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("store_dir", defaultStoreDir())
	v.SetDefault("backup_path", "")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

func defaultStoreDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".finledger"
	}
	return filepath.Join(home, ".finledger")
}

// Institution returns the configuration of one institution.
func (c *Config) Institution(id string) (Institution, error) {
	inst, ok := c.Banks[id]
	if !ok {
		return Institution{}, &MissingError{Institution: id}
	}
	return inst, nil
}

// Credentials loads the stored session headers of an institution, one
// "Name: value" pair per line, as captured by the login command.
func (c *Config) Credentials(id string) (bank.Credentials, error) {
	inst, err := c.Institution(id)
	if err != nil {
		return nil, err
	}
	path := inst.SessionFile
	if path == "" {
		path = SessionPath(id)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &MissingError{Institution: id}
	}

	creds := make(bank.Credentials)
	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 {
			creds[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	if len(creds) == 0 {
		return nil, &MissingError{Institution: id}
	}
	return creds, nil
}

// SessionPath is the default location of an institution's captured session
// headers.
func SessionPath(institution string) string {
	return filepath.Join(os.TempDir(), "finledger-session-"+institution)
}
