package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"syscall"
)

const configFile = "config.json"
const lockFile = "config.json.lock"

// DefaultAPIURL is used when no API base URL has been configured.
const DefaultAPIURL = "http://localhost:8340"

// Config is the client configuration persisted under the config dir.
type Config struct {
	APIURL string `json:"api_url,omitempty"`
}

// Dir returns the configuration directory: $TAXDESK_CONFIG_DIR when set,
// otherwise ~/.taxdesk.
func Dir() (string, error) {
	if dir := os.Getenv("TAXDESK_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taxdesk"), nil
}

// Load reads the config from disk. A missing file yields an empty config.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(dir string, cfg *Config) error {
	configPath := filepath.Join(dir, configFile)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, configPath)
}

// withConfigLock serializes access to config.json using flock
func withConfigLock(dir string, fn func() error) error {
	lockPath := filepath.Join(dir, lockFile)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return err
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}

// APIURL resolves the effective API base URL: the TAXDESK_API_URL env,
// then the configured value, then the default.
func APIURL(dir string) (string, error) {
	if u := os.Getenv("TAXDESK_API_URL"); u != "" {
		return u, nil
	}
	cfg, err := Load(dir)
	if err != nil {
		return "", err
	}
	if cfg.APIURL != "" {
		return cfg.APIURL, nil
	}
	return DefaultAPIURL, nil
}

// SetAPIURL persists the API base URL.
func SetAPIURL(dir, apiURL string) error {
	return withConfigLock(dir, func() error {
		cfg, err := Load(dir)
		if err != nil {
			return err
		}
		cfg.APIURL = apiURL
		return Save(dir, cfg)
	})
}
