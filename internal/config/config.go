package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the small amount of configuration the client needs.
type Config struct {
	// APIBaseURL is the clinic backend root, including the /api prefix.
	APIBaseURL string `mapstructure:"api_base_url"`
	// DataDir holds the session file and logs. Defaults to ~/.clinicdesk.
	DataDir string `mapstructure:"data_dir"`
	// LogLevel is a zerolog level name.
	LogLevel string `mapstructure:"log_level"`
}

// SessionFile is the path of the persisted session inside DataDir.
func (c *Config) SessionFile() string {
	return filepath.Join(c.DataDir, "session.json")
}

// LogFile is the path of the log file inside DataDir.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "clinicdesk.log")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		APIBaseURL: "https://dental-clinic-backend-4yfs.onrender.com/api",
		LogLevel:   "info",
	}
}

// Load reads <data dir>/config.json when present and applies CLINICDESK_
// environment overrides (CLINICDESK_API_BASE_URL etc.) on top of defaults.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configPath = filepath.Join(home, ".clinicdesk", "config.json")
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix("CLINICDESK")
	v.AutomaticEnv()

	// Defaults double as the key registry for AutomaticEnv.
	def := Default()
	v.SetDefault("api_base_url", def.APIBaseURL)
	v.SetDefault("data_dir", "")
	v.SetDefault("log_level", def.LogLevel)

	if _, err := os.Stat(configPath); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".clinicdesk")
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("api_base_url must not be empty")
	}
	return cfg, nil
}
