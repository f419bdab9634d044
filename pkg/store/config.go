package store

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DefaultServer  = "http://localhost:5001"
	DefaultTimeout = 30 * time.Second
	DefaultPath    = "~/.journal.db"
	DefaultEnv     = "production"

	// ConfigPathEnv names a directory searched for .journal.yaml before the
	// working directory.
	ConfigPathEnv = "JOURNAL_CONFIG_PATH"
)

type Config interface {
	BasePath() string
	Server() string
	Timeout() time.Duration
	Env() string
	LogFile() string
}

// LoadConfig reads `.journal.yaml` from JOURNAL_CONFIG_PATH or the working
// directory, with JOURNAL_* environment variables on top.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("server", DefaultServer)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("path", DefaultPath)
	v.SetDefault("env", DefaultEnv)
	v.SetDefault("log_file", "")
	v.SetConfigName(".journal") // .yaml is implicit
	v.SetEnvPrefix("JOURNAL")
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	cfg := &fileConfig{
		Path:       v.GetString("path"),
		ServerURL:  strings.TrimRight(v.GetString("server"), "/"),
		RequestTTL: v.GetDuration("timeout"),
		Mode:       v.GetString("env"),
		LogPath:    v.GetString("log_file"),
	}
	if err := cfg.expand(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

type fileConfig struct {
	Path       string        `json:"path"`
	ServerURL  string        `json:"server"`
	RequestTTL time.Duration `json:"timeout"`
	Mode       string        `json:"env"`
	LogPath    string        `json:"log_file"`
}

func (f *fileConfig) BasePath() string       { return f.Path }
func (f *fileConfig) Server() string         { return f.ServerURL }
func (f *fileConfig) Timeout() time.Duration { return f.RequestTTL }
func (f *fileConfig) Env() string            { return f.Mode }
func (f *fileConfig) LogFile() string        { return f.LogPath }

func (f *fileConfig) expand() error {
	var err error
	if f.Path, err = homedir.Expand(f.Path); err != nil {
		return errors.Wrap(err, "expanding path")
	}
	if f.LogPath != "" {
		if f.LogPath, err = homedir.Expand(f.LogPath); err != nil {
			return errors.Wrap(err, "expanding log_file")
		}
	}
	return nil
}

func (f *fileConfig) Validate() error {
	u, err := url.Parse(f.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("invalid server %q (want http(s)://host[:port])", f.ServerURL)
	}
	if f.RequestTTL <= 0 {
		return errors.Errorf("invalid timeout %s (must be positive)", f.RequestTTL)
	}
	switch f.Mode {
	case "dev", "development", "production", "test":
	default:
		return errors.Errorf("invalid env %q (must be one of: dev, development, production, test)", f.Mode)
	}
	if f.Path == "" {
		return errors.New("path must not be empty")
	}
	return nil
}
