package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/technosupport/site-safety/internal/platform/paths"
)

// File names inside the data root.
const (
	DetectionLogFile = "detection_logs.txt"
	CamerasFile      = "cameras.json"
	EmployeesFile    = "employees.json"
	AuditFile        = "audit.jsonl"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Web     WebConfig     `yaml:"web"`
	Logging LoggingConfig `yaml:"logging"`
	Watcher WatcherConfig `yaml:"watcher"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// StorageConfig file paths are relative to DataRoot unless absolute.
type StorageConfig struct {
	DataRoot     string `yaml:"data_root"`
	DetectionLog string `yaml:"detection_log"`
	Cameras      string `yaml:"cameras"`
	Employees    string `yaml:"employees"`
	Audit        string `yaml:"audit"`
}

type WebConfig struct {
	Root string `yaml:"root"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	// Format is "json" or "console"
	Format string `yaml:"format"`
}

type WatcherConfig struct {
	Enabled bool `yaml:"enabled"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":5000",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			RequestTimeout:  20 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			DetectionLog: DetectionLogFile,
			Cameras:      CamerasFile,
			Employees:    EmployeesFile,
			Audit:        AuditFile,
		},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Watcher: WatcherConfig{Enabled: true},
	}
}

// LoadDotEnv loads KEY=VALUE files into the environment. Missing files are skipped;
// variables already set win over the file.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the configuration: defaults, then the YAML file at path (skipped if
// missing), then SAFETY_* environment overrides. Storage paths come back resolved.
func Load(path string) (*Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.resolve()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Addr = getenv("SAFETY_ADDR", c.Server.Addr)
	c.Storage.DataRoot = getenv("SAFETY_DATA_ROOT", c.Storage.DataRoot)
	c.Storage.DetectionLog = getenv("SAFETY_DETECTION_LOG", c.Storage.DetectionLog)
	c.Storage.Cameras = getenv("SAFETY_CAMERAS_FILE", c.Storage.Cameras)
	c.Storage.Employees = getenv("SAFETY_EMPLOYEES_FILE", c.Storage.Employees)
	c.Storage.Audit = getenv("SAFETY_AUDIT_FILE", c.Storage.Audit)
	c.Web.Root = getenv("SAFETY_WEB_ROOT", c.Web.Root)
	c.Logging.Level = getenv("SAFETY_LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = getenv("SAFETY_LOG_FORMAT", c.Logging.Format)

	if v := os.Getenv("SAFETY_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("SAFETY_WATCHER"); v != "" {
		c.Watcher.Enabled = v == "1" || strings.EqualFold(v, "true")
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SAFETY_READ_TIMEOUT", &c.Server.ReadTimeout},
		{"SAFETY_WRITE_TIMEOUT", &c.Server.WriteTimeout},
		{"SAFETY_IDLE_TIMEOUT", &c.Server.IdleTimeout},
		{"SAFETY_REQUEST_TIMEOUT", &c.Server.RequestTimeout},
		{"SAFETY_SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.key)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}

func (c *Config) resolve() {
	if c.Storage.DataRoot == "" {
		c.Storage.DataRoot = paths.ResolveDataRoot()
	}
	if c.Web.Root == "" {
		c.Web.Root = paths.ResolveWebRoot()
	}
	c.Storage.DetectionLog = underRoot(c.Storage.DataRoot, c.Storage.DetectionLog, DetectionLogFile)
	c.Storage.Cameras = underRoot(c.Storage.DataRoot, c.Storage.Cameras, CamerasFile)
	c.Storage.Employees = underRoot(c.Storage.DataRoot, c.Storage.Employees, EmployeesFile)
	c.Storage.Audit = underRoot(c.Storage.DataRoot, c.Storage.Audit, AuditFile)
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be positive")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format %q: want json or console", c.Logging.Format)
	}
	return nil
}

func underRoot(root, p, def string) string {
	if p == "" {
		p = def
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
