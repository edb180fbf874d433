package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Session     SessionConfig     `yaml:"session"`
	RememberMe  RememberMeConfig  `yaml:"remember_me"`
	Security    SecurityConfig    `yaml:"security"`
	Calendar    CalendarConfig    `yaml:"calendar"`
	DefaultUser DefaultUserConfig `yaml:"default_user"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	Type   string       `yaml:"type"`
	SQLite SQLiteConfig `yaml:"sqlite"`
	MySQL  MySQLConfig  `yaml:"mysql"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Charset  string `yaml:"charset"`
}

type SessionConfig struct {
	CookieName string `yaml:"cookie_name"`
	Secret     string `yaml:"secret"`
	TTLSeconds int    `yaml:"ttl_seconds"`
	KeyPrefix  string `yaml:"key_prefix"`

	// DisableTouch turns off the sliding TTL refresh on authenticated
	// requests; sessions then expire a fixed TTL after creation.
	DisableTouch bool `yaml:"disable_touch"`
}

type RememberMeConfig struct {
	CookieName string `yaml:"cookie_name"`
	Secret     string `yaml:"secret"`
	TTLDays    int    `yaml:"ttl_days"`
}

type SecurityConfig struct {
	BcryptCost        int      `yaml:"bcrypt_cost"`
	ProtectedPrefixes []string `yaml:"protected_prefixes"`
}

type CalendarConfig struct {
	DefaultColor string         `yaml:"default_color"`
	Colors       map[int]string `yaml:"colors"`
}

type DefaultUserConfig struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// Load reads the configuration file and applies environment overrides
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables
	if sessionSecret := os.Getenv("KOYOMI_SESSION_SECRET"); sessionSecret != "" {
		cfg.Session.Secret = sessionSecret
	}

	if rememberSecret := os.Getenv("KOYOMI_REMEMBER_SECRET"); rememberSecret != "" {
		cfg.RememberMe.Secret = rememberSecret
	}

	if ttl := os.Getenv("KOYOMI_SESSION_TTL"); ttl != "" {
		seconds, err := strconv.Atoi(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid KOYOMI_SESSION_TTL: %w", err)
		}
		cfg.Session.TTLSeconds = seconds
	}

	if dbType := os.Getenv("KOYOMI_DB_TYPE"); dbType != "" {
		cfg.Database.Type = dbType
	}

	if dbPath := os.Getenv("KOYOMI_DB_PATH"); dbPath != "" {
		cfg.Database.SQLite.Path = dbPath
	}

	if mysqlHost := os.Getenv("KOYOMI_MYSQL_HOST"); mysqlHost != "" {
		cfg.Database.MySQL.Host = mysqlHost
	}

	if mysqlUser := os.Getenv("KOYOMI_MYSQL_USER"); mysqlUser != "" {
		cfg.Database.MySQL.Username = mysqlUser
	}

	if mysqlPass := os.Getenv("KOYOMI_MYSQL_PASSWORD"); mysqlPass != "" {
		cfg.Database.MySQL.Password = mysqlPass
	}

	if mysqlDB := os.Getenv("KOYOMI_MYSQL_DATABASE"); mysqlDB != "" {
		cfg.Database.MySQL.Database = mysqlDB
	}

	applyDefaults(&cfg)

	// Ensure data directory exists for SQLite
	if cfg.Database.Type == "sqlite" {
		dataDir := filepath.Dir(cfg.Database.SQLite.Path)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	// Validate MySQL configuration if MySQL is selected
	if cfg.Database.Type == "mysql" {
		if cfg.Database.MySQL.Username == "" {
			return nil, fmt.Errorf("MySQL username is required")
		}
		if cfg.Database.MySQL.Database == "" {
			return nil, fmt.Errorf("MySQL database name is required")
		}
	}

	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if cfg.RememberMe.Secret == "" {
		return nil, fmt.Errorf("remember-me secret is required")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "koyomi_session"
	}
	if cfg.Session.TTLSeconds <= 0 {
		cfg.Session.TTLSeconds = 1800
	}
	if cfg.Session.KeyPrefix == "" {
		cfg.Session.KeyPrefix = "sess:"
	}
	if cfg.RememberMe.CookieName == "" {
		cfg.RememberMe.CookieName = "koyomi_remember"
	}
	if cfg.RememberMe.TTLDays <= 0 {
		cfg.RememberMe.TTLDays = 120
	}
	if cfg.Security.BcryptCost <= 0 {
		cfg.Security.BcryptCost = 10
	}
	if len(cfg.Security.ProtectedPrefixes) == 0 {
		cfg.Security.ProtectedPrefixes = []string{"/api/admin", "/api/profile", "/api/comment"}
	}
}

// SecureCookies reports whether cookies should carry the Secure attribute.
func (c *Config) SecureCookies() bool {
	return c.Server.Mode == "release"
}
