package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Locale  string        `mapstructure:"locale"`
	Server  ServerConfig  `mapstructure:"server"`
	Session SessionConfig `mapstructure:"session"`
	Assets  AssetsConfig  `mapstructure:"assets"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port      string `mapstructure:"port"`
	ViewsDir  string `mapstructure:"views_dir"`
	PublicDir string `mapstructure:"public_dir"`
}

// SessionConfig holds viewer session settings
type SessionConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// AssetsConfig controls where artwork images are loaded from. An empty bucket
// means images are served from the local public directory.
type AssetsConfig struct {
	Bucket string        `mapstructure:"bucket"`
	Prefix string        `mapstructure:"prefix"`
	Ext    string        `mapstructure:"ext"`
	URLTTL time.Duration `mapstructure:"url_ttl"`
}

// ErrInvalidPort is returned when the port is not a number between 1 and 65535
var ErrInvalidPort = errors.New("invalid port")

// ErrInvalidSessionTTL is returned when the session TTL is not positive
var ErrInvalidSessionTTL = errors.New("session ttl must be positive")

// EnvPrefix is the prefix of environment overrides, e.g. ARTSPACE_SERVER_PORT
const EnvPrefix = "ARTSPACE"

// flagKeys maps command line flags to configuration keys
var flagKeys = map[string]string{
	"locale": "locale",
	"port":   "server.port",
	"bucket": "assets.bucket",
}

// Load loads configuration from defaults, an optional YAML file, the environment
// and the flags that were set on the command line, in increasing precedence.
// When path is empty ARTSPACE_CONFIG is used, then ./art-space.yaml if present.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("locale", "en")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.views_dir", "./views")
	v.SetDefault("server.public_dir", "./public")
	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("assets.bucket", "")
	v.SetDefault("assets.prefix", "images/")
	v.SetDefault("assets.ext", ".jpg")
	v.SetDefault("assets.url_ttl", 24*time.Hour)

	v.SetConfigType("yaml")
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("art-space")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later at runtime
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidPort, c.Server.Port)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSessionTTL, c.Session.TTL)
	}
	return nil
}

// UsesBucket reports whether images are resolved from Cloud Storage
func (c *Config) UsesBucket() bool {
	return c.Assets.Bucket != ""
}

// ServerAddress returns the server address with port
func (c *Config) ServerAddress() string {
	return fmt.Sprintf(":%s", c.Server.Port)
}

// PrintServerStartMessage prints a message when the server starts
func (c *Config) PrintServerStartMessage() {
	fmt.Printf("Starting server at port %s\n", c.Server.Port)
	fmt.Printf("Viewer URL: http://localhost:%s/\n", c.Server.Port)
	fmt.Printf("Catalog URL: http://localhost:%s/artworks\n", c.Server.Port)
}
