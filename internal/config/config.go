package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Addr           string   `yaml:"addr"`             // listen address, e.g. ":8080"
	LogLevel       string   `yaml:"log_level"`        // debug | info | warn | error
	LogJSON        bool     `yaml:"log_json"`         // JSON log output for production
	JwtTTLSeconds  int      `yaml:"jwt_ttl_seconds"`  // access token lifetime
	SecureCookies  bool     `yaml:"secure_cookies"`   // Secure flag on the accessToken cookie
	CardsPageLimit int      `yaml:"cards_page_limit"` // default/max page size for card listings
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key"`
	Pg     Pg     `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return time.Duration(c.Public.JwtTTLSeconds) * time.Second
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.mustValidate()
	return cfg
}

func (c *Config) mustValidate() {
	if c.Private.JwtKey == "" {
		panic("config: jwt_key is required")
	}
	if c.Public.JwtTTLSeconds <= 0 {
		panic("config: jwt_ttl_seconds must be positive")
	}
	if c.Public.CardsPageLimit <= 0 {
		panic("config: cards_page_limit must be positive")
	}
	if c.Private.Pg.Host == "" || c.Private.Pg.Dbname == "" {
		panic("config: pg host and dbname are required")
	}
}
