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
	Addr            string        `yaml:"addr"`
	Storage         Storage       `yaml:"storage"`
	Log             Log           `yaml:"log"`
	Notify          Notify        `yaml:"notify"`
	RateLimit       RateLimit     `yaml:"rate_limit"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	SecureHeaders   bool          `yaml:"secure_headers"` // adds HSTS, enable only behind https
	BcryptCost      int           `yaml:"bcrypt_cost"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Storage struct {
	Driver     string `yaml:"driver"` // "postgres" or "sqlite"
	SqlitePath string `yaml:"sqlite_path"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Notify struct {
	Workers      int           `yaml:"workers"`
	QueueSize    int           `yaml:"queue_size"`
	CheckTimeout time.Duration `yaml:"check_timeout"` // whole scan of one piece of content
	MatchTimeout time.Duration `yaml:"match_timeout"` // single pattern evaluation
}

type RateLimit struct {
	WritesPerSecond float64 `yaml:"writes_per_second"`
	Burst           int     `yaml:"burst"`
}

type Private struct {
	Pg Pg `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err = yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file: " + configPath)
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{Public: public, Private: private}
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg
}

// applyEnv lets deployment secrets live outside the yaml files.
func (c *Config) applyEnv() {
	if v := os.Getenv("BBS_PG_HOST"); v != "" {
		c.Private.Pg.Host = v
	}
	if v := os.Getenv("BBS_PG_PASSWORD"); v != "" {
		c.Private.Pg.Password = v
	}
	if v := os.Getenv("BBS_LOG_LEVEL"); v != "" {
		c.Public.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	p := &c.Public
	if p.Addr == "" {
		p.Addr = ":8080"
	}
	if p.Storage.Driver == "" {
		p.Storage.Driver = "postgres"
	}
	if p.Storage.SqlitePath == "" {
		p.Storage.SqlitePath = "bbs.db"
	}
	if p.Log.Level == "" {
		p.Log.Level = "info"
	}
	if p.Notify.Workers <= 0 {
		p.Notify.Workers = 2
	}
	if p.Notify.QueueSize <= 0 {
		p.Notify.QueueSize = 256
	}
	if p.Notify.CheckTimeout <= 0 {
		p.Notify.CheckTimeout = 5 * time.Second
	}
	if p.Notify.MatchTimeout <= 0 {
		p.Notify.MatchTimeout = 100 * time.Millisecond
	}
	if p.RateLimit.WritesPerSecond <= 0 {
		p.RateLimit.WritesPerSecond = 1
	}
	if p.RateLimit.Burst <= 0 {
		p.RateLimit.Burst = 5
	}
	if p.BcryptCost == 0 {
		p.BcryptCost = 10
	}
	if p.ShutdownTimeout <= 0 {
		p.ShutdownTimeout = 10 * time.Second
	}
	if c.Private.Pg.Port == 0 {
		c.Private.Pg.Port = 5432
	}
}
