package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const defaultPath = "./configs/config.local.yaml"

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type AdminHTTP struct {
	Host string
	Port int
}

type CORS struct {
	Origins  []string
	AllowAll bool
}

type Limits struct {
	MaxBodyMB         int64
	RateRPS           float64
	RateBurst         int
	MaxInFlight       int64
	RequestTimeoutSec int
}

type App struct {
	Name      string
	Env       string
	StaticDir string
	HTTP      HTTP
	Admin     AdminHTTP
	CORS      CORS
	Limits    Limits
}

// Debug reports whether raw error causes may be exposed in responses.
func (a App) Debug() bool { return a.Env == "development" }

type Rotate struct {
	Enable     bool
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type Log struct {
	Level  string
	JSON   bool
	Rotate Rotate
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	DetailTTLSec int    `mapstructure:"detailTTLSec"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type S3 struct {
	Region   string
	Bucket   string
	Endpoint string
}

type GCS struct {
	Bucket          string
	CredentialsFile string
}

type GridFS struct {
	URI      string
	Database string
	Bucket   string
}

type Storage struct {
	Driver    string // local | s3 | gcs | gridfs
	PublicURL string // prefix returned for stored objects
	S3        S3
	GCS       GCS
	GridFS    GridFS
}

type OTel struct {
	Endpoint    string
	ServiceName string
}

type Config struct {
	App     App
	Log     Log
	JWT     JWT
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	Storage Storage
	OTel    OTel `mapstructure:"otel"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "automarket")
	v.SetDefault("app.env", "production")
	v.SetDefault("app.staticDir", "public/images")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 3001)
	v.SetDefault("app.http.readTimeoutSec", 10)
	v.SetDefault("app.http.writeTimeoutSec", 15)
	v.SetDefault("app.http.idleTimeoutSec", 60)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 3002)
	v.SetDefault("app.cors.origins", []string{
		"http://localhost:5173", "http://127.0.0.1:5173",
		"http://localhost:4173", "http://127.0.0.1:4173",
		"http://localhost:3001", "http://127.0.0.1:3001",
	})
	v.SetDefault("app.cors.allowAll", false)
	v.SetDefault("app.limits.maxBodyMB", 10)
	v.SetDefault("app.limits.rateRPS", 50)
	v.SetDefault("app.limits.rateBurst", 100)
	v.SetDefault("app.limits.maxInFlight", 300)
	v.SetDefault("app.limits.requestTimeoutSec", 15)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", true)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "automarket")
	v.SetDefault("jwt.accessTokenTTLMin", 7*24*60)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.autoMigrate", false)
	v.SetDefault("db.maxOpenConns", 20)
	v.SetDefault("db.maxIdleConns", 10)
	v.SetDefault("db.connMaxLifetimeMin", 30)
	v.SetDefault("db.logLevel", "warn")

	// keys without a default are invisible to AutomaticEnv during Unmarshal
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.detailTTLSec", 60)

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.publicURL", "/images")
	v.SetDefault("storage.s3.region", "")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.gcs.bucket", "")
	v.SetDefault("storage.gcs.credentialsFile", "")
	v.SetDefault("storage.gridfs.uri", "")
	v.SetDefault("storage.gridfs.database", "automarket")
	v.SetDefault("storage.gridfs.bucket", "images")

	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.serviceName", "automarket-api")
}

// Read loads the YAML file at path (optional when it is the default path)
// and applies AUTOMARKET_* environment overrides.
func Read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	explicit := path != ""
	if !explicit {
		path = defaultPath
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("AUTOMARKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil || explicit {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if extra := os.Getenv("FRONTEND_URL"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.App.CORS.Origins = append(c.App.CORS.Origins, o)
			}
		}
	}
	if os.Getenv("ALLOW_ALL_ORIGINS") == "true" {
		c.App.CORS.AllowAll = true
	}
	for _, o := range c.App.CORS.Origins {
		if o == "*" {
			c.App.CORS.AllowAll = true
		}
	}
	if c.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt.secret is required")
	}
	return &c, nil
}

func Load(path string) *Config {
	c, err := Read(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return c
}
