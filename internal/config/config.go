package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

type ObjectStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

type MediaConfig struct {
	// Provider selects the media host backend: "cloudinary" or "objectstore".
	Provider     string
	Folder       string
	MaxUploadMB  int64
	FetchTimeout time.Duration
	Cloudinary   CloudinaryConfig
	ObjectStore  ObjectStoreConfig
}

type SecurityConfig struct {
	StaffTokenSecret string
	StaffTokenTTL    time.Duration
}

type LogConfig struct {
	// Level overrides the environment-derived default when set.
	Level string
}

type AppConfig struct {
	Environment      string
	Log              LogConfig
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Media            MediaConfig
	Security         SecurityConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("WALLCOVE")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log.level", "")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "30s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("media.provider", "cloudinary")
	v.SetDefault("media.folder", "wallpapers")
	v.SetDefault("media.maxuploadmb", 20)
	v.SetDefault("media.fetchtimeout", "30s")

	v.SetDefault("media.objectstore.bucket", "wallcove-wallpapers")
	v.SetDefault("media.objectstore.usessl", false)
	v.SetDefault("media.objectstore.region", "us-east-1")

	v.SetDefault("security.stafftokenttl", "720h") // 30 days
}
