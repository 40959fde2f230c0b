package config

import "time"

// AppConfig holds runtime configuration loaded from YAML and the environment.
type AppConfig struct {
	Port           int
	Env            string // "development" | "production"
	AllowedOrigins []string
	Timezone       string
	Database       DatabaseConfig
	Redis          RedisConfig
	Admin          AdminConfig
	Upload         UploadConfig
	ImageKit       ImageKitConfig
	S3             S3Config
	Notion         NotionConfig
	Paths          PathsConfig
	Metrics        MetricsConfig
	ProfileKey     string
}

type DatabaseConfig struct {
	Driver    string            `yaml:"driver"`
	DSN       string            `yaml:"dsn"`
	Path      string            `yaml:"path"` // sqlite file
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	Charset   string            `yaml:"charset"`
	ParseTime bool              `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

// AdminConfig carries the shared admin secret. PasswordHash (bcrypt) wins over Password.
type AdminConfig struct {
	Password      string
	PasswordHash  string
	SessionSecret string
	SessionTTL    time.Duration
}

type UploadConfig struct {
	Provider    string
	MaxSizeMB   int
	Folder      string
	JPEGQuality int
}

type ImageKitConfig struct {
	PublicKey   string
	PrivateKey  string
	URLEndpoint string
	UploadURL   string
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	CustomDomain    string
	PathStyle       bool
}

type NotionConfig struct {
	Token   string
	BaseURL string
	Version string
}

type PathsConfig struct {
	Logs string
}

type MetricsConfig struct {
	Enable bool
}

type rawAppConfig struct {
	Port           int               `yaml:"port"`
	Env            string            `yaml:"env"`
	AllowedOrigins []string          `yaml:"allowed_origins"`
	Timezone       string            `yaml:"timezone"`
	ProfileKey     string            `yaml:"profile_key"`
	Database       DatabaseConfig    `yaml:"database"`
	Redis          RedisConfig       `yaml:"redis"`
	RedisURL       string            `yaml:"redis_url"`
	Admin          rawAdminConfig    `yaml:"admin"`
	Upload         rawUploadConfig   `yaml:"upload"`
	ImageKit       rawImageKitConfig `yaml:"imagekit"`
	S3             rawS3Config       `yaml:"s3"`
	Notion         rawNotionConfig   `yaml:"notion"`
	Paths          rawPathsConfig    `yaml:"paths"`
	Metrics        rawMetricsConfig  `yaml:"metrics"`
}

type rawAdminConfig struct {
	Password          string `yaml:"password"`
	PasswordHash      string `yaml:"password_hash"`
	SessionSecret     string `yaml:"session_secret"`
	SessionTTLMinutes int    `yaml:"session_ttl_minutes"`
}

type rawUploadConfig struct {
	Provider    string `yaml:"provider"`
	MaxSizeMB   int    `yaml:"max_size_mb"`
	Folder      string `yaml:"folder"`
	JPEGQuality int    `yaml:"jpeg_quality"`
}

type rawImageKitConfig struct {
	PublicKey   string `yaml:"public_key"`
	PrivateKey  string `yaml:"private_key"`
	URLEndpoint string `yaml:"url_endpoint"`
	UploadURL   string `yaml:"upload_url"`
}

type rawS3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyle       *bool  `yaml:"path_style"`
}

type rawNotionConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
	Version string `yaml:"version"`
}

type rawPathsConfig struct {
	Logs string `yaml:"logs"`
}

type rawMetricsConfig struct {
	Enable *bool `yaml:"enable"`
}
