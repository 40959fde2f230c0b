package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at configPath and applies environment overrides.
// A missing file is tolerated only for the default path.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	explicit := path != "" && path != DefaultConfigPath
	if path == "" {
		path = DefaultConfigPath
	}

	raw := rawAppConfig{}
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	cfg := defaultAppConfig()
	applyRawAppConfig(&cfg, raw)
	applyEnv(&cfg, os.LookupEnv)
	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks ranges and enumerations after overrides have been applied.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	switch c.Database.Driver {
	case DriverMySQL:
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database.port %d, expected 1-65535", c.Database.Port)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	switch c.Upload.Provider {
	case "", AssetProviderImageKit, AssetProviderS3:
	default:
		return fmt.Errorf("unsupported upload.provider %q", c.Upload.Provider)
	}
	if c.Upload.MaxSizeMB <= 0 {
		return fmt.Errorf("invalid upload.max_size_mb %d, expected > 0", c.Upload.MaxSizeMB)
	}
	if c.Upload.JPEGQuality < 1 || c.Upload.JPEGQuality > 100 {
		return fmt.Errorf("invalid upload.jpeg_quality %d, expected 1-100", c.Upload.JPEGQuality)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", c.Redis.DB)
	}
	if c.Admin.SessionTTL <= 0 {
		return fmt.Errorf("invalid admin.session_ttl_minutes, expected > 0")
	}
	return nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port:       defaultPort,
		Env:        defaultEnv,
		ProfileKey: defaultProfileKey,
		Database: DatabaseConfig{
			Driver:    defaultDriver,
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Password:  defaultDBPassword,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
		},
		Admin: AdminConfig{
			SessionTTL: defaultSessionTTL,
		},
		Upload: UploadConfig{
			MaxSizeMB:   defaultUploadLimitMB,
			Folder:      defaultUploadFolder,
			JPEGQuality: 95,
		},
		ImageKit: ImageKitConfig{
			UploadURL: defaultImageKitURL,
		},
		Notion: NotionConfig{
			BaseURL: defaultNotionBaseURL,
			Version: defaultNotionVersion,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if raw.AllowedOrigins != nil {
		cfg.AllowedOrigins = normalizeOrigins(raw.AllowedOrigins)
	}
	if v := strings.TrimSpace(raw.Timezone); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(raw.ProfileKey); v != "" {
		cfg.ProfileKey = v
	}

	cfg.Database = mergeDatabaseConfig(cfg.Database, raw.Database)

	cfg.Redis = raw.Redis
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		cfg.Redis.URL = v
	}

	if v := strings.TrimSpace(raw.Admin.Password); v != "" {
		cfg.Admin.Password = v
	}
	if v := strings.TrimSpace(raw.Admin.PasswordHash); v != "" {
		cfg.Admin.PasswordHash = v
	}
	if v := strings.TrimSpace(raw.Admin.SessionSecret); v != "" {
		cfg.Admin.SessionSecret = v
	}
	if raw.Admin.SessionTTLMinutes != 0 {
		cfg.Admin.SessionTTL = time.Duration(raw.Admin.SessionTTLMinutes) * time.Minute
	}

	if v := strings.TrimSpace(raw.Upload.Provider); v != "" {
		cfg.Upload.Provider = v
	}
	if raw.Upload.MaxSizeMB != 0 {
		cfg.Upload.MaxSizeMB = raw.Upload.MaxSizeMB
	}
	if v := strings.TrimSpace(raw.Upload.Folder); v != "" {
		cfg.Upload.Folder = v
	}
	if raw.Upload.JPEGQuality != 0 {
		cfg.Upload.JPEGQuality = raw.Upload.JPEGQuality
	}

	if v := strings.TrimSpace(raw.ImageKit.PublicKey); v != "" {
		cfg.ImageKit.PublicKey = v
	}
	if v := strings.TrimSpace(raw.ImageKit.PrivateKey); v != "" {
		cfg.ImageKit.PrivateKey = v
	}
	if v := strings.TrimSpace(raw.ImageKit.URLEndpoint); v != "" {
		cfg.ImageKit.URLEndpoint = v
	}
	if v := strings.TrimSpace(raw.ImageKit.UploadURL); v != "" {
		cfg.ImageKit.UploadURL = v
	}

	cfg.S3 = S3Config{
		Bucket:          raw.S3.Bucket,
		Region:          raw.S3.Region,
		Endpoint:        raw.S3.Endpoint,
		AccessKeyID:     raw.S3.AccessKeyID,
		SecretAccessKey: raw.S3.SecretAccessKey,
		CustomDomain:    raw.S3.CustomDomain,
	}
	if raw.S3.PathStyle != nil {
		cfg.S3.PathStyle = *raw.S3.PathStyle
	}

	if v := strings.TrimSpace(raw.Notion.Token); v != "" {
		cfg.Notion.Token = v
	}
	if v := strings.TrimSpace(raw.Notion.BaseURL); v != "" {
		cfg.Notion.BaseURL = v
	}
	if v := strings.TrimSpace(raw.Notion.Version); v != "" {
		cfg.Notion.Version = v
	}

	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if raw.Metrics.Enable != nil {
		cfg.Metrics.Enable = *raw.Metrics.Enable
	}
}

func mergeDatabaseConfig(current, raw DatabaseConfig) DatabaseConfig {
	if v := strings.TrimSpace(raw.Driver); v != "" {
		current.Driver = v
	}
	if v := strings.TrimSpace(raw.DSN); v != "" {
		current.DSN = v
	}
	if v := strings.TrimSpace(raw.Path); v != "" {
		current.Path = v
	}
	if v := strings.TrimSpace(raw.Host); v != "" {
		current.Host = v
	}
	if raw.Port != 0 {
		current.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.User); v != "" {
		current.User = v
	}
	if v := strings.TrimSpace(raw.Password); v != "" {
		current.Password = v
	}
	if v := strings.TrimSpace(raw.Name); v != "" {
		current.Name = v
	}
	if v := strings.TrimSpace(raw.Charset); v != "" {
		current.Charset = v
	}
	if v := strings.TrimSpace(raw.Loc); v != "" {
		current.Loc = v
	}
	if len(raw.Params) > 0 {
		current.Params = copyStringMap(raw.Params)
	}
	return current
}

// applyEnv overlays environment variables; lookup is os.LookupEnv outside tests.
func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup("PORT"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			cfg.Port = n
		}
	}
	str("APP_ENV", &cfg.Env)
	str("TZ", &cfg.Timezone)
	str("PROFILE_KEY", &cfg.ProfileKey)
	str("DATABASE_DRIVER", &cfg.Database.Driver)
	str("DATABASE_DSN", &cfg.Database.DSN)
	str("REDIS_URL", &cfg.Redis.URL)
	str("ADMIN_PASSWORD", &cfg.Admin.Password)
	str("ADMIN_PASSWORD_HASH", &cfg.Admin.PasswordHash)
	str("SESSION_SECRET", &cfg.Admin.SessionSecret)
	str("ASSET_PROVIDER", &cfg.Upload.Provider)
	str("IMAGEKIT_PUBLIC_KEY", &cfg.ImageKit.PublicKey)
	str("IMAGEKIT_PRIVATE_KEY", &cfg.ImageKit.PrivateKey)
	str("IMAGEKIT_URL_ENDPOINT", &cfg.ImageKit.URLEndpoint)
	str("S3_BUCKET", &cfg.S3.Bucket)
	str("S3_REGION", &cfg.S3.Region)
	str("S3_ENDPOINT", &cfg.S3.Endpoint)
	str("S3_ACCESS_KEY_ID", &cfg.S3.AccessKeyID)
	str("S3_SECRET_ACCESS_KEY", &cfg.S3.SecretAccessKey)
	str("S3_CUSTOM_DOMAIN", &cfg.S3.CustomDomain)
	str("NOTION_TOKEN", &cfg.Notion.Token)
	str("LOG_DIR", &cfg.Paths.Logs)
	if v, ok := lookup("METRICS_ENABLE"); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.Metrics.Enable = b
		}
	}
}

// IsDev reports whether the server runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// IsProduction reports whether secure-only cookies should be issued.
func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// UploadLimitBytes returns the server-side upload ceiling.
func (c *AppConfig) UploadLimitBytes() int64 {
	return int64(c.Upload.MaxSizeMB) * 1024 * 1024
}

func (c *AppConfig) LogDir() string {
	if c == nil {
		return ResolveRuntimePath("", "logs")
	}
	return ResolveRuntimePath(c.Paths.Logs, "logs")
}
