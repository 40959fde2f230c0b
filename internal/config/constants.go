package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort          = 3000
	defaultEnv           = "development"
	defaultDriver        = DriverMySQL
	defaultDBHost        = "127.0.0.1"
	defaultDBPort        = 3306
	defaultDBUser        = "root"
	defaultDBPassword    = "password"
	defaultDBName        = "folio"
	defaultDBCharset     = "utf8mb4"
	defaultDBLoc         = "Local"
	defaultSQLitePath    = "folio.db"
	defaultRedisHost     = "localhost"
	defaultRedisPort     = 6379
	defaultProfileKey    = "default"
	defaultUploadLimitMB = 10
	defaultUploadFolder  = "/uploads"
	defaultSessionTTL    = 24 * time.Hour
	defaultNotionBaseURL = "https://api.notion.com"
	defaultNotionVersion = "2022-06-28"
	defaultImageKitURL   = "https://upload.imagekit.io/api/v1/files/upload"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	AssetProviderImageKit = "imagekit"
	AssetProviderS3       = "s3"
)
