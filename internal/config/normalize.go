package config

import "strings"

func normalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.Driver == "sqlite3" {
		cfg.Database.Driver = DriverSQLite
	}
	cfg.Upload.Provider = strings.ToLower(strings.TrimSpace(cfg.Upload.Provider))
	cfg.Upload.Folder = normalizeFolder(cfg.Upload.Folder)
	cfg.ImageKit.URLEndpoint = strings.TrimRight(strings.TrimSpace(cfg.ImageKit.URLEndpoint), "/")
	cfg.S3.CustomDomain = strings.TrimRight(strings.TrimSpace(cfg.S3.CustomDomain), "/")
	cfg.Notion.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Notion.BaseURL), "/")
	if strings.TrimSpace(cfg.ProfileKey) == "" {
		cfg.ProfileKey = defaultProfileKey
	}
	if cfg.Redis.Host != "" && cfg.Redis.Port == 0 {
		cfg.Redis.Port = defaultRedisPort
	}
	if cfg.Redis.URL == "" && cfg.Redis.Host == "" && cfg.Redis.Port != 0 {
		cfg.Redis.Host = defaultRedisHost
	}
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

func normalizeFolder(raw string) string {
	folder := strings.Trim(strings.TrimSpace(raw), "/")
	if folder == "" {
		return "/"
	}
	return "/" + folder
}

func copyStringMap(input map[string]string) map[string]string {
	out := make(map[string]string, len(input))
	for k, v := range input {
		out[k] = v
	}
	return out
}
