package config

import (
	"net"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// DSNValue returns the driver-specific connection string.
func (c DatabaseConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}
	if c.Driver == DriverSQLite {
		path := strings.TrimSpace(c.Path)
		if path == "" {
			path = ResolveRuntimePath("", defaultSQLitePath)
		}
		return path
	}

	loc := time.Local
	if name := strings.TrimSpace(c.Loc); name != "" && name != "Local" {
		if l, err := time.LoadLocation(name); err == nil {
			loc = l
		}
	}

	mc := mysql.NewConfig()
	mc.User = firstNonEmpty(c.User, defaultDBUser)
	mc.Passwd = firstNonEmpty(c.Password, defaultDBPassword)
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(firstNonEmpty(c.Host, defaultDBHost), strconv.Itoa(portOr(c.Port, defaultDBPort)))
	mc.DBName = firstNonEmpty(c.Name, defaultDBName)
	mc.ParseTime = c.ParseTime
	mc.Loc = loc
	mc.Params = map[string]string{"charset": firstNonEmpty(c.Charset, defaultDBCharset)}
	for key, value := range c.Params {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			mc.Params[k] = v
		}
	}
	return mc.FormatDSN()
}

// Enabled reports whether a redis endpoint has been configured.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != "" || strings.TrimSpace(c.Host) != ""
}

// URLValue returns a redis:// URL understood by redis.ParseURL.
func (c RedisConfig) URLValue() string {
	if u := strings.TrimSpace(c.URL); u != "" {
		if !strings.Contains(u, "://") {
			return "redis://" + u
		}
		return u
	}

	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}
	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(firstNonEmpty(c.Host, defaultRedisHost), strconv.Itoa(portOr(c.Port, defaultRedisPort))),
		Path:   "/" + strconv.Itoa(c.DB),
	}
	if password := strings.TrimSpace(c.Password); password != "" {
		u.User = neturl.UserPassword("", password)
	}
	return u.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func portOr(port, fallback int) int {
	if port == 0 {
		return fallback
	}
	return port
}
