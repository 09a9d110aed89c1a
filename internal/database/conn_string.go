package database

import (
	"net"
	"net/url"
	"strconv"

	"github.com/rickgao/cryptotracker/internal/config"
)

// ApplicationName identifies tracker sessions in pg_stat_activity.
const ApplicationName = "cryptotracker"

// BuildConnString builds a PostgreSQL connection URL from config.
// User and password are escaped.
func BuildConnString(cfg config.DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	} else if cfg.User != "" {
		u.User = url.User(cfg.User)
	}

	q := url.Values{}
	q.Set("sslmode", sslMode)
	q.Set("application_name", ApplicationName)
	u.RawQuery = q.Encode()

	return u.String()
}
