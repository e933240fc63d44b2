package tenantdb

import (
	"net"
	"net/url"
	"strconv"
	"time"
)

type Config struct {
	Host       string `env:"DB_HOST,required"`                  // Host is the PostgreSQL server hostname, shared by all tenants.
	Port       int    `env:"DB_PORT" envDefault:"5432"`         // Port is the PostgreSQL server port.
	Database   string `env:"DB_NAME,required"`                  // Database is the database name, shared by all tenants.
	User       string `env:"DB_USER,required"`                  // User is the database role used for every tenant pool.
	Password   string `env:"DB_PASSWORD,required"`              // Password is the database password.
	SSL        bool   `env:"DB_SSL" envDefault:"false"`         // SSL enables TLS transport without certificate verification (sslmode=require).
	DisableRLS bool   `env:"DB_DISABLE_RLS" envDefault:"false"` // DisableRLS turns off row-level security for every session. Local development only.

	MigrationsPath  string `env:"DB_MIGRATIONS_PATH" envDefault:"migrations"`        // MigrationsPath is the path to the goose migrations directory.
	MigrationsTable string `env:"DB_MIGRATIONS_TABLE" envDefault:"schema_migrations"` // MigrationsTable is the table used to track applied migrations.
}

// Pool sizing is fixed rather than configurable: every tenant pool gets the
// same bounds, and tenant isolation is enforced per session, not per pool.
const (
	maxConnsPerTenant = 20
	maxConnIdleTime   = 30 * time.Second
	acquireTimeout    = 10 * time.Second
)

// connString builds a pgx connection URL from the shared connection
// parameters. sslmode=require encrypts the transport but skips CA and
// hostname verification, matching the managed-database setups this backend
// is deployed against.
func (c Config) connString() string {
	q := url.Values{}
	if c.SSL {
		q.Set("sslmode", "require")
	} else {
		q.Set("sslmode", "disable")
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: q.Encode(),
	}
	return u.String()
}
