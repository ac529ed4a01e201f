// Package config handles configuration shared by the cvmaster binaries:
// defaults, an optional JSON file, an optional .env file, CVMASTER_*
// environment variables and finally command-line flags.
package config

import "time"

// Store drivers understood by database.InitDatabase.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds runtime settings.
//
// Fields:
//   - StoreDriver / DatabaseDSN: where the key-value partition lives
//     (an SQLite file path or a PostgreSQL DSN).
//   - AdminsFile: optional YAML admin allow-list; the built-in list is used when empty.
//   - EndpointAddrGRPC: bind address of the operator API (server) or its
//     target address (admin client).
//   - SecretKey / AccessTokenValidityDuration: HS256 operator tokens.
//   - LoginRatePerSecond / LoginBurst: operator login throttling.
//   - S3*: object storage for backups; backups are disabled without a bucket.
type Config struct {
	StoreDriver                 string        `env:"CVMASTER_STORE_DRIVER"`
	DatabaseDSN                 string        `env:"CVMASTER_DATABASE_DSN"`
	AdminsFile                  string        `env:"CVMASTER_ADMINS_FILE"`
	EndpointAddrGRPC            string        `env:"CVMASTER_GRPC_ADDR"`
	SecretKey                   string        `env:"CVMASTER_SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `env:"CVMASTER_ACCESS_TOKEN_TTL"`
	LoginRatePerSecond          float64       `env:"CVMASTER_LOGIN_RATE"`
	LoginBurst                  int           `env:"CVMASTER_LOGIN_BURST"`
	LogLevel                    string        `env:"CVMASTER_LOG_LEVEL"`
	S3RootUser                  string        `env:"CVMASTER_S3_USER"`
	S3RootPassword              string        `env:"CVMASTER_S3_PASSWORD"`
	S3Bucket                    string        `env:"CVMASTER_S3_BUCKET"`
	S3Region                    string        `env:"CVMASTER_S3_REGION"`
	S3BaseEndpoint              string        `env:"CVMASTER_S3_ENDPOINT"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key is insecure and must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.StoreDriver = DriverSQLite
	c.DatabaseDSN = "cvmaster.db"
	c.AdminsFile = ""
	c.EndpointAddrGRPC = ":50051"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.LoginRatePerSecond = 1
	c.LoginBurst = 5
	c.LogLevel = "info"
	c.S3RootUser = ""
	c.S3RootPassword = ""
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
}

// BackupsEnabled reports whether an S3 bucket is configured.
func (c *Config) BackupsEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
// Malformed sources panic: configuration errors are fatal at startup.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg); err != nil {
		panic(err)
	}
	parseFlags(cfg)
	return cfg
}
