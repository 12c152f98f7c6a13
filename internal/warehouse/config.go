package warehouse

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Driver names accepted by Open.
const (
	DriverDatabricks = "databricks"
	DriverPgx        = "pgx"
	DriverSQLite     = "sqlite"
)

// DefaultEnvFile is loaded when present; a missing default file is not an
// error.
const DefaultEnvFile = ".env"

// Config selects a driver and data source.
type Config struct {
	Driver string
	// DSN overrides any data source derived from the environment.
	DSN        string
	Databricks DatabricksConfig
	// MaxConns caps open connections; it should match the worker count.
	MaxConns int
}

// DatabricksConfig holds the SQL warehouse coordinates, read from
// DATABRICKS_* environment variables.
type DatabricksConfig struct {
	ServerHostname string `envconfig:"SERVER_HOSTNAME"`
	HTTPPath       string `envconfig:"HTTP_PATH"`
	Token          string `envconfig:"TOKEN"`
	Port           int    `envconfig:"PORT" default:"443"`
}

// LoadEnvFile loads variables from path into the process environment.
// Variables that are already set win over the file.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if path == DefaultEnvFile && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// DatabricksFromEnv reads DATABRICKS_SERVER_HOSTNAME, DATABRICKS_HTTP_PATH,
// DATABRICKS_TOKEN and DATABRICKS_PORT.
func DatabricksFromEnv() (DatabricksConfig, error) {
	var c DatabricksConfig
	if err := envconfig.Process("DATABRICKS", &c); err != nil {
		return c, fmt.Errorf("failed to read databricks environment: %w", err)
	}
	return c, nil
}

// DSN builds a databricks-sql-go data source name.
func (c DatabricksConfig) DSN() (string, error) {
	var missing []string
	if c.ServerHostname == "" {
		missing = append(missing, "DATABRICKS_SERVER_HOSTNAME")
	}
	if c.HTTPPath == "" {
		missing = append(missing, "DATABRICKS_HTTP_PATH")
	}
	if c.Token == "" {
		missing = append(missing, "DATABRICKS_TOKEN")
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing databricks settings: %s", strings.Join(missing, ", "))
	}
	path := c.HTTPPath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	port := c.Port
	if port == 0 {
		port = 443
	}
	return fmt.Sprintf("token:%s@%s:%d%s", c.Token, c.ServerHostname, port, path), nil
}

// dataSource resolves the DSN to open.
func (c Config) dataSource() (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	if c.Driver == DriverDatabricks {
		return c.Databricks.DSN()
	}
	return "", fmt.Errorf("a DSN is required for driver %q", c.Driver)
}
