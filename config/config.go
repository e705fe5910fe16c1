// Package config holds the settings of the ecelgamal command.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vocdoni/ec-elgamal/crypto/ecc/curves"
	"github.com/vocdoni/ec-elgamal/log"
	"github.com/vocdoni/ec-elgamal/storage/db/metadb"
	"go.vocdoni.io/dvote/db"
)

// EnvPrefix is prepended to the upper-cased flag name to form the
// environment variable that overrides it, e.g. ECELGAMAL_LOGLEVEL.
const EnvPrefix = "ECELGAMAL_"

// Config collects every setting of the command.
type Config struct {
	LogLevel  string
	LogOutput string
	DataDir   string
	DBType    string
	Host      string
	Port      int
	Curve     string
}

// Default returns the default configuration. The data directory lives under
// the user's home.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		LogLevel:  log.LogLevelInfo,
		LogOutput: "stdout",
		DataDir:   filepath.Join(home, ".ecelgamal"),
		DBType:    db.TypePebble,
		Host:      "0.0.0.0",
		Port:      9090,
		Curve:     curves.DefaultCurveType,
	}
}

// Validate checks that every setting has an accepted value.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case log.LogLevelDebug, log.LogLevelInfo, log.LogLevelWarn, log.LogLevelError:
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.LogOutput == "" {
		return fmt.Errorf("empty log output")
	}
	switch c.DBType {
	case db.TypePebble:
		if c.DataDir == "" {
			return fmt.Errorf("a data directory is required for %s databases", c.DBType)
		}
	case metadb.TypeMemory:
	default:
		return fmt.Errorf("invalid database type %q", c.DBType)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if !curves.IsSupported(c.Curve) {
		return fmt.Errorf("%w: %s", curves.ErrUnsupportedCurve, c.Curve)
	}
	return nil
}

// DatabaseDir is the directory holding the database files.
func (c *Config) DatabaseDir() string {
	return filepath.Join(c.DataDir, "db")
}
