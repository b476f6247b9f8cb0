// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the settings for the ledger's backing stores.
type Config struct {
	// Backend selects the storage backend: "json" or "sqlite".
	Backend string

	// JSON backend file paths.
	UsersFile    string
	ExpensesFile string

	// SQLite backend database path.
	SQLitePath string

	// BcryptCost tunes password hashing. 0 selects the bcrypt default.
	BcryptCost int
}

// Load reads configuration from the environment, applying a .env file
// from the working directory first when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Backend:      getEnv("LEDGER_BACKEND", "json"),
		UsersFile:    getEnv("USERS_FILE", "users.json"),
		ExpensesFile: getEnv("EXPENSES_FILE", "expenses.json"),
		SQLitePath:   getEnv("SQLITE_DB_PATH", "ledger.db"),
		BcryptCost:   getEnvInt("BCRYPT_COST", 0),
	}
}

// Validate reports configuration errors.
func (c *Config) Validate() error {
	switch c.Backend {
	case "json", "sqlite":
	default:
		return fmt.Errorf("invalid backend %q: must be json or sqlite", c.Backend)
	}
	// bcrypt accepts costs 4 through 31; 0 means "use the default".
	if c.BcryptCost != 0 && (c.BcryptCost < 4 || c.BcryptCost > 31) {
		return fmt.Errorf("invalid bcrypt cost %d: must be 4-31 or 0 for default", c.BcryptCost)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
