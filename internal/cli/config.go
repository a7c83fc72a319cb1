package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	UserID    string
	IDFile    string
	Output    string
	Yes       bool
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("RIDDLEWARS_SERVER", "http://localhost:8080"),
		UserID:    os.Getenv("RIDDLEWARS_USER_ID"),
		IDFile:    getEnvOrDefault("RIDDLEWARS_ID_FILE", defaultIDFile()),
		Output:    "text",
	}
}

// ResolveUserID settles the user identifier exactly once per invocation: a
// flag/env-supplied platform id wins, then a previously saved id, then a
// freshly generated timestamp id which is saved so later invocations reuse
// it.
func (c *Config) ResolveUserID() error {
	if c.UserID != "" {
		return nil
	}

	data, err := os.ReadFile(c.IDFile)
	if err == nil && len(data) > 0 {
		c.UserID = string(data)
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return c.SaveUserID(fmt.Sprintf("%d", time.Now().UnixMilli()))
}

// SaveUserID persists the identifier to the id file
func (c *Config) SaveUserID(id string) error {
	c.UserID = id

	dir := filepath.Dir(c.IDFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.IDFile, []byte(id), 0600)
}

func defaultIDFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".riddlewars/user_id"
	}
	return filepath.Join(home, ".riddlewars", "user_id")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
