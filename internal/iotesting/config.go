// Package iotesting provides shared utilities for integration tests.
package iotesting

import (
	"os"
	"strconv"

	"github.com/gnames/nutrigap/pkg/config"
)

// TestDatabaseName is the database name used by all integration tests,
// so they never touch a production history.
const TestDatabaseName = "nutrigap_test"

// GetTestConfig returns a configuration for integration tests. Database
// settings can be changed with NUTRIGAP_DATABASE_* environment variables,
// the database name is always TestDatabaseName.
func GetTestConfig() *config.Config {
	cfg := config.New()

	var opts []config.Option
	if s := os.Getenv("NUTRIGAP_DATABASE_HOST"); s != "" {
		opts = append(opts, config.OptDatabaseHost(s))
	}
	if s := os.Getenv("NUTRIGAP_DATABASE_PORT"); s != "" {
		if i, err := strconv.Atoi(s); err == nil {
			opts = append(opts, config.OptDatabasePort(i))
		}
	}
	if s := os.Getenv("NUTRIGAP_DATABASE_USER"); s != "" {
		opts = append(opts, config.OptDatabaseUser(s))
	}
	if s := os.Getenv("NUTRIGAP_DATABASE_PASSWORD"); s != "" {
		opts = append(opts, config.OptDatabasePassword(s))
	}
	opts = append(opts,
		config.OptHistoryBackend("postgres"),
		config.OptDatabaseDatabase(TestDatabaseName),
	)
	cfg.Update(opts)
	return cfg
}

// GetTestDatabaseConfig returns only database settings for tests.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := GetTestConfig()
	return &cfg.Database
}
