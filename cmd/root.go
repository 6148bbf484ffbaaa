/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/nutrigap/internal/iofs"
	"github.com/gnames/nutrigap/internal/iologger"
	"github.com/gnames/nutrigap/internal/ioreference"
	nutrigap "github.com/gnames/nutrigap/pkg"
	"github.com/gnames/nutrigap/pkg/config"
	"github.com/gnames/nutrigap/pkg/engine"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir       string
	opts          []config.Option
	cfg           *config.Config
	referencePath string
	jobsNumber    int
)

func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s",
			nutrigap.Version, nutrigap.Build),
		Use:   "nutrigap",
		Short: "Nutrigap ranks soil and leaf nutrient gaps",
		Long: `Nutrigap compares soil and leaf laboratory results with reference
nutrient standards and ranks parameters by how far they are from the
recommended minimum.

Main commands:
  - analyze: build gap tables from JSON uploads
  - standards: show reference standards
  - history: list and show saved gap tables
  - serve: run the HTTP API

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (NUTRIGAP_*)
  3. Config file (~/.config/nutrigap/config.yaml)
  4. Built-in defaults

Environment variables use underscores for nested fields
(history.backend -> NUTRIGAP_HISTORY_BACKEND).`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "nutrigap version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for nutrigap")

	rootCmd.PersistentFlags().StringVarP(&referencePath, "reference", "r", "",
		"reference standards YAML file (default: built-in standards)")
	rootCmd.PersistentFlags().IntVarP(&jobsNumber, "jobs", "j", 0,
		"number of concurrent jobs (default: number of CPUs)")

	rootCmd.AddCommand(
		getAnalyzeCmd(),
		getStandardsCmd(),
		getHistoryCmd(),
		getServeCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if cmd.Flags().Changed("reference") {
		cfg.Update([]config.Option{config.OptReferencePath(referencePath)})
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Update([]config.Option{config.OptJobsNumber(jobsNumber)})
	}

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newEngine loads reference standards selected by configuration.
func newEngine() (*engine.Engine, error) {
	cat, err := ioreference.Load(cfg.Reference.Path)
	if err != nil {
		return nil, err
	}
	return engine.New(cat), nil
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("NUTRIGAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Reference and report configuration
	v.BindEnv("reference.path", "NUTRIGAP_REFERENCE_PATH")
	v.BindEnv("report.page_size", "NUTRIGAP_REPORT_PAGE_SIZE")
	v.BindEnv("report.title", "NUTRIGAP_REPORT_TITLE")

	// History and database configuration
	v.BindEnv("history.backend", "NUTRIGAP_HISTORY_BACKEND")
	v.BindEnv("database.host", "NUTRIGAP_DATABASE_HOST")
	v.BindEnv("database.port", "NUTRIGAP_DATABASE_PORT")
	v.BindEnv("database.user", "NUTRIGAP_DATABASE_USER")
	v.BindEnv("database.password", "NUTRIGAP_DATABASE_PASSWORD")
	v.BindEnv("database.database", "NUTRIGAP_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "NUTRIGAP_DATABASE_SSL_MODE")

	// Server configuration
	v.BindEnv("server.port", "NUTRIGAP_SERVER_PORT")

	// Log configuration
	v.BindEnv("log.level", "NUTRIGAP_LOG_LEVEL")
	v.BindEnv("log.format", "NUTRIGAP_LOG_FORMAT")
	v.BindEnv("log.destination", "NUTRIGAP_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "NUTRIGAP_JOBS_NUMBER")

	v.AutomaticEnv()
}
