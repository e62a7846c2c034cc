package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"csv-lint/internal/schema"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	schemaFile string

	// exitStatus is set by subcommands that found problems; Execute applies
	// it after a clean run so deferred closes still fire.
	exitStatus int
)

var RootCmd = &cobra.Command{
	Use:   "csv-lint",
	Short: "A CSV data linter",
	Long: `csv-lint checks delimited text against a JSON rule schema.

Each column gets a set of rules (emptiness, character set, whitespace,
pattern, numeric shape, min/max bounds). Every violation is reported as
one plain text line and the run never stops on bad data; only a broken
configuration is fatal.`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if exitStatus != 0 {
		os.Exit(exitStatus)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./csv-lint.yaml)")
	RootCmd.PersistentFlags().StringVarP(&schemaFile, "schema", "s", "", "JSON schema file with the column rules")

	viper.BindPFlag("settings.schema", RootCmd.PersistentFlags().Lookup("schema"))

	viper.SetDefault("settings.delimiter", ",")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("csv-lint")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadSchema resolves the schema path (flag > config) and loads it.
func loadSchema() (*schema.Definition, error) {
	path := viper.GetString("settings.schema")
	if path == "" {
		return nil, fmt.Errorf("settings.schema is required (via --schema flag or config)")
	}
	return schema.Load(path)
}

// delimiterRune resolves the configured field delimiter. "\t" is accepted
// as a spelling of the tab character.
func delimiterRune() (rune, error) {
	s := viper.GetString("settings.delimiter")
	if s == "" {
		return ',', nil
	}
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
