/*
Copyright © 2026 SFUSat <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/sfusat/libpop/lib"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "libpop",
	Short: "Populate KiCad libraries from Digi-Key part pages",
	Long: `Populate KiCad symbol libraries from Digi-Key part pages.

Each part number is looked up on Digi-Key, its attributes are normalized
and a symbol and description entry is appended to the library of its
family (capacitor, inductor, resistor or other).`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and runs it until
// it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./libpop.yaml or $HOME/.libpop/libpop.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".libpop"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("libpop")
	}

	setDefaults(lib.DefaultConfig())

	// LIBPOP_SUPPLIER_BASE_URL overrides supplier.base_url
	viper.SetEnvPrefix("LIBPOP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

/*
	Every key needs a default for AutomaticEnv to reach it through
	Unmarshal.
*/
func setDefaults(cfg *lib.Config) {
	viper.SetDefault("parts", cfg.Parts)
	viper.SetDefault("library_dir", cfg.LibraryDir)
	viper.SetDefault("footprint_dir", cfg.FootprintDir)
	viper.SetDefault("strict", cfg.Strict)
	viper.SetDefault("ignore_fields", cfg.IgnoreFields)

	viper.SetDefault("supplier.name", cfg.Supplier.Name)
	viper.SetDefault("supplier.base_url", cfg.Supplier.BaseURL)
	viper.SetDefault("supplier.user_agent", cfg.Supplier.UserAgent)
	viper.SetDefault("supplier.interval", cfg.Supplier.Interval)
	viper.SetDefault("supplier.timeout", cfg.Supplier.Timeout)
	viper.SetDefault("supplier.respect_robots", cfg.Supplier.RespectRobots)
	viper.SetDefault("supplier.cloudflare", cfg.Supplier.Cloudflare)

	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("log.format", cfg.Log.Format)
}

/*
	Resolve the configuration and build the logger every command that
	touches libraries needs.
*/
func setup() (*lib.Config, *zap.Logger, error) {
	cfg := lib.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if viper.GetBool("verbose") {
		cfg.Log.Level = "debug"
	}

	logger, err := lib.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}
