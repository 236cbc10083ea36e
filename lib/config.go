package lib

import (
	"fmt"
	"path/filepath"
	"time"
)

/*
	Files and footprint locations of one component family. FootprintLib
	prefixes generated footprint references, FootprintDir is the catalog
	directory searched for them.
*/
type FamilyConfig struct {
	Library      string `mapstructure:"library" yaml:"library"`
	Docs         string `mapstructure:"docs" yaml:"docs"`
	FootprintLib string `mapstructure:"footprint_lib" yaml:"footprint_lib"`
	FootprintDir string `mapstructure:"footprint_dir" yaml:"footprint_dir"`
}

type SupplierConfig struct {
	Name          string        `mapstructure:"name" yaml:"name"`
	BaseURL       string        `mapstructure:"base_url" yaml:"base_url"`
	UserAgent     string        `mapstructure:"user_agent" yaml:"user_agent"`
	Interval      time.Duration `mapstructure:"interval" yaml:"interval"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RespectRobots bool          `mapstructure:"respect_robots" yaml:"respect_robots"`
	Cloudflare    bool          `mapstructure:"cloudflare" yaml:"cloudflare"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type Config struct {
	Parts        []string                `mapstructure:"parts" yaml:"parts"`
	LibraryDir   string                  `mapstructure:"library_dir" yaml:"library_dir"`
	FootprintDir string                  `mapstructure:"footprint_dir" yaml:"footprint_dir"`
	Strict       bool                    `mapstructure:"strict" yaml:"strict"`
	IgnoreFields []string                `mapstructure:"ignore_fields" yaml:"ignore_fields"`
	Supplier     SupplierConfig          `mapstructure:"supplier" yaml:"supplier"`
	Families     map[string]FamilyConfig `mapstructure:"families" yaml:"families"`
	Log          LogConfig               `mapstructure:"log" yaml:"log"`
}

func DefaultConfig() *Config {
	return &Config{
		Parts:        []string{},
		LibraryDir:   ".",
		FootprintDir: ".",
		IgnoreFields: []string{},
		Supplier: SupplierConfig{
			Name:          "Digi-Key",
			BaseURL:       "https://www.digikey.ca",
			UserAgent:     "libpop/0.1 (KiCad library populator)",
			Interval:      1500 * time.Millisecond,
			Timeout:       30 * time.Second,
			RespectRobots: true,
			Cloudflare:    true,
		},
		Families: map[string]FamilyConfig{
			FamilyCapacitor.String(): defaultFamilyConfig("cap"),
			FamilyInductor.String():  defaultFamilyConfig("ind"),
			FamilyResistor.String():  defaultFamilyConfig("res"),
			FamilyOther.String():     defaultFamilyConfig("other"),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func defaultFamilyConfig(short string) FamilyConfig {
	name := "SFUSat-" + short
	return FamilyConfig{
		Library:      name + ".lib",
		Docs:         name + ".dcm",
		FootprintLib: name,
		FootprintDir: name + ".pretty",
	}
}

/*
	Resolve the per-family settings, filling anything the config file left
	out from the defaults.
*/
func (c *Config) FamilyConfigs() (map[Family]FamilyConfig, error) {
	defaults := DefaultConfig().Families
	families := make(map[Family]FamilyConfig, len(Families))
	for _, family := range Families {
		families[family] = defaults[family.String()]
	}

	for name, fc := range c.Families {
		family, err := ParseFamily(name)
		if err != nil {
			return nil, err
		}

		merged := families[family]
		if fc.Library != "" {
			merged.Library = fc.Library
		}
		if fc.Docs != "" {
			merged.Docs = fc.Docs
		}
		if fc.FootprintLib != "" {
			merged.FootprintLib = fc.FootprintLib
		}
		if fc.FootprintDir != "" {
			merged.FootprintDir = fc.FootprintDir
		}
		families[family] = merged
	}

	return families, nil
}

// LibraryPaths returns the library and description file paths of a family.
func (c *Config) LibraryPaths(family Family) (string, string, error) {
	families, err := c.FamilyConfigs()
	if err != nil {
		return "", "", err
	}

	fc, ok := families[family]
	if !ok {
		return "", "", fmt.Errorf("no files configured for %s", family)
	}

	return filepath.Join(c.LibraryDir, fc.Library), filepath.Join(c.LibraryDir, fc.Docs), nil
}
