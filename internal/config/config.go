package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/kolah/oasforge/internal/codec"
)

// DefaultConfigFile is looked up in the working directory when --config is
// not given.
const DefaultConfigFile = "oasforge.yaml"

type Config struct {
	// File is the document being edited.
	File  string      `koanf:"file"`
	Edit  EditConfig  `koanf:"edit"`
	Check CheckConfig `koanf:"check"`
}

type EditConfig struct {
	// DedupeTags drops exact duplicates when adding operation tags.
	DedupeTags bool `koanf:"dedupe-tags"`
}

type CheckConfig struct {
	// FailOnDangling makes "check" exit non-zero when dangling references
	// are found.
	FailOnDangling bool `koanf:"fail-on-dangling"`
}

// BindCommonFlags binds the flags shared by every command.
func BindCommonFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: oasforge.yaml)")
	flags.StringP("file", "f", "", "API document path (default: "+codec.DefaultFilename+")")
	flags.Bool("dedupe-tags", false, "Drop duplicate operation tags")
}

// Load merges the config file (if any) with command-line flags; flags win.
func Load(cmd *cobra.Command) (*Config, error) {
	k := koanf.New(".")

	configFile := getString(cmd, "config")
	if configFile == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			configFile = DefaultConfigFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if cfg.File == "" {
		cfg.File = codec.DefaultFilename
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	if v := getString(cmd, "file"); v != "" {
		m["file"] = v
	}
	if cmd.Flags().Changed("dedupe-tags") || cmd.PersistentFlags().Changed("dedupe-tags") {
		m["edit.dedupe-tags"] = getBool(cmd, "dedupe-tags")
	}

	return m
}

func getString(cmd *cobra.Command, name string) string {
	if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
		return v
	}
	if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
		return v
	}
	return ""
}

func getBool(cmd *cobra.Command, name string) bool {
	if v, err := cmd.Flags().GetBool(name); err == nil && v {
		return v
	}
	if v, err := cmd.PersistentFlags().GetBool(name); err == nil {
		return v
	}
	return false
}

func (c *Config) Validate() error {
	if c.File == "" {
		return fmt.Errorf("document file is required")
	}
	return nil
}
