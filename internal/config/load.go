package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spigell/resume-matcher/internal/filtering"
)

const (
	// Name is the config file looked up in the working directory.
	Name = "resume-matcher"
	// EnvPrefix prefixes environment overrides, e.g. RESUME_MATCHER_SETTINGS_TOP_K_COUNT.
	EnvPrefix = "RESUME_MATCHER"

	// keyDelimiter keeps dotted terms such as "node.js" intact as map keys.
	keyDelimiter = "::"
)

var ErrInvalid = errors.New("invalid configuration")

// Load reads the configuration from path, or from resume-matcher.{yaml,json,toml} in the
// working directory when path is empty. A missing default file yields defaults, a
// missing explicit file is an error.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(Name)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := decode(v.AllSettings(), cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	base := filepath.Dir(v.ConfigFileUsed())
	if err := cfg.mergeFiles(base); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks a loaded configuration: everything ValidateSettings checks plus
// the working directories.
func (c *Config) Validate() error {
	if err := c.ValidateSettings(); err != nil {
		return err
	}
	if err := validator.New().Struct(c.Paths); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.CompileFilters(); err != nil {
		return err
	}
	return nil
}

// ValidateSettings checks value ranges of everything except the working directories,
// which only the CLI uses.
func (c *Config) ValidateSettings() error {
	if err := validator.New().StructExcept(c, "Paths"); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// CompileFilters compiles the statement filter patterns, skipping blank entries.
func (c *Config) CompileFilters() ([]*regexp.Regexp, error) {
	patterns, err := filtering.CompilePatterns(c.Filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return patterns, nil
}

func newViper() *viper.Viper {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(keyDelimiter, "_", "-", "_"))
	v.AutomaticEnv()

	d := Default()
	set := func(key string, value any) { v.SetDefault(strings.ReplaceAll(key, ".", keyDelimiter), value) }

	set("settings.top_k_count", d.Settings.TopK)
	set("settings.deduplicate_bullets", d.Settings.Deduplicate)
	set("settings.min_bullet_length", d.Settings.MinLength)
	set("settings.bottom_k_count", d.Settings.BottomK)
	set("settings.master_top_n", d.Settings.MasterTopN)
	set("polarity.provider", d.Polarity.Provider)
	set("polarity.threshold", d.Polarity.Threshold)
	set("polarity.gemini.model", d.Polarity.Gemini.Model)
	set("polarity.gemini.max-retries", d.Polarity.Gemini.MaxRetries)
	set("polarity.gemini.max-log-length", d.Polarity.Gemini.MaxLogLength)
	set("polarity.gemini.api-key-file", "")
	set("paths.resumes", d.Paths.Resumes)
	set("paths.jobs", d.Paths.Jobs)
	set("paths.exports", d.Paths.Exports)
	set("inventory-file", "")
	set("synonyms-file", "")

	return v
}

func decode(input any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// mergeFiles loads inventory-file and synonyms-file and merges them over the inline
// maps. Relative paths are resolved against base.
func (c *Config) mergeFiles(base string) error {
	if c.Inventory == nil {
		c.Inventory = map[string][]string{}
	}
	if c.Synonyms == nil {
		c.Synonyms = map[string][]string{}
	}

	if err := mergeListFile(resolve(base, c.InventoryFile), c.Inventory); err != nil {
		return fmt.Errorf("loading inventory file: %w", err)
	}
	if err := mergeListFile(resolve(base, c.SynonymsFile), c.Synonyms); err != nil {
		return fmt.Errorf("loading synonyms file: %w", err)
	}

	return nil
}

func mergeListFile(path string, into map[string][]string) error {
	if path == "" {
		return nil
	}

	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	var entries map[string][]string
	if err := decode(v.AllSettings(), &entries); err != nil {
		return err
	}

	for key, values := range entries {
		into[key] = values
	}

	return nil
}

func resolve(base, path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) || base == "" || base == "." {
		return path
	}
	return filepath.Join(base, path)
}
