// Package config loads the matcher configuration: skill inventory, synonyms, statement
// filters, ranking settings, polarity provider and working directories.
package config

import (
	"strings"

	"github.com/spigell/resume-matcher/internal/bullets"
	"github.com/spigell/resume-matcher/internal/polarity"
	"github.com/spigell/resume-matcher/internal/skills"
	"github.com/spigell/resume-matcher/internal/textnorm"
)

const (
	// ProviderLexicon selects the in-process VADER scorer.
	ProviderLexicon = "lexicon"
	ProviderGemini  = "gemini"

	// GeminiKeyEnv is consulted when no api key is configured.
	GeminiKeyEnv = "GEMINI_API_KEY"
)

type Config struct {
	Inventory     skills.Inventory  `mapstructure:"inventory" json:"inventory"`
	InventoryFile string            `mapstructure:"inventory-file" json:"inventory_file,omitempty"`
	Synonyms      textnorm.Synonyms `mapstructure:"synonyms" json:"synonyms"`
	SynonymsFile  string            `mapstructure:"synonyms-file" json:"synonyms_file,omitempty"`
	Filters       []string          `mapstructure:"filters" json:"filters"`
	OutdatedTerms []string          `mapstructure:"outdated-terms" json:"outdated_terms"`
	Settings      Settings          `mapstructure:"settings" json:"settings"`
	Polarity      PolarityConfig    `mapstructure:"polarity" json:"polarity"`
	Paths         Paths             `mapstructure:"paths" json:"paths"`
}

type Settings struct {
	TopK        int  `mapstructure:"top_k_count" json:"top_k_count" validate:"gte=1"`
	Deduplicate bool `mapstructure:"deduplicate_bullets" json:"deduplicate_bullets"`
	MinLength   int  `mapstructure:"min_bullet_length" json:"min_bullet_length" validate:"gte=0"`
	BottomK     int  `mapstructure:"bottom_k_count" json:"bottom_k_count" validate:"gte=0"`
	MasterTopN  int  `mapstructure:"master_top_n" json:"master_top_n" validate:"gte=1"`
}

type PolarityConfig struct {
	Provider  string       `mapstructure:"provider" json:"provider" validate:"oneof=lexicon gemini"`
	Threshold float64      `mapstructure:"threshold" json:"threshold" validate:"gte=-1,lte=1"`
	Negations []string     `mapstructure:"negations" json:"negations,omitempty"`
	Gemini    GeminiConfig `mapstructure:"gemini" json:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"api_key,omitempty"`
	APIKeyFile   string `mapstructure:"api-key-file" json:"api_key_file,omitempty"`
	Model        string `mapstructure:"model" json:"model"`
	MaxRetries   int    `mapstructure:"max-retries" json:"max_retries" validate:"gte=0"`
	MaxLogLength int    `mapstructure:"max-log-length" json:"max_log_length" validate:"gte=0"`
}

// Paths are the working directories used by the CLI. The analysis engine never
// reads them.
type Paths struct {
	Resumes string `mapstructure:"resumes" json:"resumes" validate:"required"`
	Jobs    string `mapstructure:"jobs" json:"jobs" validate:"required"`
	Exports string `mapstructure:"exports" json:"exports" validate:"required"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Inventory: skills.Inventory{},
		Synonyms:  textnorm.Synonyms{},
		Settings:  DefaultSettings(),
		Polarity: PolarityConfig{
			Provider:  ProviderLexicon,
			Threshold: polarity.DefaultThreshold,
			Gemini: GeminiConfig{
				Model:        "gemini-2.5-flash",
				MaxRetries:   3,
				MaxLogLength: 200,
			},
		},
		Paths: Paths{
			Resumes: "data/cache/parsed_resumes",
			Jobs:    "data/job_descriptions",
			Exports: "data/exports",
		},
	}
}

func DefaultSettings() Settings {
	return Settings{
		TopK:        bullets.DefaultTopK,
		Deduplicate: true,
		MinLength:   bullets.DefaultMinLength,
		BottomK:     bullets.DefaultBottomK,
		MasterTopN:  bullets.DefaultMasterTop,
	}
}

// WithDefaults returns a copy of c in which settings and polarity values left at
// their zero value take the defaults. A settings section that is entirely zero is
// replaced as a whole, so an explicit min_bullet_length of 0 survives only next to
// other explicit settings. A blank provider means the polarity section was omitted.
func (c *Config) WithDefaults() *Config {
	out := *c
	d := Default()

	if out.Settings == (Settings{}) {
		out.Settings = d.Settings
	}
	if out.Settings.TopK == 0 {
		out.Settings.TopK = d.Settings.TopK
	}
	if out.Settings.MasterTopN == 0 {
		out.Settings.MasterTopN = d.Settings.MasterTopN
	}

	if strings.TrimSpace(out.Polarity.Provider) == "" {
		out.Polarity.Provider = d.Polarity.Provider
		if out.Polarity.Threshold == 0 {
			out.Polarity.Threshold = d.Polarity.Threshold
		}
	}
	if out.Polarity.Gemini.Model == "" {
		out.Polarity.Gemini.Model = d.Polarity.Gemini.Model
	}

	return &out
}

// Ranking converts the settings into ranker settings.
func (s Settings) Ranking() bullets.Settings {
	return bullets.Settings{
		TopK:        s.TopK,
		Deduplicate: s.Deduplicate,
		MinLength:   s.MinLength,
		BottomK:     s.BottomK,
	}
}

// OutdatedList returns the configured outdated terms or the default list when none
// are configured.
func (c *Config) OutdatedList() []string {
	if len(c.OutdatedTerms) == 0 {
		return skills.DefaultOutdatedTerms
	}
	return c.OutdatedTerms
}

// Redacted returns a copy that is safe to log.
func (c *Config) Redacted() Config {
	out := *c
	if out.Polarity.Gemini.APIKey != "" {
		out.Polarity.Gemini.APIKey = "***"
	}
	return out
}
