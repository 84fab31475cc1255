package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultGroupCapacity is used when the config file does not set groupCapacity
	DefaultGroupCapacity = 10

	// DefaultMaxRank is used when the config file does not set maxRank
	DefaultMaxRank = 5

	configFileBase = "groups_config"
	appDirName     = ".workshop-groups"
)

// Cohort labels a grade level in reports
type Cohort struct {
	Label string `yaml:"label" validate:"required"`
	Grade int    `yaml:"grade"`
}

// Preassignment pins a participant to a group before allocation runs
type Preassignment struct {
	FirstName string `yaml:"firstName" validate:"required"`
	LastName  string `yaml:"lastName" validate:"required"`
	Group     string `yaml:"group" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	// ResponsesSheetID and ResponsesTab locate the survey responses in Google Sheets.
	// Both may be left empty when responses are always read from a local file.
	ResponsesSheetID string `yaml:"responsesSheetID,omitempty" validate:"required_with=ResponsesTab"`
	ResponsesTab     string `yaml:"responsesTab,omitempty" validate:"required_with=ResponsesSheetID"`

	// ResultsSheetID is the spreadsheet assignments are published to
	ResultsSheetID string `yaml:"resultsSheetID,omitempty"`

	// GroupCapacity is the maximum number of participants in any group
	GroupCapacity int `yaml:"groupCapacity" env:"WORKSHOP_GROUP_CAPACITY" validate:"min=0"`

	// MaxRank is how many ranked choices are tried per participant (0 = all groups)
	MaxRank int `yaml:"maxRank" env:"WORKSHOP_MAX_RANK" validate:"min=0"`

	Cohorts        []Cohort        `yaml:"cohorts,omitempty" validate:"dive"`
	Preassignments []Preassignment `yaml:"preassignments,omitempty" validate:"dive"`
}

// ErrNotFound is returned when no candidate file exists in any search directory
var ErrNotFound = errors.New("file not found")

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// DefaultCohorts returns the high school grade labels used when none are configured
func DefaultCohorts() []Cohort {
	return []Cohort{
		{Label: "Freshmen", Grade: 9},
		{Label: "Sophomores", Grade: 10},
		{Label: "Juniors", Grade: 11},
		{Label: "Seniors", Grade: 12},
	}
}

// EffectiveMaxRank resolves MaxRank against the number of groups in the survey
func (c *Config) EffectiveMaxRank(groupCount int) int {
	if c.MaxRank == 0 {
		return max(groupCount, 1)
	}
	return c.MaxRank
}

// LoadWithEnv loads the configuration for an environment.
// For env "test" it looks for groups_config.test.yaml, falling back to groups_config.yaml.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Environment variables override values from the file.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML config data, applies defaults and env overrides, then validates
func Parse(data []byte) (*Config, error) {
	cfg := Config{
		GroupCapacity: DefaultGroupCapacity,
		MaxRank:       DefaultMaxRank,
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if len(cfg.Cohorts) == 0 {
		cfg.Cohorts = DefaultCohorts()
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks cross-field rules
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	seenGrades := make(map[int]string)
	for i, cohort := range cfg.Cohorts {
		if label, ok := seenGrades[cohort.Grade]; ok {
			return fmt.Errorf("invalid cohorts[%d]: grade %d already labelled %q", i, cohort.Grade, label)
		}
		seenGrades[cohort.Grade] = cohort.Label
	}

	seenNames := make(map[string]bool)
	for i, pre := range cfg.Preassignments {
		key := pre.FirstName + " " + pre.LastName
		if seenNames[key] {
			return fmt.Errorf("invalid preassignments[%d]: %s is preassigned twice", i, key)
		}
		seenNames[key] = true
	}

	return nil
}

// findConfigFile searches for groups_config[.<env>].yaml
func findConfigFile(env string) (string, error) {
	candidates := []string{configFileBase + ".yaml"}
	if env != "" {
		candidates = []string{configFileBase + "." + env + ".yaml", configFileBase + ".yaml"}
	}

	return findFile(candidates)
}

// findFile returns the first candidate found in the current directory,
// ~/.workshop-groups or the home directory, in that order
func findFile(candidates []string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dirs := []string{".", filepath.Join(homeDir, appDirName), homeDir}

	for _, dir := range dirs {
		for _, name := range candidates {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s not in current directory or home directory", ErrNotFound, candidates[0])
}
