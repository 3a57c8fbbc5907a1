// Package config defines the data structures related to configuration and
// includes functions for loading and parsing the config.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/home-finance/pkg/affordability"
	"github.com/iwvelando/home-finance/pkg/constants"
	"github.com/iwvelando/home-finance/pkg/loans"
	"github.com/iwvelando/home-finance/pkg/tax"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Sentinel errors usable with errors.Is on validation results.
var (
	ErrUnknownStructure = loans.ErrUnknownStructure
	ErrUnknownVariant   = affordability.ErrUnknownVariant
	ErrUnknownEnum      = tax.ErrUnknownEnum
	// ErrInvalidRequest marks a request holding out-of-range values.
	ErrInvalidRequest = errors.New("invalid request")
)

// Configuration holds all configuration for home-finance.
type Configuration struct {
	Logging       LoggingConfig          `yaml:"logging,omitempty" mapstructure:"logging"`
	Output        OutputConfig           `yaml:"output,omitempty" mapstructure:"output"`
	Policy        PolicyConfig           `yaml:"policy" mapstructure:"policy"`
	Loans         []Loan                 `yaml:"loans,omitempty" mapstructure:"loans"`
	Affordability []AffordabilityRequest `yaml:"affordability,omitempty" mapstructure:"affordability"`
	Taxes         []TaxRequest           `yaml:"taxes,omitempty" mapstructure:"taxes"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, yaml
}

// DefaultConfiguration returns a configuration with no requests and every
// policy at its statutory default.
func DefaultConfiguration() Configuration {
	return Configuration{
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Output:  OutputConfig{Format: constants.OutputFormatPretty},
		Policy:  DefaultPolicyConfig(),
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Policy values absent from the file keep their defaults
// and any key can be overridden with a HOME_FINANCE_ environment variable.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := registerDefaults(v, DefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("unable to register defaults: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	configuration.Policy.Amortization.Normalize()

	return &configuration, nil
}

// registerDefaults flattens the defaults into dotted viper keys so a file
// only needs to name the values it changes.
func registerDefaults(v *viper.Viper, defaults Configuration) error {
	raw, err := yaml.Marshal(defaults)
	if err != nil {
		return err
	}
	var settings map[string]interface{}
	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return err
	}
	setDefaults(v, "", settings)
	return nil
}

func setDefaults(v *viper.Viper, prefix string, settings map[string]interface{}) {
	for key, value := range settings {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			setDefaults(v, path, nested)
			continue
		}
		v.SetDefault(path, value)
	}
}
