// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/spf13/viper"
)

// DefaultNamePrefix is applied to every resource display name unless
// NAME_PREFIX overrides it.
const DefaultNamePrefix = "fnstack-example"

// Config carries everything the orchestrator needs. It is built once at
// process start and passed along explicitly.
type Config struct {
	// OCI credential selection.
	ConfigFilePath string `mapstructure:"oci_config_path"`
	Profile        string `mapstructure:"oci_config_profile"`

	// One of CompartmentName or CompartmentID is required.
	CompartmentName string `mapstructure:"compartment_name"`
	CompartmentID   string `mapstructure:"compartment_id" validate:"required_without=CompartmentName"`

	// Image is the OCIR function image; required for setup only.
	Image string `mapstructure:"ocir_fn_image"`

	// Content is the payload sent when invoking the function.
	Content string `mapstructure:"content"`

	NamePrefix string `mapstructure:"name_prefix" validate:"required"`

	Debug bool `mapstructure:"-"`

	// Lifecycle-wait bounds for every create operation.
	WaitTimeout  time.Duration `mapstructure:"wait_timeout"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("name_prefix", DefaultNamePrefix)
	v.SetDefault("wait_timeout", "5m")
	v.SetDefault("poll_interval", "2s")

	// Explicit binds so AutomaticEnv sees keys that are never set elsewhere.
	for _, key := range []string{
		"oci_config_path", "oci_config_profile",
		"compartment_name", "compartment_id",
		"ocir_fn_image", "content", "debug",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Debug = v.GetInt("debug") > 0

	return cfg, nil
}

// Validate checks that the configuration is usable. requireImage is set when
// the setup phase was requested.
func (c *Config) Validate(requireImage bool) error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("the COMPARTMENT_ID (or COMPARTMENT_NAME) environment variable must be set: %w", err)
	}
	if requireImage {
		if err := validate.Var(c.Image, "required"); err != nil {
			return fmt.Errorf("the OCIR_FN_IMAGE environment variable must be set: %w", err)
		}
	}
	return nil
}

// ToConfigProvider creates an OCI ConfigurationProvider from the config.
func (c *Config) ToConfigProvider() (common.ConfigurationProvider, error) {
	if c.ConfigFilePath == "" && c.Profile == "" {
		return common.DefaultConfigProvider(), nil
	}

	if c.ConfigFilePath != "" && c.Profile == "" {
		return common.ConfigurationProviderFromFile(c.ConfigFilePath, "")
	}

	if c.ConfigFilePath == "" {
		// Default path with a custom profile.
		return common.CustomProfileConfigProvider("", c.Profile), nil
	}

	return common.ConfigurationProviderFromFileWithProfile(c.ConfigFilePath, c.Profile, "")
}
