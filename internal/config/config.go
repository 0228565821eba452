package config

import (
	"github.com/erjac77/f5-reconciler/internal/adapters/platform/f5"
	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/log"
	"github.com/erjac77/f5-reconciler/internal/reporting/json"
	"github.com/erjac77/f5-reconciler/internal/reporting/text"
)

type Config struct {
	Settings   SettingsConfig   `mapstructure:"settings" yaml:"settings"`
	Connection f5.Config        `mapstructure:"connection" yaml:"connection" validate:"required"`
	Resources  []ResourceConfig `mapstructure:"resources" yaml:"resources" validate:"required,min=1,dive"`
}

type SettingsConfig struct {
	LogLevel     log.Level       `mapstructure:"log_level" yaml:"log_level"`
	LogFormat    log.Format      `mapstructure:"log_format" yaml:"log_format"`
	Concurrency  int             `mapstructure:"concurrency" yaml:"concurrency" validate:"omitempty,min=1"`
	ReporterType string          `mapstructure:"reporter" yaml:"reporter" validate:"omitempty,oneof=text json"`
	DryRun       bool            `mapstructure:"dry_run" yaml:"dry_run"`
	Reporter     ReporterConfigs `mapstructure:"reporter_config" yaml:"reporter_config"`
}

type ReporterConfigs struct {
	Text *text.Config `mapstructure:"text" yaml:"text,omitempty"`
	JSON *json.Config `mapstructure:"json" yaml:"json,omitempty"`
}

// ResourceConfig declares one desired resource. Identity comes either from
// explicit params (name, partition, sub_path) or from Path; params win when
// both are set. Params use the caller-side snake_case naming.
type ResourceConfig struct {
	Kind              domain.ResourceKind `mapstructure:"kind" yaml:"kind" validate:"required"`
	Singleton         bool                `mapstructure:"singleton" yaml:"singleton"`
	State             string              `mapstructure:"state" yaml:"state" validate:"omitempty,oneof=present absent"`
	Path              string              `mapstructure:"path" yaml:"path"`
	Params            map[string]any      `mapstructure:"params" yaml:"params"`
	Translate         map[string]any      `mapstructure:"translate" yaml:"translate"`
	RequiredForCreate []string            `mapstructure:"required_for_create" yaml:"required_for_create"`
	RequiredForUpdate []string            `mapstructure:"required_for_update" yaml:"required_for_update"`
}

func (rc ResourceConfig) TargetState() domain.TargetState {
	if rc.State == "" {
		return domain.StatePresent
	}
	return domain.TargetState(rc.State)
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:     log.LevelInfo,
			LogFormat:    log.FormatText,
			Concurrency:  10,
			ReporterType: text.ReporterTypeText,
			Reporter: ReporterConfigs{
				Text: &text.Config{NoColor: false},
			},
		},
		Connection: f5.Config{
			Product:           f5.ProductBigIP,
			Port:              f5.DefaultPort,
			Retries:           f5.DefaultRetries,
			RetryInterval:     f5.DefaultRetryInterval,
			RequestsPerSecond: f5.DefaultRequestsPerSecond,
		},
		Resources: []ResourceConfig{},
	}
}
