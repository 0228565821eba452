package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/erjac77/f5-reconciler/internal/adapters/platform/f5"
	"github.com/erjac77/f5-reconciler/internal/config"
	"github.com/erjac77/f5-reconciler/internal/core/domain"
	"github.com/erjac77/f5-reconciler/internal/core/ports"
	"github.com/erjac77/f5-reconciler/internal/core/service"
	"github.com/erjac77/f5-reconciler/internal/errors"
	"github.com/erjac77/f5-reconciler/internal/log"
	"github.com/erjac77/f5-reconciler/internal/normalize"
	jsonreport "github.com/erjac77/f5-reconciler/internal/reporting/json"
	"github.com/erjac77/f5-reconciler/internal/reporting/text"
)

func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg := config.DefaultConfig()
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logCfg := log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Infof(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	} else {
		logger.Debugf(ctx, "No configuration file found, using defaults/env/flags.")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	err = validate.StructCtx(ctx, cfg)
	if err != nil {
		var errorDetails strings.Builder
		errorDetails.WriteString("Configuration validation failed:")
		validationErrors := err.(validator.ValidationErrors)
		for _, fe := range validationErrors {
			errorDetails.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		wrappedErr := errors.NewUserFacing(errors.CodeConfigValidation, errorDetails.String(), "Please check your configuration file or flags.")
		logger.Errorf(ctx, wrappedErr, "Configuration validation failed")
		return nil, wrappedErr
	}
	logger.Debugf(ctx, "Configuration validated successfully")

	connLog := logger.WithFields(map[string]any{"component": "client", "host": cfg.Connection.Hostname})
	client, err := f5.Connect(ctx, cfg.Connection, connLog)
	if err != nil {
		return nil, err
	}

	registry := service.NewBindingRegistry()
	if err := registerBindings(client, cfg.Resources, registry); err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "Binding registry initialized")

	engine, err := service.NewEngine(registry, logger.WithFields(map[string]any{"component": "engine"}))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize reconciliation engine")
	}

	var reporter ports.Reporter
	switch cfg.Settings.ReporterType {
	case text.ReporterTypeText:
		reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": text.ReporterTypeText})
		if cfg.Settings.Reporter.Text == nil {
			cfg.Settings.Reporter.Text = config.DefaultConfig().Settings.Reporter.Text
		}
		reporter, err = text.NewReporter(*cfg.Settings.Reporter.Text, reportLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize Text reporter")
		}
	case jsonreport.ReporterTypeJSON:
		reportLog := logger.WithFields(map[string]any{"component": "reporter", "type": jsonreport.ReporterTypeJSON})
		jsonCfg := jsonreport.Config{}
		if cfg.Settings.Reporter.JSON != nil {
			jsonCfg = *cfg.Settings.Reporter.JSON
		}
		reporter, err = jsonreport.NewReporter(jsonCfg, reportLog)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
		}
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.ReporterType), "Supported: text, json")
	}

	logger.Infof(ctx, "Application bootstrap complete")
	return &Application{
		Engine:   engine,
		Reporter: reporter,
		Logger:   logger,
		Config:   cfg,
	}, nil
}

// registerBindings wires one binding per distinct kind. Required-field
// names are declared caller-side (snake_case) and stored remote-side.
func registerBindings(client *f5.Client, resources []config.ResourceConfig, registry *service.BindingRegistry) error {
	type kindInfo struct{ singleton bool }
	seen := make(map[domain.ResourceKind]kindInfo)

	for _, rc := range resources {
		if info, ok := seen[rc.Kind]; ok {
			if info.singleton != rc.Singleton {
				return errors.Newf(errors.CodeConfigValidation,
					"resource kind '%s' declared both singleton and named", rc.Kind)
			}
			continue
		}
		seen[rc.Kind] = kindInfo{singleton: rc.Singleton}

		spec := domain.ResourceSpec{
			Kind:              rc.Kind,
			RequiredForCreate: toRemoteNames(rc.RequiredForCreate),
			RequiredForUpdate: toRemoteNames(rc.RequiredForUpdate),
		}

		if rc.Singleton {
			binding, err := f5.NewSingletonBinding(client, rc.Kind)
			if err != nil {
				return err
			}
			if err := registry.RegisterSingleton(binding, spec); err != nil {
				return err
			}
			continue
		}

		binding, err := f5.NewBinding(client, rc.Kind)
		if err != nil {
			return err
		}
		if err := registry.RegisterNamed(binding, spec); err != nil {
			return err
		}
	}
	return nil
}

func toRemoteNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = normalize.SnakeToCamel(n)
	}
	return out
}
