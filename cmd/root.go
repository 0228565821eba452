package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/erjac77/f5-reconciler/internal/app"
	apperrors "github.com/erjac77/f5-reconciler/internal/errors"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	reporter  string
	dryRun    bool
)

var rootCmd = &cobra.Command{
	Use:   "f5-reconciler",
	Short: "Reconciles declared F5 device resources against their live configuration.",
	Long: `F5 Reconciler drives BIG-IP, BIG-IQ and iWorkflow devices toward a
declared configuration: each declared resource is created, updated or
deleted over the iControl REST API until the device matches the
declaration, and a change report is produced.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		application, bootstrapErr := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper())
		if bootstrapErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Application initialization failed: %v\n", bootstrapErr)
			if userMsg, suggestion, ok := apperrors.GetUserFacingMessage(bootstrapErr); ok {
				fmt.Fprintf(os.Stderr, "Error Details: %s\n", userMsg)
				if suggestion != "" {
					fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
				}
			}
			return bootstrapErr
		}

		runErr := application.Run(cmd.Context())
		if runErr != nil {
			userMsg, suggestion, _ := apperrors.GetUserFacingMessage(runErr)
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
			if suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
			}
			return runErr
		}

		return nil
	},
}

func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is config.yaml or .f5-reconciler.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Override log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&reporter, "reporter", "", "Override reporter type (text, json)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Report the changes that would be made without making them")

	viper.BindPFlag("settings.log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("settings.log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("settings.reporter", rootCmd.PersistentFlags().Lookup("reporter"))
	viper.BindPFlag("settings.dry_run", rootCmd.PersistentFlags().Lookup("dry-run"))

	viper.SetEnvPrefix("F5")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func initializeConfig(cmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.SetConfigName(".f5-reconciler")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using configuration file:", viper.ConfigFileUsed())
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Fprintln(os.Stderr, "Config file not found, using defaults and environment variables.")
		} else {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}

	return nil
}
