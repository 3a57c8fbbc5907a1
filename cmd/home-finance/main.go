package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/iwvelando/home-finance/internal/config"
	"github.com/iwvelando/home-finance/internal/estimate"
	"github.com/iwvelando/home-finance/pkg/constants"
	"github.com/iwvelando/home-finance/pkg/output"
	"github.com/iwvelando/home-finance/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logSetting picks the CLI override over the configured value, then the
// fallback, ignoring case and surrounding whitespace.
func logSetting(override, configured, fallback string) string {
	for _, value := range []string{override, configured} {
		if value = strings.ToLower(strings.TrimSpace(value)); value != "" {
			return value
		}
	}
	return fallback
}

// initializeLogger creates a zap logger from the logging configuration. Non-empty
// level and format overrides from the command line replace the configured values.
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride, logFormatOverride string) (*zap.Logger, error) {
	level := logSetting(logLevelOverride, loggingConfig.Level, "info")

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := logSetting(logFormatOverride, loggingConfig.Format, "json")

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	// Reports go to stdout, so logs stay on stderr.
	zapConfig.OutputPaths = []string{"stderr"}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// writeReport renders the report in the requested format.
func writeReport(outputFormat string, report *estimate.Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return output.PrettyFormat(os.Stdout, report)
	case constants.OutputFormatCSV:
		return output.CsvFormat(os.Stdout, report)
	case constants.OutputFormatYAML:
		return output.YAMLFormat(os.Stdout, report)
	}
	return validation.ValidateOutputFormat(outputFormat)
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, yaml")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "log format override (json, console)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": %q}\n", *configLocation, err.Error())
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel, *logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.Warnings() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	report, err := estimate.Run(logger, conf)
	if err != nil {
		logger.Fatal("failed to compute estimates",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if err := writeReport(outputFormat, report); err != nil {
		logger.Fatal("failed to write report",
			zap.String("op", "main"),
			zap.String("format", outputFormat),
			zap.Error(err),
		)
	}
}
