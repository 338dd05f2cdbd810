package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mortgage-calc/internal/calculator"
	"mortgage-calc/internal/config"
	"mortgage-calc/internal/optimizer"
	"mortgage-calc/pkg/constants"
	"mortgage-calc/pkg/input"
	"mortgage-calc/pkg/optimization"
	"mortgage-calc/pkg/output"
	"mortgage-calc/pkg/validation"
)

// adHocLoanName labels a loan given entirely on the command line.
const adHocLoanName = "ad hoc"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
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

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var config zap.Config
	switch format {
	case "console":
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		config.OutputPaths = []string{loggingConfig.OutputFile}
		config.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return config.Build()
}

// getEnv returns the environment value for key or defaultValue when unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// Load .env for local development; a missing file is fine.
	_ = godotenv.Load()

	// Process command line flags first to get config location
	configLocation := flag.String("config", getEnv("MORTGAGE_CALC_CONFIG", constants.DefaultConfigFile), "path to configuration file")
	principalFlag := flag.String("principal", "", "loan principal for a single ad hoc calculation")
	rateFlag := flag.String("rate", "", "annual interest rate as a percentage, e.g. 6.09")
	termFlag := flag.String("term", "", "loan term in whole years")
	extraFlag := flag.String("extra", "", "extra payment applied every month")
	targetYears := flag.Int("target-years", 0, "solve for the smallest extra monthly payment that pays off each loan within this many years")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, yaml")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	adHoc := *principalFlag != "" || *rateFlag != "" || *termFlag != "" || *extraFlag != ""

	// An ad hoc loan does not need a config file, but an existing one still
	// supplies logging, output, and display settings.
	conf := &config.Configuration{}
	_, statErr := os.Stat(*configLocation)
	if statErr == nil || !adHoc {
		loaded, err := config.LoadConfiguration(*configLocation)
		if err != nil {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			return
		}
		conf = loaded
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	symbol := conf.CurrencySymbol()

	var results []calculator.Result
	var summaries []optimization.Summary

	if adHoc {
		params, parseErr := input.ParseLoan(*principalFlag, *rateFlag, *termFlag, *extraFlag)
		if parseErr != nil {
			logger.Fatal("invalid loan parameters",
				zap.String("op", "main"),
				zap.Error(parseErr),
			)
		}

		if *targetYears > 0 {
			summary, schedule, solveErr := optimizer.NewRunner(logger).Solve(adHocLoanName, params, *targetYears)
			if solveErr != nil {
				logger.Fatal("failed to optimize extra monthly payment",
					zap.String("op", "main"),
					zap.Error(solveErr),
				)
			}
			summaries = append(summaries, summary)
			results = []calculator.Result{{Name: adHocLoanName, Schedule: schedule}}
		} else {
			result, runErr := calculator.Single(logger, adHocLoanName, params)
			if runErr != nil {
				logger.Fatal("failed to compute amortization schedule",
					zap.String("op", "main"),
					zap.Error(runErr),
				)
			}
			results = []calculator.Result{result}
		}
	} else {
		// Validate configuration and display any warnings
		warnings := conf.ValidateConfiguration()
		for _, warning := range warnings {
			logger.Warn("Configuration warning: "+warning,
				zap.String("op", "main"),
			)
		}

		if *targetYears > 0 {
			runner := optimizer.NewRunner(logger)
			for i := range conf.Loans {
				loan := conf.Loans[i]
				name := loan.DisplayName(i + 1)
				summary, schedule, solveErr := runner.Solve(name, loan.ToParameters(), *targetYears)
				if solveErr != nil {
					logger.Fatal("failed to optimize extra monthly payment",
						zap.String("op", "main"),
						zap.Error(solveErr),
					)
				}
				summaries = append(summaries, summary)
				results = append(results, calculator.Result{
					Name:       name,
					Schedule:   schedule,
					PayoffDate: calculator.PayoffDate(loan.StartDate, schedule.PayoffMonths),
				})
			}
		} else {
			runResults, runErr := calculator.Run(logger, *conf)
			if runErr != nil {
				logger.Fatal("failed to compute amortization schedules",
					zap.String("op", "main"),
					zap.Error(runErr),
				)
			}
			results = runResults
		}
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results, symbol)
		if len(summaries) > 0 {
			fmt.Println()
			output.SummaryFormat(summaries, symbol)
		}
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	case constants.OutputFormatYAML:
		if yamlErr := output.YamlFormat(results); yamlErr != nil {
			logger.Fatal("failed to render yaml output",
				zap.String("op", "main"),
				zap.Error(yamlErr),
			)
		}
	}
}
