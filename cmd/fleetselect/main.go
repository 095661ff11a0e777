package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fleetselect/internal/config"
	"fleetselect/internal/fleet"
	"fleetselect/internal/selector"
	"fleetselect/internal/sensitivity"
	"fleetselect/pkg/constants"
	"fleetselect/pkg/output"
)

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

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

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}
		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	vesselsPath := flag.String("vessels", "", "path to the vessel cost table (CSV)")
	robust := flag.Bool("robust", false, "use min-max robust selection across stress scenarios")
	sweep := flag.Bool("sweep", false, "run the safety threshold sweep")
	carbonSweep := flag.Bool("carbon-sweep", false, "run the carbon price sweep")
	pareto := flag.Bool("pareto", false, "run the epsilon-constraint Pareto sweep")
	shadow := flag.Bool("shadow", false, "compute perturbation shadow prices")
	whatIf := flag.Bool("whatif", false, "compare selection with and without fuel diversity")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if outputFormat != constants.OutputFormatPretty && outputFormat != constants.OutputFormatCSV {
		logger.Fatal("invalid output format "+outputFormat,
			zap.String("op", "main"),
		)
	}

	warnings, err := conf.ValidateConfiguration()
	if err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *vesselsPath == "" {
		logger.Fatal("no vessel table provided; use -vessels",
			zap.String("op", "main"),
		)
	}
	var requiredTypes []string
	if conf.RequireAllFuelTypes {
		requiredTypes = conf.RequiredFuelTypes
	}
	pool, err := fleet.LoadCSV(*vesselsPath, requiredTypes)
	if err != nil {
		logger.Fatal("failed to load vessel table",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	params := selector.Params{
		CargoDemand:         conf.CargoDemand,
		MinAvgSafety:        conf.SafetyThreshold,
		RequireAllFuelTypes: conf.RequireAllFuelTypes,
		FuelTypes:           conf.RequiredFuelTypes,
		Solver:              conf.Solver.Options(),
	}

	// Base or robust selection always runs; sweeps are opt-in.
	if *robust {
		res, robustErr := selector.SelectRobust(logger, pool, selector.RobustParams{
			Scenarios:           conf.Scenarios,
			BaseCarbonPrice:     conf.CarbonPrice,
			CargoDemand:         conf.CargoDemand,
			RequireAllFuelTypes: conf.RequireAllFuelTypes,
			FuelTypes:           conf.RequiredFuelTypes,
			Solver:              conf.Solver.Options(),
		})
		if robustErr != nil {
			logger.Fatal("robust selection failed",
				zap.String("op", "main"),
				zap.Error(robustErr),
			)
		}
		output.PrettyRobust(res)
	} else {
		res, selectErr := selector.Select(logger, pool, params)
		if selectErr != nil {
			logger.Fatal("fleet selection failed",
				zap.String("op", "main"),
				zap.Error(selectErr),
			)
		}
		output.PrettyMetrics("Cost-minimal selection", res.SelectedIDs, res.Metrics)
	}

	if *sweep {
		results, sweepErr := sensitivity.SafetySweep(logger, pool, conf.SafetyThresholds, params)
		if sweepErr != nil {
			logger.Fatal("safety sweep failed",
				zap.String("op", "main"),
				zap.Error(sweepErr),
			)
		}
		switch outputFormat {
		case constants.OutputFormatCSV:
			output.CsvSweep("safety_threshold", results)
		default:
			output.PrettySweep("Safety threshold sweep", "Threshold", results)
		}
	}

	if *carbonSweep {
		results, sweepErr := sensitivity.CarbonPriceSweep(logger, pool, conf.CarbonPrices, conf.CarbonPrice, params)
		if sweepErr != nil {
			logger.Fatal("carbon price sweep failed",
				zap.String("op", "main"),
				zap.Error(sweepErr),
			)
		}
		switch outputFormat {
		case constants.OutputFormatCSV:
			output.CsvSweep("carbon_price", results)
		default:
			output.PrettySweep("Carbon price sweep", "Price ($/t)", results)
		}
	}

	if *pareto {
		points, paretoErr := sensitivity.ParetoSweep(logger, pool, params, conf.ParetoPoints)
		if paretoErr != nil {
			logger.Fatal("pareto sweep failed",
				zap.String("op", "main"),
				zap.Error(paretoErr),
			)
		}
		switch outputFormat {
		case constants.OutputFormatCSV:
			output.CsvPareto(points)
		default:
			output.PrettyPareto(points)
		}
	}

	if *shadow {
		report, shadowErr := sensitivity.ShadowPrices(logger, pool, params)
		if shadowErr != nil {
			logger.Fatal("shadow price analysis failed",
				zap.String("op", "main"),
				zap.Error(shadowErr),
			)
		}
		output.PrettyShadow(report)
	}

	if *whatIf {
		comparison, whatIfErr := sensitivity.RunDiversityWhatIf(logger, pool, params)
		if whatIfErr != nil {
			logger.Fatal("diversity what-if failed",
				zap.String("op", "main"),
				zap.Error(whatIfErr),
			)
		}
		output.PrettyMetrics("With diversity constraint", comparison.With.SelectedIDs, comparison.With.Metrics)
		output.PrettyMetrics("Without diversity constraint", comparison.Without.SelectedIDs, comparison.Without.Metrics)
		if comparison.CostSavings != nil {
			fmt.Printf("Cost savings without diversity ($): %.2f\n", *comparison.CostSavings)
			fmt.Printf("Fleet size difference:              %+d\n", *comparison.FleetSizeDiff)
			if len(comparison.FuelTypesLost) > 0 {
				fmt.Printf("Fuel types lost:                    %v\n", comparison.FuelTypesLost)
			}
		}
	}
}
