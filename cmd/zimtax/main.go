package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zimtax/taxplanner/internal/calculation"
	"github.com/zimtax/taxplanner/internal/config"
	"github.com/zimtax/taxplanner/internal/domain"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalOptions struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "zimtax",
		Short:         "Zimbabwe corporate tax and payroll planner",
		Long:          "zimtax projects corporate income tax across what-if scenarios and computes PAYE, NSSA and employer contributions for a payroll register.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	root.AddCommand(
		newProjectCmd(opts),
		newPayrollCmd(opts),
		newGrossUpCmd(opts),
		newMonteCarloCmd(opts),
		newWhatIfCmd(opts),
		newValidateCmd(),
		newExampleConfigCmd(),
		newFormatsCmd(),
	)
	return root
}

// newLogger builds the engine logger. Logs go to stderr so report output on stdout
// stays machine-readable.
func (o *globalOptions) newLogger(cmd *cobra.Command) (calculation.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", o.logLevel, err)
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch strings.ToLower(o.logFormat) {
	case "text":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), handlerOpts)
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), handlerOpts)
	default:
		return nil, fmt.Errorf("invalid --log-format %q: use text or json", o.logFormat)
	}
	return calculation.NewSlogLogger(slog.New(handler)), nil
}

// loadEngine reads and validates a configuration and builds an engine for its rules.
func (o *globalOptions) loadEngine(cmd *cobra.Command, path string) (*domain.Configuration, *calculation.CalculationEngine, error) {
	logger, err := o.newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := config.NewInputParser().LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	engine := calculation.NewCalculationEngine(cfg.Rules)
	engine.SetLogger(logger)
	logger.Infof("loaded %s: %d scenarios, %d assets, %d employees", path, len(cfg.Scenarios), len(cfg.Assets), len(cfg.Employees))
	return cfg, engine, nil
}

// baseCurrency returns the rule set's base currency for display
func baseCurrency(engine *calculation.CalculationEngine) domain.Currency {
	cur, ok := engine.Rates.Currency(engine.Rates.BaseCode())
	if !ok {
		return domain.Currency{Code: engine.Rates.BaseCode(), DecimalPlaces: 2}
	}
	return cur
}
