package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/zimtax/taxplanner/internal/calculation"
	"github.com/zimtax/taxplanner/internal/config"
	"github.com/zimtax/taxplanner/internal/domain"
	"github.com/zimtax/taxplanner/internal/output"
)

// emit writes a report to stdout, or to a timestamped file when outputDir is set.
func emit(cmd *cobra.Command, report *output.Report, format, outputDir string) error {
	if outputDir != "" {
		paths, err := output.GenerateReport(report, format, outputDir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
		}
		return nil
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q. Try one of: %s", output.ErrUnsupportedFormat, format, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func newProjectCmd(opts *globalOptions) *cobra.Command {
	var (
		configPath  string
		format      string
		outputDir   string
		seed        int64
		withPayroll bool
	)
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project corporate tax for every scenario in a configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, engine, err := opts.loadEngine(cmd, configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}
			projection, err := engine.RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			var payroll *domain.PayrollBatchResult
			if withPayroll && len(cfg.Employees) > 0 {
				batch := engine.RunPayroll(cfg)
				payroll = &batch
			}
			return emit(cmd, output.NewReport(projection, payroll, baseCurrency(engine)), format, outputDir)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "configuration file")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (see 'zimtax formats')")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write a timestamped report file to this directory instead of stdout")
	cmd.Flags().Int64Var(&seed, "seed", 0, "exchange-rate walk seed (overrides the configuration)")
	cmd.Flags().BoolVar(&withPayroll, "with-payroll", false, "include the payroll register in the report")
	return cmd
}

func newPayrollCmd(opts *globalOptions) *cobra.Command {
	var (
		configPath  string
		format      string
		outputDir   string
		bonusMonths []int
	)
	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Compute one month's payroll for every employee in a configuration",
		Long: `Compute one month's payroll for every employee in a configuration.

With --bonus-months the command runs a full twelve-month year instead, paying each
employee's configured bonus in the listed months and carrying the year-to-date bonus
from month to month.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, engine, err := opts.loadEngine(cmd, configPath)
			if err != nil {
				return err
			}
			if len(cfg.Employees) == 0 {
				return fmt.Errorf("configuration %s has no employees", configPath)
			}
			batch := engine.RunPayroll(cfg)
			if cmd.Flags().Changed("bonus-months") {
				batch, err = engine.RunPayrollYear(cfg, bonusMonths)
				if err != nil {
					return err
				}
			}
			return emit(cmd, output.NewReport(nil, &batch, baseCurrency(engine)), format, outputDir)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "configuration file")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format: console, console-lite, payroll-csv, json")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write a timestamped report file to this directory instead of stdout")
	cmd.Flags().IntSliceVar(&bonusMonths, "bonus-months", nil, "run a twelve-month year, paying bonuses in these months (e.g. 6,12)")
	return cmd
}

func newGrossUpCmd(opts *globalOptions) *cobra.Command {
	var (
		configPath string
		net        string
		employee   string
	)
	cmd := &cobra.Command{
		Use:   "grossup",
		Short: "Find the basic salary that pays a target net salary",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := decimal.NewFromString(net)
			if err != nil {
				return fmt.Errorf("invalid --net %q: %w", net, err)
			}
			cfg, engine, err := opts.loadEngine(cmd, configPath)
			if err != nil {
				return err
			}
			template := domain.EmployeePayrollRecord{Name: "target"}
			if employee != "" {
				found := false
				for _, e := range cfg.Employees {
					if e.ID == employee || strings.EqualFold(e.Name, employee) {
						template, found = e, true
						break
					}
				}
				if !found {
					return fmt.Errorf("employee %q not found in %s", employee, configPath)
				}
			}

			res := engine.Payroll.GrossUp(target, template)
			cur := baseCurrency(engine)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Target net:    %s\n", output.FormatCurrency(res.TargetNet, cur))
			fmt.Fprintf(out, "Basic salary:  %s\n", output.FormatCurrency(res.BasicSalary, cur))
			fmt.Fprintf(out, "Gross:         %s\n", output.FormatCurrency(res.Gross, cur))
			fmt.Fprintf(out, "Net:           %s\n", output.FormatCurrency(res.Net, cur))
			fmt.Fprintf(out, "Residual:      %s\n", res.Residual.StringFixed(4))
			fmt.Fprintf(out, "Iterations:    %d (converged: %t)\n", res.Iterations, res.Converged)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "configuration file")
	cmd.Flags().StringVar(&net, "net", "", "target monthly net salary")
	cmd.Flags().StringVar(&employee, "employee", "", "employee name or id whose allowances are kept fixed")
	_ = cmd.MarkFlagRequired("net")
	return cmd
}

func newMonteCarloCmd(opts *globalOptions) *cobra.Command {
	var (
		configPath  string
		scenario    string
		simulations int
		seed        int64
		outputDir   string
	)
	cmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "Simulate a scenario under many exchange-rate paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, engine, err := opts.loadEngine(cmd, configPath)
			if err != nil {
				return err
			}
			target, ok := cfg.BaseScenario()
			if scenario != "" {
				ok = false
				for _, s := range cfg.Scenarios {
					if s.ID == scenario || strings.EqualFold(s.Name, scenario) {
						target, ok = s, true
						break
					}
				}
			}
			if !ok {
				return fmt.Errorf("scenario %q not found in %s", scenario, configPath)
			}

			res, err := engine.RunMonteCarlo(cmd.Context(), cfg, target, calculation.MonteCarloConfig{
				NumSimulations: simulations,
				Seed:           seed,
			})
			if err != nil {
				return err
			}
			cur := baseCurrency(engine)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scenario: %s (%d simulations, seed %d)\n", res.ScenarioName, res.NumSimulations, res.Seed)
			fmt.Fprintf(out, "Total tax        P10 %s  P50 %s  P90 %s\n",
				output.FormatCurrency(res.TotalTax.P10, cur),
				output.FormatCurrency(res.TotalTax.P50, cur),
				output.FormatCurrency(res.TotalTax.P90, cur))
			fmt.Fprintf(out, "After-tax profit P10 %s  P50 %s  P90 %s\n",
				output.FormatCurrency(res.AfterTaxProfit.P10, cur),
				output.FormatCurrency(res.AfterTaxProfit.P50, cur),
				output.FormatCurrency(res.AfterTaxProfit.P90, cur))
			fmt.Fprintf(out, "Mean total tax   %s\n", output.FormatCurrency(res.MeanTotalTax, cur))

			if outputDir != "" {
				report := &output.MonteCarloCSVReport{Result: res, Currency: cur}
				if err := report.GenerateAllCSVReports(outputDir); err != nil {
					return err
				}
				fmt.Fprintf(out, "wrote CSV reports to %s\n", outputDir)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "configuration file")
	cmd.Flags().StringVar(&scenario, "scenario", "", "scenario name or id (default: the base scenario)")
	cmd.Flags().IntVarP(&simulations, "simulations", "n", 500, "number of simulations")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed of the first simulation (0 picks one)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "also write summary, detailed and percentile CSVs to this directory")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration file without running it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(configPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d scenarios, %d assets, %d employees, rules for %d\n",
				configPath, len(cfg.Scenarios), len(cfg.Assets), len(cfg.Employees), cfg.Rules.Year)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "configuration file")
	return cmd
}

func newExampleConfigCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "example-config",
		Short: "Write a complete example configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if err := output.SaveConfiguration(cfg, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote example configuration to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "example_config.yaml", "destination file")
	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the available report formats and their aliases",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Formats:")
			for _, name := range output.AvailableFormatterNames() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintln(out, "  all (every format the run has data for; requires --output-dir)")
			fmt.Fprintln(out, "Aliases:")
			for _, alias := range output.AvailableFormatAliases() {
				fmt.Fprintf(out, "  %s -> %s\n", alias, output.NormalizeFormatName(alias))
			}
			return nil
		},
	}
}
