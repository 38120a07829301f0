package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/zimtax/taxplanner/internal/calculation"
	"github.com/zimtax/taxplanner/internal/domain"
	"github.com/zimtax/taxplanner/internal/output"
)

// periodActual is one --actual flag: booked figures for the period at year/sequence.
type periodActual struct {
	year     int
	sequence int
	actuals  domain.PeriodActuals
}

// parseActual reads "year:sequence:revenue:expenses".
func parseActual(s string) (periodActual, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return periodActual{}, fmt.Errorf("invalid --actual %q: want year:sequence:revenue:expenses", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return periodActual{}, fmt.Errorf("invalid --actual %q: year: %w", s, err)
	}
	seq, err := strconv.Atoi(parts[1])
	if err != nil {
		return periodActual{}, fmt.Errorf("invalid --actual %q: sequence: %w", s, err)
	}
	revenue, err := decimal.NewFromString(parts[2])
	if err != nil {
		return periodActual{}, fmt.Errorf("invalid --actual %q: revenue: %w", s, err)
	}
	expenses, err := decimal.NewFromString(parts[3])
	if err != nil {
		return periodActual{}, fmt.Errorf("invalid --actual %q: expenses: %w", s, err)
	}
	return periodActual{year: year, sequence: seq, actuals: domain.PeriodActuals{Revenue: revenue, Expenses: expenses}}, nil
}

func newWhatIfCmd(opts *globalOptions) *cobra.Command {
	var (
		configPath        string
		from              string
		name              string
		revenueGrowth     string
		expenseGrowth     string
		expenseMultiplier string
		actuals           []string
		format            string
		outputDir         string
		save              string
	)
	cmd := &cobra.Command{
		Use:   "whatif",
		Short: "Derive a scenario from an existing one and project it alongside the rest",
		Long: `Derive a scenario from an existing one and project it alongside the rest.

The source scenario is duplicated under --name, any driver flags given replace the
copied drivers, and each --actual books revenue and expenses for one period of the
copy. The source is left untouched. With --save the extended configuration is
written back out as YAML.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			booked := make([]periodActual, 0, len(actuals))
			for _, a := range actuals {
				pa, err := parseActual(a)
				if err != nil {
					return err
				}
				booked = append(booked, pa)
			}

			cfg, engine, err := opts.loadEngine(cmd, configPath)
			if err != nil {
				return err
			}

			srcIdx := -1
			for i, s := range cfg.Scenarios {
				if (from == "" && s.IsBase) || (from != "" && (s.ID == from || strings.EqualFold(s.Name, from))) {
					srcIdx = i
					break
				}
			}
			if srcIdx < 0 {
				return fmt.Errorf("scenario %q not found in %s", from, configPath)
			}
			// The copy needs explicit periods so actuals have something to land on.
			if len(cfg.Scenarios[srcIdx].Periods) == 0 {
				c := cfg.Company
				cfg.Scenarios[srcIdx].Periods = calculation.GeneratePeriods(c.PeriodType, c.StartYear, c.PeriodCount)
			}

			set, err := calculation.NewScenarioSet(cfg.Scenarios...)
			if err != nil {
				return err
			}
			derived, err := set.Duplicate(cfg.Scenarios[srcIdx].ID, name, domain.ScenarioCustom)
			if err != nil {
				return err
			}

			drivers := derived.Drivers
			for _, f := range []struct {
				flag   string
				value  string
				target *decimal.Decimal
			}{
				{"revenue-growth", revenueGrowth, &drivers.RevenueGrowth},
				{"expense-growth", expenseGrowth, &drivers.ExpenseGrowth},
				{"expense-multiplier", expenseMultiplier, &drivers.ExpenseMultiplier},
			} {
				if !cmd.Flags().Changed(f.flag) {
					continue
				}
				v, err := decimal.NewFromString(f.value)
				if err != nil {
					return fmt.Errorf("invalid --%s %q: %w", f.flag, f.value, err)
				}
				*f.target = v
			}
			if derived, err = set.UpdateDrivers(derived.ID, drivers); err != nil {
				return err
			}

			for _, pa := range booked {
				var target *domain.Period
				for i := range derived.Periods {
					if p := derived.Periods[i]; p.Year == pa.year && p.Sequence == pa.sequence {
						target = &derived.Periods[i]
						break
					}
				}
				if target == nil {
					return fmt.Errorf("scenario %q has no period %d/%d", name, pa.year, pa.sequence)
				}
				p := target.Clone()
				figures := pa.actuals
				p.Actuals = &figures
				if derived, err = set.ReplacePeriod(derived.ID, p); err != nil {
					return err
				}
			}

			cfg.Scenarios = set.List()
			if save != "" {
				if err := output.SaveConfiguration(cfg, save); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "saved configuration with %q to %s\n", name, save)
			}

			projection, err := engine.RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return emit(cmd, output.NewReport(projection, nil, baseCurrency(engine)), format, outputDir)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "config.yaml", "configuration file")
	cmd.Flags().StringVar(&from, "from", "", "source scenario name or id (default: the base scenario)")
	cmd.Flags().StringVar(&name, "name", "", "name of the derived scenario")
	cmd.Flags().StringVar(&revenueGrowth, "revenue-growth", "", "revenue growth rate per compounding step, e.g. 0.08")
	cmd.Flags().StringVar(&expenseGrowth, "expense-growth", "", "expense growth rate per compounding step")
	cmd.Flags().StringVar(&expenseMultiplier, "expense-multiplier", "", "multiplier applied to projected expenses")
	cmd.Flags().StringArrayVar(&actuals, "actual", nil, "booked figures as year:sequence:revenue:expenses (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (see 'zimtax formats')")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write a timestamped report file to this directory instead of stdout")
	cmd.Flags().StringVar(&save, "save", "", "also write the extended configuration to this YAML file")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
