package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	calc "github.com/zimtax/taxplanner/internal/calculation"
	"github.com/zimtax/taxplanner/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_scenarios <config-file>")
		return
	}
	f := os.Args[1]
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(f)
	if err != nil {
		panic(err)
	}
	engine := calc.NewCalculationEngine(cfg.Rules)
	res, err := engine.RunScenarios(context.Background(), cfg)
	if err != nil {
		panic(err)
	}
	if len(res.Scenarios) < 1 {
		fmt.Println("no scenarios")
		return
	}

	// Find the minimum projection length across scenarios
	minLen := -1
	for _, s := range res.Scenarios {
		if minLen == -1 || len(s.Periods) < minLen {
			minLen = len(s.Periods)
		}
	}
	if minLen <= 0 {
		fmt.Println("no projection data")
		return
	}

	header := "Index,Period,Year"
	for i := range res.Scenarios {
		header += fmt.Sprintf(",S%d_Profit,S%d_Allowances,S%d_Taxable,S%d_Tax,S%d_LossesCF", i+1, i+1, i+1, i+1, i+1)
	}
	fmt.Println(header)

	for idx := 0; idx < minLen; idx++ {
		first := res.Scenarios[0].Periods[idx]
		row := fmt.Sprintf("%d,%s,%d", idx, first.Label, first.Year)
		for sidx := range res.Scenarios {
			p := res.Scenarios[sidx].Periods[idx]
			r := p.Result
			row += fmt.Sprintf(",%s,%s,%s,%s,%s", p.AccountingProfit.StringFixed(2), r.CapitalAllowances.StringFixed(2), r.TaxableIncome.StringFixed(2), r.TotalTax.StringFixed(2), r.LossesCarriedForward.StringFixed(2))
		}
		fmt.Println(row)
	}

	// Cumulative tax of every scenario against the first
	if len(res.Scenarios) >= 2 {
		a := res.Scenarios[0].Periods
		for sidx := 1; sidx < len(res.Scenarios); sidx++ {
			b := res.Scenarios[sidx].Periods
			cumA := decimal.Zero
			cumB := decimal.Zero
			for i := 0; i < len(a) && i < len(b); i++ {
				cumA = cumA.Add(a[i].Result.TotalTax)
				cumB = cumB.Add(b[i].Result.TotalTax)
				fmt.Printf("S1 vs S%d %s: cumA=%s cumB=%s diff=%s\n", sidx+1, a[i].Label, cumA.StringFixed(2), cumB.StringFixed(2), cumA.Sub(cumB).StringFixed(2))
			}
		}
	}
	fmt.Printf("\nComparison: %+v\n", res.Comparison)
}
