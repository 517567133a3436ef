package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/forecast"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/model"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/scenario"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/utils"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/variance"
)

// The forecast CLI runs the engine against hand-authored model files: handy
// for inspecting a model outside the dashboard and for piping CSV into a
// spreadsheet. Model, deltas and actuals files may be JSON or Hjson.
func main() {
	godotenv.Load()

	modelPath := flag.String("model", "", "path to the assumption set file (JSON or Hjson)")
	deltasPath := flag.String("deltas", "", "optional scenario deltas file")
	actualsPath := flag.String("actuals", "", "optional recorded actuals file")
	mode := flag.String("mode", "period", "comparison mode: period, cumulative or projected")
	asCSV := flag.Bool("csv", false, "emit CSV instead of a table")
	flag.Parse()

	if *modelPath == "" {
		log.Fatal("Error: -model is required")
	}

	var m model.AssumptionSet
	if err := utils.LoadFile(*modelPath, &m); err != nil {
		log.Fatalf("Error: %v", err)
	}

	if *deltasPath != "" {
		var deltas scenario.ParameterDeltas
		if err := utils.LoadFile(*deltasPath, &deltas); err != nil {
			log.Fatalf("Error: %v", err)
		}
		adjusted, err := scenario.Apply(&m, &deltas)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		m = *adjusted
	}

	records, err := forecast.Generate(&m)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if *actualsPath != "" {
		var actuals []model.ActualsEntry
		if err := utils.LoadFile(*actualsPath, &actuals); err != nil {
			log.Fatalf("Error: %v", err)
		}
		result, err := variance.Analyze(records, actuals, variance.ComparisonMode(*mode))
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		printAnalysis(result, *asCSV)
		return
	}

	printForecast(records, *asCSV)
}

func printForecast(records []forecast.PeriodRecord, asCSV bool) {
	if asCSV {
		cw := csv.NewWriter(os.Stdout)
		cw.Write([]string{"period", "revenue", "cost", "profit", "cumulative_profit"})
		for _, r := range records {
			cw.Write([]string{
				strconv.Itoa(r.Period), f2(r.Revenue), f2(r.Cost), f2(r.Profit), f2(r.CumulativeProfit),
			})
		}
		cw.Flush()
		return
	}

	fmt.Printf("%-8s %12s %12s %12s %14s\n", "period", "revenue", "cost", "profit", "cum. profit")
	for _, r := range records {
		fmt.Printf("%-8d %12.2f %12.2f %12.2f %14.2f\n",
			r.Period, r.Revenue, r.Cost, r.Profit, r.CumulativeProfit)
	}
}

func printAnalysis(result *variance.Result, asCSV bool) {
	s := result.Summary
	if asCSV {
		cw := csv.NewWriter(os.Stdout)
		cw.Write([]string{"period", "forecast_revenue", "actual_revenue", "forecast_profit", "actual_profit", "revised_profit"})
		for _, tp := range result.Trend {
			actualRev, actualProfit := "", ""
			if tp.ActualRevenue != nil {
				actualRev = f2(*tp.ActualRevenue)
			}
			if tp.ActualProfit != nil {
				actualProfit = f2(*tp.ActualProfit)
			}
			cw.Write([]string{
				strconv.Itoa(tp.Period), f2(tp.ForecastRevenue), actualRev,
				f2(tp.ForecastProfit), actualProfit, f2(tp.RevisedProfit),
			})
		}
		cw.Flush()
		return
	}

	fmt.Printf("Comparison mode: %s (actuals for %d periods, latest period %d)\n\n",
		s.Mode, s.PeriodsWithActuals, s.LatestActualPeriod)
	printVariance("Revenue", s.ActualRevenue, s.RevenueVariance)
	printVariance("Cost", s.ActualCost, s.CostVariance)
	printVariance("Profit", s.ActualProfit, s.ProfitVariance)
	fmt.Printf("\nRevised outlook: revenue %.2f, cost %.2f, profit %.2f (margin %.1f%%)\n",
		s.RevisedRevenue, s.RevisedCost, s.RevisedProfit, s.RevisedMargin)
}

func printVariance(label string, actual float64, v variance.Variance) {
	tag := "favorable"
	if !v.Favorable {
		tag = "unfavorable"
	}
	fmt.Printf("%-8s actual %12.2f   variance %+12.2f (%+.2f%%, %s)\n",
		label, actual, v.Amount, v.Percent, tag)
}

func f2(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
