package forecast

import (
	"errors"
	"math"
	"testing"

	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/model"
)

func flatBaseline() *model.AssumptionSet {
	return &model.AssumptionSet{
		Name:            "flat",
		DurationPeriods: 12,
		RevenueStreams: []model.RevenueAssumption{
			{Name: "Bar", Value: 1000, Kind: model.KindFixed},
		},
		Costs: []model.CostAssumption{
			{Name: "Rent", Value: 600, Kind: model.KindFixed, Category: model.CategoryOperations},
		},
		Growth: &model.GrowthSpec{Kind: model.GrowthLinear, Rate: 0},
	}
}

func TestGenerateFlatBaseline(t *testing.T) {
	records, err := Generate(flatBaseline())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 12 {
		t.Fatalf("expected 12 periods, got %d", len(records))
	}

	for _, rec := range records {
		if math.Abs(rec.Profit-400) > 1e-9 {
			t.Errorf("period %d: expected profit 400, got %f", rec.Period, rec.Profit)
		}
	}
	if math.Abs(records[11].CumulativeProfit-4800) > 1e-9 {
		t.Errorf("expected cumulative profit 4800, got %f", records[11].CumulativeProfit)
	}
}

func TestGenerateAccountingIdentities(t *testing.T) {
	a := flatBaseline()
	a.Growth = &model.GrowthSpec{Kind: model.GrowthExponential, Rate: 0.07}
	a.Costs = append(a.Costs, model.CostAssumption{
		Name: "COGS", Value: 20, Kind: model.KindVariable, Category: model.CategoryOther,
	})

	records, err := Generate(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prevCum := 0.0
	for _, rec := range records {
		if math.Abs(rec.Profit-(rec.Revenue-rec.Cost)) > 1e-9 {
			t.Errorf("period %d: profit %f != revenue %f - cost %f", rec.Period, rec.Profit, rec.Revenue, rec.Cost)
		}
		if math.Abs(rec.CumulativeProfit-(prevCum+rec.Profit)) > 1e-9 {
			t.Errorf("period %d: cumulative %f != %f + %f", rec.Period, rec.CumulativeProfit, prevCum, rec.Profit)
		}
		prevCum = rec.CumulativeProfit

		sum := 0.0
		for _, v := range rec.CostByCategory {
			sum += v
		}
		if math.Abs(sum-rec.Cost) > 1e-9 {
			t.Errorf("period %d: cost breakdown sum %f != total %f", rec.Period, sum, rec.Cost)
		}
	}
}

func TestGenerateEventDriven(t *testing.T) {
	a := &model.AssumptionSet{
		Event: &model.EventMetadata{
			WeeksDuration:     6,
			InitialAttendance: 200,
			PerCustomer: model.SpendRates{
				Ticket: 25,
				FB:     15,
				Merch:  5,
			},
			Growth: model.EventGrowth{AttendanceGrowthPercent: 10},
		},
		Growth: &model.GrowthSpec{Kind: model.GrowthExponential},
	}

	records, err := Generate(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("expected duration from event metadata (6), got %d", len(records))
	}

	// Period 0: unscaled attendance, revenue = 200 * (25+15+5).
	if records[0].Attendance != 200 {
		t.Errorf("expected attendance 200 at period 0, got %f", records[0].Attendance)
	}
	if math.Abs(records[0].Revenue-9000) > 1e-9 {
		t.Errorf("expected revenue 9000 at period 0, got %f", records[0].Revenue)
	}

	// Period 2: attendance compounds at 10%, spend rates stay flat.
	expAtt := 200 * math.Pow(1.10, 2)
	if math.Abs(records[2].Attendance-expAtt) > 1e-9 {
		t.Errorf("expected attendance %f at period 2, got %f", expAtt, records[2].Attendance)
	}
	if math.Abs(records[2].Revenue-expAtt*45) > 1e-9 {
		t.Errorf("expected revenue %f at period 2, got %f", expAtt*45, records[2].Revenue)
	}
}

func TestGenerateSpendGrowthOverrides(t *testing.T) {
	a := &model.AssumptionSet{
		Event: &model.EventMetadata{
			WeeksDuration:     4,
			InitialAttendance: 100,
			PerCustomer:       model.SpendRates{Ticket: 20, FB: 10},
			Growth: model.EventGrowth{
				AttendanceGrowthPercent: 0,
				UseCustomerSpendGrowth:  true,
				SpendGrowthPercents:     map[string]float64{model.StreamFB: 10},
			},
		},
		Growth: &model.GrowthSpec{Kind: model.GrowthExponential},
	}

	records, err := Generate(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// F&B rate compounds, ticket (no override) stays flat.
	fb := records[3].RevenueByStream[model.StreamFB]
	expectedFB := 100 * 10 * math.Pow(1.10, 3)
	if math.Abs(fb-expectedFB) > 1e-9 {
		t.Errorf("expected F&B revenue %f, got %f", expectedFB, fb)
	}
	ticket := records[3].RevenueByStream[model.StreamTicket]
	if math.Abs(ticket-2000) > 1e-9 {
		t.Errorf("expected flat ticket revenue 2000, got %f", ticket)
	}
}

func TestGenerateDefaultsDurationToOne(t *testing.T) {
	records, err := Generate(&model.AssumptionSet{
		RevenueStreams: []model.RevenueAssumption{{Name: "Bar", Value: 100, Kind: model.KindFixed}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 period for unspecified duration, got %d", len(records))
	}
}

func TestGenerateNegativeDurationFails(t *testing.T) {
	_, err := Generate(&model.AssumptionSet{DurationPeriods: -3})
	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestGenerateSeasonalWithoutFactorsFails(t *testing.T) {
	_, err := Generate(&model.AssumptionSet{
		DurationPeriods: 4,
		Growth:          &model.GrowthSpec{Kind: model.GrowthSeasonal},
	})
	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestGenerateMissingGrowthFailsOpen(t *testing.T) {
	records, err := Generate(&model.AssumptionSet{
		DurationPeriods: 3,
		RevenueStreams:  []model.RevenueAssumption{{Name: "Bar", Value: 500, Kind: model.KindFixed}},
	})
	if err != nil {
		t.Fatalf("expected fail-open on missing growth model, got %v", err)
	}
	for _, rec := range records {
		if math.Abs(rec.Revenue-500) > 1e-9 {
			t.Errorf("period %d: expected unscaled revenue 500, got %f", rec.Period, rec.Revenue)
		}
	}
}
