package integration

import (
	"math"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"mortgage-calc/internal/calculator"
	"mortgage-calc/internal/config"
	"mortgage-calc/pkg/output"
	"mortgage-calc/pkg/testutil"
)

// loadFixture loads the shared test configuration.
func loadFixture(t *testing.T) *config.Configuration {
	t.Helper()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	return conf
}

// TestPipelineBaseline runs the full pipeline against the test configuration
// and checks the results against known amortization values.
func TestPipelineBaseline(t *testing.T) {
	// Create a no-op logger to avoid debug output during testing
	logger := zap.NewNop()

	conf := loadFixture(t)

	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("ValidateConfiguration() = %v, expected no warnings", warnings)
	}

	results, err := calculator.Run(logger, *conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 loans, got %d", len(results))
	}

	expectedLoans := []string{"baseline", "accelerated"}
	for i, expected := range expectedLoans {
		if results[i].Name != expected {
			t.Errorf("Expected loan %s at position %d, got %s", expected, i, results[i].Name)
		}
	}

	validateBaselineValues(t, results)
}

// validateBaselineValues checks specific key values against the amortization
// formula for a $500,000 loan at 6.09% over 30 years.
func validateBaselineValues(t *testing.T, results []calculator.Result) {
	baselineChecks := []struct {
		loan          string
		payoffMonths  int
		payoffDate    string
		durationYears int
	}{
		{"baseline", 360, "2055-12", 30},
		{"accelerated", 252, "2046-12", 21},
	}

	for _, check := range baselineChecks {
		result := testutil.FindResult(results, check.loan)
		if result == nil {
			t.Errorf("Loan '%s' not found in results", check.loan)
			continue
		}

		if result.Schedule.PayoffMonths != check.payoffMonths {
			t.Errorf("Loan '%s': PayoffMonths = %d, expected %d",
				check.loan, result.Schedule.PayoffMonths, check.payoffMonths)
		}
		if result.PayoffDate != check.payoffDate {
			t.Errorf("Loan '%s': PayoffDate = %s, expected %s",
				check.loan, result.PayoffDate, check.payoffDate)
		}
		if result.Schedule.PayoffDurationYears() != check.durationYears {
			t.Errorf("Loan '%s': PayoffDurationYears() = %d, expected %d",
				check.loan, result.Schedule.PayoffDurationYears(), check.durationYears)
		}
	}

	baseline := testutil.FindResult(results, "baseline")
	accelerated := testutil.FindResult(results, "accelerated")
	if baseline == nil || accelerated == nil {
		t.Fatalf("Could not find expected loans in results")
	}

	// Both loans share principal, rate, and term, so the contractual payment
	// is identical; only the payoff differs.
	if baseline.Schedule.FixedMonthlyPayment != accelerated.Schedule.FixedMonthlyPayment {
		t.Errorf("FixedMonthlyPayment differs between identical loans: %.2f vs %.2f",
			baseline.Schedule.FixedMonthlyPayment, accelerated.Schedule.FixedMonthlyPayment)
	}
	if payment := baseline.Schedule.FixedMonthlyPayment; payment < 3026.5 || payment > 3027.0 {
		t.Errorf("FixedMonthlyPayment = %.2f, expected range [3026.5, 3027.0]", payment)
	}

	saved := baseline.Schedule.TotalPaid - accelerated.Schedule.TotalPaid
	if saved < 190000 {
		t.Errorf("Extra payments saved %.2f, expected at least 190000", saved)
	}
}

// TestOutputFormats verifies that each output format renders the pipeline
// results without crashing and includes the expected content.
func TestOutputFormats(t *testing.T) {
	logger := zap.NewNop()
	conf := loadFixture(t)

	results, err := calculator.Run(logger, *conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	pretty := output.PrettyString(results, conf.CurrencySymbol())
	if !strings.Contains(pretty, "--- Amortization for loan baseline ---") ||
		!strings.Contains(pretty, "--- Amortization for loan accelerated ---") {
		t.Errorf("PrettyString missing loan headers:\n%s", pretty)
	}
	if !strings.Contains(pretty, "Payoff:                21 years (252 months)") {
		t.Errorf("PrettyString missing accelerated payoff line:\n%s", pretty)
	}

	csv := output.CsvString(results)
	if !strings.Contains(csv, `"loan","year","months","interest","principal"`) {
		t.Errorf("CsvString missing header: %s", csv)
	}
	if lines := strings.Count(strings.TrimSpace(csv), "\n"); lines != 30+21 {
		t.Errorf("CsvString has %d data lines, expected 51", lines)
	}

	yaml, err := output.YamlString(results)
	if err != nil {
		t.Fatalf("YamlString() error = %v", err)
	}
	if !strings.Contains(yaml, "loan: baseline") || !strings.Contains(yaml, "payoffMonths: 252") {
		t.Errorf("YamlString missing expected fields:\n%s", yaml)
	}

	// The print variants write to stdout; send that to /dev/null.
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("could not open %s: %v", os.DevNull, err)
	}
	oldStdout := os.Stdout
	os.Stdout = devNull
	defer func() {
		os.Stdout = oldStdout
		devNull.Close()
	}()

	output.PrettyFormat(results, conf.CurrencySymbol())
	output.CsvFormat(results)
	if err := output.YamlFormat(results); err != nil {
		t.Errorf("YamlFormat() error = %v", err)
	}
}

// TestConfigurationWarnings exercises the validation warnings for common
// configuration mistakes.
func TestConfigurationWarnings(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*config.Configuration)
		wantWarning  string
	}{
		{
			name: "Fractional interest rate",
			modifyConfig: func(conf *config.Configuration) {
				conf.Loans[0].InterestRate = 0.0609
			},
			wantWarning: "rates are percentages",
		},
		{
			name: "Duplicate loan names",
			modifyConfig: func(conf *config.Configuration) {
				conf.Loans[1].Name = conf.Loans[0].Name
			},
			wantWarning: "defined more than once",
		},
		{
			name: "Unparseable start date",
			modifyConfig: func(conf *config.Configuration) {
				conf.Loans[0].StartDate = "January 2026"
			},
			wantWarning: "unparseable start date",
		},
		{
			name: "Extra payment above principal",
			modifyConfig: func(conf *config.Configuration) {
				conf.Loans[0].ExtraMonthlyPayment = conf.Loans[0].Principal + 1
			},
			wantWarning: "paid off in the first month",
		},
		{
			name: "No loans",
			modifyConfig: func(conf *config.Configuration) {
				conf.Loans = nil
			},
			wantWarning: "no loans",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := loadFixture(t)
			tt.modifyConfig(conf)

			warnings := conf.ValidateConfiguration()
			found := false
			for _, warning := range warnings {
				if strings.Contains(warning, tt.wantWarning) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("ValidateConfiguration() = %v, expected a warning containing %q",
					warnings, tt.wantWarning)
			}
		})
	}
}

// TestDataConsistency verifies that multiple runs produce identical results.
func TestDataConsistency(t *testing.T) {
	logger := zap.NewNop()
	conf := loadFixture(t)

	var firstRun []calculator.Result
	for run := 0; run < 3; run++ {
		results, err := calculator.Run(logger, *conf)
		if err != nil {
			t.Fatalf("Run() %d error = %v", run, err)
		}

		if run == 0 {
			firstRun = results
			continue
		}

		for i, result := range results {
			if result.Schedule.PayoffMonths != firstRun[i].Schedule.PayoffMonths {
				t.Errorf("Run %d loan %s: PayoffMonths = %d, first run had %d",
					run, result.Name, result.Schedule.PayoffMonths, firstRun[i].Schedule.PayoffMonths)
			}
			if math.Abs(result.Schedule.TotalPaid-firstRun[i].Schedule.TotalPaid) > 0.01 {
				t.Errorf("Run %d loan %s: TotalPaid = %.2f, first run had %.2f",
					run, result.Name, result.Schedule.TotalPaid, firstRun[i].Schedule.TotalPaid)
			}
		}
	}
}

// TestConfigurationVariations checks that edits to the configuration flow
// through to the results.
func TestConfigurationVariations(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*config.Configuration)
		validate     func(*testing.T, []calculator.Result)
	}{
		{
			name:         "Unmodified configuration",
			modifyConfig: func(conf *config.Configuration) {},
			validate: func(t *testing.T, results []calculator.Result) {
				if len(results) != 2 {
					t.Errorf("Expected 2 results, got %d", len(results))
				}
			},
		},
		{
			name: "Single loan",
			modifyConfig: func(conf *config.Configuration) {
				conf.Loans = conf.Loans[:1]
			},
			validate: func(t *testing.T, results []calculator.Result) {
				if len(results) != 1 {
					t.Fatalf("Expected 1 result, got %d", len(results))
				}
				if results[0].Name != "baseline" {
					t.Errorf("Expected baseline, got %s", results[0].Name)
				}
			},
		},
		{
			name: "Doubled extra payment",
			modifyConfig: func(conf *config.Configuration) {
				conf.Loans[1].ExtraMonthlyPayment = 1000
			},
			validate: func(t *testing.T, results []calculator.Result) {
				accelerated := testutil.FindResult(results, "accelerated")
				if accelerated == nil {
					t.Fatalf("accelerated loan not found")
				}
				if accelerated.Schedule.PayoffMonths >= 252 {
					t.Errorf("PayoffMonths = %d, expected fewer than 252 with a larger extra payment",
						accelerated.Schedule.PayoffMonths)
				}
			},
		},
		{
			name: "Shorter term",
			modifyConfig: func(conf *config.Configuration) {
				conf.Loans[0].TermYears = 15
			},
			validate: func(t *testing.T, results []calculator.Result) {
				baseline := testutil.FindResult(results, "baseline")
				if baseline == nil {
					t.Fatalf("baseline loan not found")
				}
				if baseline.Schedule.PayoffMonths != 180 {
					t.Errorf("PayoffMonths = %d, expected 180 for a 15 year term",
						baseline.Schedule.PayoffMonths)
				}
			},
		},
	}

	logger := zap.NewNop()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := loadFixture(t)
			tt.modifyConfig(conf)

			results, err := calculator.Run(logger, *conf)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			tt.validate(t, results)
		})
	}
}
