package integration

import (
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"mortgage-calc/internal/calculator"
	"mortgage-calc/internal/config"
	"mortgage-calc/pkg/output"
)

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// TestBasicFunctionality tests that the pipeline runs end to end.
func TestBasicFunctionality(t *testing.T) {
	// Create a no-op logger to avoid debug output during testing
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}

	results, err := calculator.Run(logger, *conf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(results) == 0 {
		t.Fatalf("Expected amortization results but got none")
	}

	t.Logf("Successfully amortized %d loans", len(results))
}

// TestPerformance tests performance characteristics
func TestPerformance(t *testing.T) {
	// Create a no-op logger to avoid debug output during testing
	logger := zap.NewNop()

	start := time.Now()

	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	loadTime := time.Since(start)

	start = time.Now()
	warnings := conf.ValidateConfiguration()
	validateTime := time.Since(start)

	start = time.Now()
	results, err := calculator.Run(logger, *conf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	runTime := time.Since(start)

	start = time.Now()
	_ = output.CsvString(results)
	renderTime := time.Since(start)

	totalTime := loadTime + validateTime + runTime + renderTime

	t.Logf("Performance metrics:")
	t.Logf("  Load config: %v", loadTime)
	t.Logf("  Validate config: %v", validateTime)
	t.Logf("  Amortize loans: %v", runTime)
	t.Logf("  Render output: %v", renderTime)
	t.Logf("  Total time: %v", totalTime)

	// Performance expectations (adjust as needed)
	if totalTime > 10*time.Second {
		t.Errorf("Total processing time %v exceeds 10 second threshold", totalTime)
	}

	if len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}

	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(results))
	}

	// Check that we have a reasonable amount of schedule data
	for i, result := range results {
		if len(result.Schedule.Monthly) < 100 {
			t.Errorf("Loan %d (%s) has only %d monthly entries, expected more",
				i, result.Name, len(result.Schedule.Monthly))
		}
	}
}

// TestMemoryUsage performs basic memory usage validation
func TestMemoryUsage(t *testing.T) {
	// Create a no-op logger to avoid debug output during testing
	logger := zap.NewNop()

	// Run multiple iterations to check for memory leaks
	for i := 0; i < 10; i++ {
		conf, err := config.LoadConfiguration("../test_config.yaml")
		if err != nil {
			t.Fatalf("LoadConfiguration failed on iteration %d: %v", i, err)
		}

		if _, err := calculator.Run(logger, *conf); err != nil {
			t.Fatalf("Run failed on iteration %d: %v", i, err)
		}
	}

	t.Log("Successfully completed 10 iterations without memory issues")
}
