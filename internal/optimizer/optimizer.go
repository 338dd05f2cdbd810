// Package optimizer searches for the smallest extra monthly payment that
// retires a loan within a target number of years.
package optimizer

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"mortgage-calc/pkg/amortization"
	"mortgage-calc/pkg/constants"
	"mortgage-calc/pkg/mathutil"
	"mortgage-calc/pkg/optimization"
)

// maxIterations bounds the bisection search. The search space is at most the
// loan principal wide and halves every pass, so convergence to the cent takes
// well under this many iterations for any plausible loan.
const maxIterations = 50

type Runner struct {
	logger    *zap.Logger
	generator *amortization.ScheduleGenerator
}

// NewRunner constructs a Runner that shares one schedule generator across
// evaluations.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		logger:    logger,
		generator: amortization.NewScheduleGenerator(logger),
	}
}

// Solve finds the smallest extra monthly payment under which the loan pays off
// in at most targetYears years. Any extra payment already present on the
// parameters is ignored; the search starts from the loan's contractual terms.
// The returned schedule is the one produced by the optimized payment.
func (r *Runner) Solve(name string, params amortization.Parameters, targetYears int) (optimization.Summary, *amortization.Schedule, error) {
	if targetYears < 1 {
		return optimization.Summary{}, nil, fmt.Errorf("loan %s: target payoff must be at least 1 year, got %d", name, targetYears)
	}

	base := params
	base.ExtraMonthlyPayment = 0.0
	baseline, err := r.generator.GenerateSchedule(base)
	if err != nil {
		return optimization.Summary{}, nil, fmt.Errorf("loan %s: %w", name, err)
	}

	summary := optimization.Summary{
		TargetName:  name,
		Field:       optimization.FieldExtraPayment,
		TargetYears: targetYears,
	}

	if baseline.PayoffDurationYears() <= targetYears {
		summary.Value = 0.0
		summary.PayoffMonths = baseline.PayoffMonths
		summary.TotalPaid = baseline.TotalPaid
		summary.Converged = true
		r.logger.Debug(fmt.Sprintf("loan %s already pays off within %d years", name, targetYears),
			zap.String("op", "optimizer.Solve"),
		)
		return summary, baseline, nil
	}

	// An extra payment equal to the principal clears the balance on the first
	// month, so the upper bound is always feasible and bisection cannot fail.
	lower := 0.0
	upper := base.Principal
	best := baseline
	iterations := 0
	for iterations < maxIterations && !mathutil.WithinTolerance(lower, upper, constants.CurrencyTolerance) {
		mid := lower + (upper-lower)/2
		trial := base
		trial.ExtraMonthlyPayment = mid
		schedule, err := r.generator.GenerateSchedule(trial)
		if err != nil {
			return optimization.Summary{}, nil, fmt.Errorf("loan %s: %w", name, err)
		}
		iterations++
		if schedule.PayoffDurationYears() <= targetYears {
			upper = mid
			best = schedule
		} else {
			lower = mid
		}
	}

	// Round the payment up to the cent so the published value stays feasible.
	value := math.Ceil(upper*constants.DecimalPrecision) / constants.DecimalPrecision
	if value != upper {
		trial := base
		trial.ExtraMonthlyPayment = value
		schedule, err := r.generator.GenerateSchedule(trial)
		if err != nil {
			return optimization.Summary{}, nil, fmt.Errorf("loan %s: %w", name, err)
		}
		best = schedule
	}

	summary.Value = value
	summary.PayoffMonths = best.PayoffMonths
	summary.TotalPaid = best.TotalPaid
	summary.Iterations = iterations
	summary.Converged = mathutil.WithinTolerance(lower, upper, constants.CurrencyTolerance)

	r.logger.Info("optimizer adjusted extra monthly payment",
		zap.String("loan", name),
		zap.String("field", summary.Field),
		zap.Int("targetYears", targetYears),
		zap.Float64("value", summary.Value),
		zap.Int("payoffMonths", summary.PayoffMonths),
		zap.Float64("totalPaid", summary.TotalPaid),
		zap.Int("iterations", summary.Iterations),
		zap.Bool("converged", summary.Converged),
	)

	return summary, best, nil
}
