// Package calculator runs the amortization engine over the loans defined in a
// configuration and pairs each schedule with its presentation metadata.
package calculator

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mortgage-calc/internal/config"
	"mortgage-calc/pkg/amortization"
	"mortgage-calc/pkg/datetime"
)

// Result holds the computed schedule for a single loan.
type Result struct {
	Name       string
	Schedule   *amortization.Schedule
	PayoffDate string
}

// Run computes amortization schedules for all loans in the configuration.
// Loans are independent so they are scheduled concurrently; results keep the
// configuration order regardless of completion order.
func Run(logger *zap.Logger, conf config.Configuration) ([]Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]Result, len(conf.Loans))
	var group errgroup.Group
	for i, loan := range conf.Loans {
		group.Go(func() error {
			name := loan.DisplayName(i + 1)
			generator := amortization.NewScheduleGenerator(logger)
			schedule, err := generator.GenerateSchedule(loan.ToParameters())
			if err != nil {
				return fmt.Errorf("loan %s: %w", name, err)
			}
			logger.Debug(fmt.Sprintf("loan %s amortizes in %d months", name, schedule.PayoffMonths),
				zap.String("op", "calculator.Run"),
			)
			results[i] = Result{
				Name:       name,
				Schedule:   schedule,
				PayoffDate: PayoffDate(loan.StartDate, schedule.PayoffMonths),
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Single computes the schedule for one loan given directly, outside of any
// configuration file.
func Single(logger *zap.Logger, name string, params amortization.Parameters) (Result, error) {
	generator := amortization.NewScheduleGenerator(logger)
	schedule, err := generator.GenerateSchedule(params)
	if err != nil {
		return Result{}, fmt.Errorf("loan %s: %w", name, err)
	}
	return Result{Name: name, Schedule: schedule}, nil
}

// PayoffDate projects the calendar month of the final payment. It returns an
// empty string when the loan has no start date or the date cannot be parsed;
// the payoff date is cosmetic and must not fail the calculation.
func PayoffDate(startDate string, payoffMonths int) string {
	if startDate == "" {
		return ""
	}
	date, err := datetime.OffsetDate(startDate, config.DateTimeLayout, payoffMonths-1)
	if err != nil {
		return ""
	}
	return date
}
