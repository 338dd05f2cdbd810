// Package amortization computes fixed-rate loan amortization schedules.
package amortization

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"mortgage-calc/pkg/constants"
	"mortgage-calc/pkg/mathutil"
)

// Parameters describes a fixed-rate loan to amortize. AnnualInterestRate is
// fractional, e.g. 0.0609 for 6.09%.
type Parameters struct {
	Principal           float64
	AnnualInterestRate  float64
	TermYears           int
	ExtraMonthlyPayment float64
}

// MonthlyPayment holds the values for a given payment.
type MonthlyPayment struct {
	Payment            float64
	Principal          float64
	Interest           float64
	RemainingPrincipal float64
	CumulativeTotal    float64
}

// YearSummary aggregates the payments made during one year of the schedule.
// The final year may cover fewer than twelve months.
type YearSummary struct {
	Year                    int
	Months                  int
	Interest                float64
	Principal               float64
	AverageMonthlyInterest  float64
	AverageMonthlyPrincipal float64
	EndingBalance           float64
}

// Schedule is the complete amortization result for a loan.
type Schedule struct {
	FixedMonthlyPayment float64
	TotalPaid           float64
	PayoffMonths        int
	Monthly             []MonthlyPayment
	Years               []YearSummary
}

// PayoffDurationYears returns the number of calendar years the schedule spans,
// counting a trailing partial year as a full one.
func (s *Schedule) PayoffDurationYears() int {
	return len(s.Years)
}

// Validate checks loan parameters against the engine contract. Values that are
// NaN or infinite are rejected along with out-of-range ones.
func Validate(params Parameters) error {
	if !isFinite(params.Principal) || params.Principal <= 0 {
		return &ParameterError{Field: "principal", Value: params.Principal, Reason: "must be greater than zero"}
	}
	if !isFinite(params.AnnualInterestRate) || params.AnnualInterestRate <= 0 {
		return &ParameterError{Field: "annualInterestRate", Value: params.AnnualInterestRate, Reason: "must be greater than zero"}
	}
	if params.TermYears < constants.MinTermYears || params.TermYears > constants.MaxTermYears {
		return &ParameterError{
			Field:  "termYears",
			Value:  float64(params.TermYears),
			Reason: fmt.Sprintf("must be between %d and %d", constants.MinTermYears, constants.MaxTermYears),
		}
	}
	if !isFinite(params.ExtraMonthlyPayment) || params.ExtraMonthlyPayment < 0 {
		return &ParameterError{Field: "extraMonthlyPayment", Value: params.ExtraMonthlyPayment, Reason: "must not be negative"}
	}
	return nil
}

func isFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// CalculateMonthlyPayment calculates the fixed monthly payment for a loan using
// the standard amortization formula.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termMonths int) float64 {
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := annualInterestRate / constants.MonthsPerYear
	power := math.Pow((1.00 + periodicInterestRate), float64(termMonths))
	discountFactor := (power - 1.00) / power
	return principal * periodicInterestRate / discountFactor
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * annualInterestRate / constants.MonthsPerYear
}

// ScheduleGenerator produces amortization schedules for fixed-rate loans.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// GenerateSchedule creates a complete amortization schedule for the given loan
// parameters. The fixed payment is derived from the principal, rate, and term
// alone; the extra monthly payment goes straight to principal and only shortens
// the payoff.
func (g *ScheduleGenerator) GenerateSchedule(params Parameters) (*Schedule, error) {
	if err := Validate(params); err != nil {
		return nil, err
	}

	termMonths := params.TermYears * constants.MonthsPerYear
	monthlyPayment := CalculateMonthlyPayment(params.Principal, params.AnnualInterestRate, termMonths)

	g.logger.Debug(fmt.Sprintf("fixed monthly payment %.2f for principal %.2f over %d months",
		monthlyPayment, params.Principal, termMonths),
		zap.String("op", "amortization.GenerateSchedule"),
	)

	capMonths := constants.AmortizationCapYears * constants.MonthsPerYear
	remaining := params.Principal
	totalPaid := 0.00
	monthly := make([]MonthlyPayment, 0, termMonths)

	for month := 1; ; month++ {
		if month > capMonths {
			return nil, fmt.Errorf("%w: balance %.2f remains after %d months",
				ErrUnamortizable, remaining, capMonths)
		}

		interest := CalculateInterestPayment(remaining, params.AnnualInterestRate)
		principal := monthlyPayment + params.ExtraMonthlyPayment - interest
		if principal > remaining {
			// The final payment only needs to cover what is left.
			g.logger.Debug(fmt.Sprintf("month %d: clamping final principal payment %.2f to balance %.2f",
				month, principal, remaining),
				zap.String("op", "amortization.GenerateSchedule"),
			)
			principal = remaining
		}

		remaining -= principal
		if mathutil.IsZero(remaining) {
			// We will get machine error otherwise so just set to 0.
			remaining = 0.00
		}

		totalPaid += interest + principal
		monthly = append(monthly, MonthlyPayment{
			Payment:            interest + principal,
			Principal:          principal,
			Interest:           interest,
			RemainingPrincipal: remaining,
			CumulativeTotal:    totalPaid,
		})

		if remaining == 0.00 {
			break
		}
	}

	return &Schedule{
		FixedMonthlyPayment: monthlyPayment,
		TotalPaid:           totalPaid,
		PayoffMonths:        len(monthly),
		Monthly:             monthly,
		Years:               summarizeYears(monthly),
	}, nil
}

// summarizeYears groups consecutive months into year blocks of at most twelve
// and aggregates each block.
func summarizeYears(monthly []MonthlyPayment) []YearSummary {
	years := make([]YearSummary, 0, (len(monthly)+constants.MonthsPerYear-1)/constants.MonthsPerYear)

	for start := 0; start < len(monthly); start += constants.MonthsPerYear {
		end := start + constants.MonthsPerYear
		if end > len(monthly) {
			end = len(monthly)
		}
		block := monthly[start:end]

		summary := YearSummary{
			Year:   len(years) + 1,
			Months: len(block),
		}
		for _, payment := range block {
			summary.Interest += payment.Interest
			summary.Principal += payment.Principal
		}
		summary.AverageMonthlyInterest = summary.Interest / float64(summary.Months)
		summary.AverageMonthlyPrincipal = summary.Principal / float64(summary.Months)
		summary.EndingBalance = block[len(block)-1].RemainingPrincipal

		years = append(years, summary)
	}

	return years
}
