// Package config defines conversion utilities for configuration objects.
package config

import (
	"fmt"

	"mortgage-calc/pkg/amortization"
	"mortgage-calc/pkg/constants"
)

// ToParameters converts a config Loan into engine parameters. The configured
// rate is a percentage; the engine takes the fractional annual rate.
func (loan *Loan) ToParameters() amortization.Parameters {
	return amortization.Parameters{
		Principal:           loan.Principal,
		AnnualInterestRate:  loan.InterestRate / constants.PercentageMultiplier,
		TermYears:           loan.TermYears,
		ExtraMonthlyPayment: loan.ExtraMonthlyPayment,
	}
}

// DisplayName returns the configured loan name or a positional fallback for
// unnamed loans. The position is 1-based.
func (loan *Loan) DisplayName(position int) string {
	if loan.Name != "" {
		return loan.Name
	}
	return fmt.Sprintf("loan %d", position)
}
