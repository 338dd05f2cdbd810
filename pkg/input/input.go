// Package input converts raw user-entered loan values into engine parameters.
package input

import (
	"fmt"
	"strconv"
	"strings"

	"mortgage-calc/pkg/amortization"
	"mortgage-calc/pkg/constants"
)

// ParseLoan converts raw form values into validated loan parameters. The rate
// is entered as a percentage, so "6.09" means 6.09% per year. An empty extra
// payment means zero. No schedule is ever computed from values that fail here.
func ParseLoan(principal, rate, term, extra string) (amortization.Parameters, error) {
	var params amortization.Parameters

	principalValue, err := parseNumber("loan amount", principal)
	if err != nil {
		return params, err
	}

	rateValue, err := parseNumber("interest rate", rate)
	if err != nil {
		return params, err
	}

	termValue, err := strconv.Atoi(strings.TrimSpace(term))
	if err != nil {
		return params, fmt.Errorf("loan term must be a whole number of years, got %q", term)
	}

	extraValue := 0.0
	if strings.TrimSpace(extra) != "" {
		extraValue, err = parseNumber("extra monthly payment", extra)
		if err != nil {
			return params, err
		}
	}

	params = amortization.Parameters{
		Principal:           principalValue,
		AnnualInterestRate:  rateValue / constants.PercentageMultiplier,
		TermYears:           termValue,
		ExtraMonthlyPayment: extraValue,
	}

	if err := amortization.Validate(params); err != nil {
		return amortization.Parameters{}, err
	}

	return params, nil
}

func parseNumber(name, raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, raw)
	}
	return value, nil
}
