// Package output provides utilities for formatting and displaying
// amortization results.
package output

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"mortgage-calc/internal/calculator"
	"mortgage-calc/pkg/amortization"
	"mortgage-calc/pkg/format"
	"mortgage-calc/pkg/mathutil"
	"mortgage-calc/pkg/optimization"
)

// chartWidth is the length in characters of a full bar in the yearly chart.
const chartWidth = 40

// PrettyString renders a human-readable report for each loan: a summary
// block, a bar chart of the average monthly interest and principal per year,
// and a table of yearly totals.
func PrettyString(results []calculator.Result, symbol string) string {
	var builder strings.Builder
	for _, result := range results {
		if result.Schedule == nil {
			continue
		}
		schedule := result.Schedule
		fmt.Fprintf(&builder, "--- Amortization for loan %s ---\n", result.Name)
		fmt.Fprintf(&builder, "Fixed monthly payment: %s\n", format.Currency(symbol, schedule.FixedMonthlyPayment))
		fmt.Fprintf(&builder, "Total paid:            %s\n", format.WholeCurrency(symbol, schedule.TotalPaid))
		fmt.Fprintf(&builder, "Payoff:                %d years (%d months)\n",
			schedule.PayoffDurationYears(), schedule.PayoffMonths)
		if result.PayoffDate != "" {
			fmt.Fprintf(&builder, "Payoff date:           %s\n", result.PayoffDate)
		}
		builder.WriteString("\n")
		writeChart(&builder, schedule.Years, symbol)
		builder.WriteString("\n")
		writeYearTable(&builder, schedule.Years, symbol)
		if len(results) > 1 {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(results []calculator.Result, symbol string) {
	fmt.Print(PrettyString(results, symbol))
}

// CsvString renders one row per loan year in comma-separated value format.
func CsvString(results []calculator.Result) string {
	var builder strings.Builder
	builder.WriteString(`"loan","year","months","interest","principal","avg monthly interest","avg monthly principal","ending balance"`)
	builder.WriteString("\n")
	for _, result := range results {
		if result.Schedule == nil {
			continue
		}
		for _, year := range result.Schedule.Years {
			fmt.Fprintf(&builder, `"%s","%d","%d","%.2f","%.2f","%.2f","%.2f","%.2f"`,
				result.Name, year.Year, year.Months,
				year.Interest, year.Principal,
				year.AverageMonthlyInterest, year.AverageMonthlyPrincipal,
				year.EndingBalance,
			)
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []calculator.Result) {
	fmt.Print(CsvString(results))
}

type yamlLoan struct {
	Loan                string     `yaml:"loan"`
	FixedMonthlyPayment float64    `yaml:"fixedMonthlyPayment"`
	TotalPaid           float64    `yaml:"totalPaid"`
	PayoffMonths        int        `yaml:"payoffMonths"`
	PayoffDurationYears int        `yaml:"payoffDurationYears"`
	PayoffDate          string     `yaml:"payoffDate,omitempty"`
	Years               []yamlYear `yaml:"years"`
}

type yamlYear struct {
	Year                    int     `yaml:"year"`
	Months                  int     `yaml:"months"`
	Interest                float64 `yaml:"interest"`
	Principal               float64 `yaml:"principal"`
	AverageMonthlyInterest  float64 `yaml:"averageMonthlyInterest"`
	AverageMonthlyPrincipal float64 `yaml:"averageMonthlyPrincipal"`
	EndingBalance           float64 `yaml:"endingBalance"`
}

// YamlString renders the schedules as a YAML document with all currency
// amounts rounded to cents.
func YamlString(results []calculator.Result) (string, error) {
	export := make([]yamlLoan, 0, len(results))
	for _, result := range results {
		if result.Schedule == nil {
			continue
		}
		schedule := result.Schedule
		loan := yamlLoan{
			Loan:                result.Name,
			FixedMonthlyPayment: mathutil.Round(schedule.FixedMonthlyPayment),
			TotalPaid:           mathutil.Round(schedule.TotalPaid),
			PayoffMonths:        schedule.PayoffMonths,
			PayoffDurationYears: schedule.PayoffDurationYears(),
			PayoffDate:          result.PayoffDate,
		}
		for _, year := range schedule.Years {
			loan.Years = append(loan.Years, yamlYear{
				Year:                    year.Year,
				Months:                  year.Months,
				Interest:                mathutil.Round(year.Interest),
				Principal:               mathutil.Round(year.Principal),
				AverageMonthlyInterest:  mathutil.Round(year.AverageMonthlyInterest),
				AverageMonthlyPrincipal: mathutil.Round(year.AverageMonthlyPrincipal),
				EndingBalance:           mathutil.Round(year.EndingBalance),
			})
		}
		export = append(export, loan)
	}
	marshaled, err := yaml.Marshal(export)
	if err != nil {
		return "", fmt.Errorf("error marshaling yaml output, %s", err)
	}
	return string(marshaled), nil
}

// YamlFormat outputs the schedules as a YAML document.
func YamlFormat(results []calculator.Result) error {
	rendered, err := YamlString(results)
	if err != nil {
		return err
	}
	fmt.Print(rendered)
	return nil
}

// SummaryString renders optimization results as a human-readable block.
func SummaryString(summaries []optimization.Summary, symbol string) string {
	var builder strings.Builder
	for _, summary := range summaries {
		fmt.Fprintf(&builder, "--- Optimization for loan %s ---\n", summary.TargetName)
		fmt.Fprintf(&builder, "Target payoff:         %d years\n", summary.TargetYears)
		fmt.Fprintf(&builder, "Extra monthly payment: %s\n", format.Currency(symbol, summary.Value))
		fmt.Fprintf(&builder, "Payoff:                %d months\n", summary.PayoffMonths)
		fmt.Fprintf(&builder, "Total paid:            %s\n", format.WholeCurrency(symbol, summary.TotalPaid))
		fmt.Fprintf(&builder, "Iterations:            %d\n", summary.Iterations)
		if !summary.Converged {
			builder.WriteString("The search did not converge; treat the payment as approximate\n")
		}
		if len(summaries) > 1 {
			builder.WriteString("\n")
		}
	}
	return builder.String()
}

// SummaryFormat outputs optimization results.
func SummaryFormat(summaries []optimization.Summary, symbol string) {
	fmt.Print(SummaryString(summaries, symbol))
}

// writeChart renders per-year bars for average monthly interest and principal.
// Both series share one scale so the bars are comparable across columns.
func writeChart(builder *strings.Builder, years []amortization.YearSummary, symbol string) {
	max := maxAverage(years)
	cellWidth := chartWidth + 11
	fmt.Fprintf(builder, "%4s | %-*s | %-*s\n", "Year",
		cellWidth, "Average monthly interest",
		cellWidth, "Average monthly principal")
	fmt.Fprintf(builder, "%4s | %-*s | %-*s\n", "____",
		cellWidth, strings.Repeat("_", len("Average monthly interest")),
		cellWidth, strings.Repeat("_", len("Average monthly principal")))
	for _, year := range years {
		fmt.Fprintf(builder, "%4d | %-*s %10s | %-*s %10s\n",
			year.Year,
			chartWidth, chartBar(year.AverageMonthlyInterest, max),
			format.WholeCurrency(symbol, year.AverageMonthlyInterest),
			chartWidth, chartBar(year.AverageMonthlyPrincipal, max),
			format.WholeCurrency(symbol, year.AverageMonthlyPrincipal),
		)
	}
}

func writeYearTable(builder *strings.Builder, years []amortization.YearSummary, symbol string) {
	fmt.Fprintf(builder, "%4s | %14s | %14s | %14s\n", "Year", "Interest paid", "Principal paid", "Ending balance")
	fmt.Fprintf(builder, "%4s | %14s | %14s | %14s\n", "____", "_____________", "______________", "______________")
	for _, year := range years {
		fmt.Fprintf(builder, "%4d | %14s | %14s | %14s\n",
			year.Year,
			format.WholeCurrency(symbol, year.Interest),
			format.WholeCurrency(symbol, year.Principal),
			format.WholeCurrency(symbol, year.EndingBalance),
		)
	}
}

// chartBar scales value against max to a run of '#' characters. Any positive
// value gets at least one mark so small bars stay visible.
func chartBar(value, max float64) string {
	if value <= 0 || max <= 0 {
		return ""
	}
	n := int(value/max*chartWidth + 0.5)
	if n < 1 {
		n = 1
	}
	if n > chartWidth {
		n = chartWidth
	}
	return strings.Repeat("#", n)
}

func maxAverage(years []amortization.YearSummary) float64 {
	max := 0.0
	for _, year := range years {
		if year.AverageMonthlyInterest > max {
			max = year.AverageMonthlyInterest
		}
		if year.AverageMonthlyPrincipal > max {
			max = year.AverageMonthlyPrincipal
		}
	}
	return max
}
