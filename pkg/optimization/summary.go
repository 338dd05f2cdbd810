// Package optimization provides shared data structures for optimization results.
package optimization

// FieldExtraPayment identifies the loan parameter an optimization adjusts.
const FieldExtraPayment = "extraMonthlyPayment"

// Summary captures the result of a single optimization run.
type Summary struct {
	TargetName   string  `json:"targetName"`
	Field        string  `json:"field"`
	TargetYears  int     `json:"targetYears"`
	Value        float64 `json:"value"`
	PayoffMonths int     `json:"payoffMonths"`
	TotalPaid    float64 `json:"totalPaid"`
	Iterations   int     `json:"iterations"`
	Converged    bool    `json:"converged"`
}
