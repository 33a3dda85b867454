package main

import "github.com/prismfinance/engine/canvas"

// model bundles a graph-construction function with the node names
// worth printing afterward.
type model struct {
	build  func(c *canvas.Canvas) (map[string]*canvas.Var, error)
	report []string
}

var models = map[string]model{
	"circular-fee": {
		build:  buildCircularFee,
		report: []string{"TotalFunds", "FinancingFee"},
	},
	"cash-flow-sweep": {
		build:  buildCashFlowSweep,
		report: []string{"NI", "Interest", "EndDebt"},
	},
	"lbo": {
		build:  buildLBO,
		report: []string{"Revenue", "EBITDA", "NetIncome", "FreeCashFlow", "TermLoanBalance", "ShareholdersEquity", "Cash"},
	},
}

// buildCircularFee is prismfinance/engine's rendition of the
// project-finance circular fee: R = C + F, F = R*r, grounded directly
// on original_source/examples/4_circular_dependency_solver.py.
func buildCircularFee(c *canvas.Canvas) (map[string]*canvas.Var, error) {
	projectCost, err := c.AddVar([]float64{1000}, "ProjectCost")
	if err != nil {
		return nil, err
	}
	feeRate, err := c.AddVar([]float64{0.02}, "FeeRate")
	if err != nil {
		return nil, err
	}

	totalFunds := c.SolverVar("TotalFunds")
	financingFee := c.SolverVar("FinancingFee")

	rhs1, err := projectCost.Add(financingFee)
	if err != nil {
		return nil, err
	}
	if err := totalFunds.MustEqual(rhs1); err != nil {
		return nil, err
	}

	rhs2, err := totalFunds.Mul(feeRate)
	if err != nil {
		return nil, err
	}
	if err := financingFee.MustEqual(rhs2); err != nil {
		return nil, err
	}

	return map[string]*canvas.Var{
		"TotalFunds":   totalFunds,
		"FinancingFee": financingFee,
	}, nil
}

// buildCashFlowSweep is a single-period debt-sweep model: interest
// depends on the average of beginning and ending debt, which itself
// depends on net income, which depends on interest.
func buildCashFlowSweep(c *canvas.Canvas) (map[string]*canvas.Var, error) {
	ebitda, err := c.AddVar([]float64{100 * 1.05}, "EBITDA")
	if err != nil {
		return nil, err
	}
	begDebt, err := c.AddVar([]float64{500}, "BegDebt")
	if err != nil {
		return nil, err
	}
	rate, err := c.AddVar([]float64{0.06}, "Rate")
	if err != nil {
		return nil, err
	}
	tax, err := c.AddVar([]float64{0.30}, "Tax")
	if err != nil {
		return nil, err
	}
	one, err := c.AddVar([]float64{1}, "One")
	if err != nil {
		return nil, err
	}
	half, err := c.AddVar([]float64{0.5}, "Half")
	if err != nil {
		return nil, err
	}

	ni := c.SolverVar("NI")
	interest := c.SolverVar("Interest")

	oneMinusTax, err := one.Sub(tax)
	if err != nil {
		return nil, err
	}
	ebitdaLessInterest, err := ebitda.Sub(interest)
	if err != nil {
		return nil, err
	}
	niRHS, err := ebitdaLessInterest.Mul(oneMinusTax)
	if err != nil {
		return nil, err
	}
	if err := ni.MustEqual(niRHS); err != nil {
		return nil, err
	}

	halfNI, err := half.Mul(ni)
	if err != nil {
		return nil, err
	}
	avgDebt, err := begDebt.Sub(halfNI)
	if err != nil {
		return nil, err
	}
	interestRHS, err := avgDebt.Mul(rate)
	if err != nil {
		return nil, err
	}
	if err := interest.MustEqual(interestRHS); err != nil {
		return nil, err
	}

	endDebt, err := begDebt.Sub(ni)
	if err != nil {
		return nil, err
	}

	return map[string]*canvas.Var{
		"EBITDA":   ebitda,
		"BegDebt":  begDebt,
		"NI":       ni,
		"Interest": interest,
		"EndDebt":  endDebt,
	}, nil
}
