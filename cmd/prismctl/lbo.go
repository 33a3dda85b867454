package main

import "github.com/prismfinance/engine/canvas"

const lboYears = 5

// eqBuilder accumulates the first error from a long run of chained Var
// combinators, the way bufio.Writer accumulates a sticky write error -
// worthwhile here because buildLBO strings together several dozen
// fallible combinator calls where checking each individually would
// bury the model's actual structure.
type eqBuilder struct {
	c   *canvas.Canvas
	err error
}

func (b *eqBuilder) add(x, y *canvas.Var) *canvas.Var { return b.binary(x.Add, y) }
func (b *eqBuilder) sub(x, y *canvas.Var) *canvas.Var { return b.binary(x.Sub, y) }
func (b *eqBuilder) mul(x, y *canvas.Var) *canvas.Var { return b.binary(x.Mul, y) }
func (b *eqBuilder) div(x, y *canvas.Var) *canvas.Var { return b.binary(x.Div, y) }

func (b *eqBuilder) binary(op func(*canvas.Var) (*canvas.Var, error), y *canvas.Var) *canvas.Var {
	if b.err != nil {
		return nil
	}
	v, err := op(y)
	if err != nil {
		b.err = err
		return nil
	}
	return v
}

func (b *eqBuilder) previous(v *canvas.Var, lag int, def *canvas.Var) *canvas.Var {
	if b.err != nil {
		return nil
	}
	out, err := v.Previous(lag, def)
	if err != nil {
		b.err = err
	}
	return out
}

func (b *eqBuilder) mustEqual(lhs, rhs *canvas.Var) {
	if b.err != nil {
		return
	}
	b.err = lhs.MustEqual(rhs)
}

func (b *eqBuilder) vec(values []float64, name string) *canvas.Var {
	if b.err != nil {
		return nil
	}
	v, err := b.c.AddVar(values, name)
	if err != nil {
		b.err = err
	}
	return v
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// buildLBO reproduces a trimmed five-year leveraged-buyout model:
// three linked statements, balance-sheet roll-forwards via Previous,
// and the classic interest/net-income/free-cash-flow/debt circularity
// closed by Solve. Grounded directly on
// original_source/examples/lbo_model.py's build_and_run_lbo_model.
func buildLBO(c *canvas.Canvas) (map[string]*canvas.Var, error) {
	b := &eqBuilder{c: c}
	n := lboYears

	entryEBITDA := b.vec([]float64{100}, "EntryEBITDA")
	entryMultiple := b.vec([]float64{10}, "EntryMultiple")
	exitMultiple := b.vec([]float64{11}, "ExitMultiple")
	purchasePrice := b.mul(entryEBITDA, entryMultiple)
	initialTermLoan := b.vec([]float64{400}, "InitialTermLoan")
	sponsorEquity := b.sub(purchasePrice, initialTermLoan)

	revenueGrowthRate := b.vec([]float64{0.10, 0.09, 0.08, 0.07, 0.06}, "RevenueGrowthRate")
	cogsMargin := b.vec(repeat(0.60, n), "COGSMargin")
	sgaPercentRevenue := b.vec(repeat(0.15, n), "SGAPercentRevenue")
	capexPercentRevenue := b.vec(repeat(0.03, n), "CapexPercentRevenue")
	daPercentRevenue := b.vec(repeat(0.02, n), "DAPercentRevenue")
	nwcPercentRevenue := b.vec(repeat(0.10, n), "NWCPercentRevenue")
	termLoanRate := b.vec(repeat(0.05, n), "TermLoanInterestRate")
	mandatoryAmortization := b.vec(repeat(20.0, n), "MandatoryAmortization")
	taxRate := b.vec(repeat(0.25, n), "TaxRate")
	one := b.vec(repeat(1.0, n), "One")
	two := b.vec(repeat(2.0, n), "Two")

	y0Revenue := b.vec([]float64{500}, "Y0Revenue")
	y0Cash := b.vec([]float64{50}, "Y0Cash")
	y0NWC := b.mul(y0Revenue, nwcPercentRevenue)
	y0PPE := b.vec([]float64{250}, "Y0PPE")

	revenue := c.SolverVar("Revenue")
	cogs := c.SolverVar("COGS")
	grossProfit := c.SolverVar("GrossProfit")
	sga := c.SolverVar("SGA")
	ebitda := c.SolverVar("EBITDA")
	da := c.SolverVar("DA")
	ebit := c.SolverVar("EBIT")
	interestExpense := c.SolverVar("InterestExpense")
	ebt := c.SolverVar("EBT")
	taxes := c.SolverVar("Taxes")
	netIncome := c.SolverVar("NetIncome")

	cfo := c.SolverVar("CFO")
	changeInNWC := c.SolverVar("ChangeInNWC")
	capex := c.SolverVar("Capex")
	freeCashFlow := c.SolverVar("FreeCashFlow")
	cashForRepayment := c.SolverVar("CashForRepayment")
	optionalPrepayment := c.SolverVar("OptionalPrepayment")
	totalDebtRepayment := c.SolverVar("TotalDebtRepayment")
	netChangeInCash := c.SolverVar("NetChangeInCash")

	cash := c.SolverVar("Cash")
	nwc := c.SolverVar("NWC")
	ppe := c.SolverVar("PPE")
	totalAssets := c.SolverVar("TotalAssets")
	termLoanBalance := c.SolverVar("TermLoanBalance")
	shareholdersEquity := c.SolverVar("ShareholdersEquity")
	totalLiabEquity := c.SolverVar("TotalLiabilitiesAndEquity")

	revenuePrev := b.previous(revenue, 1, y0Revenue)
	b.mustEqual(revenue, b.mul(revenuePrev, b.add(one, revenueGrowthRate)))
	b.mustEqual(cogs, b.mul(revenue, cogsMargin))
	b.mustEqual(grossProfit, b.sub(revenue, cogs))
	b.mustEqual(sga, b.mul(revenue, sgaPercentRevenue))
	b.mustEqual(ebitda, b.sub(grossProfit, sga))
	b.mustEqual(da, b.mul(revenue, daPercentRevenue))
	b.mustEqual(ebit, b.sub(ebitda, da))
	b.mustEqual(ebt, b.sub(ebit, interestExpense))
	b.mustEqual(taxes, b.mul(ebt, taxRate))
	b.mustEqual(netIncome, b.sub(ebt, taxes))

	b.mustEqual(nwc, b.mul(revenue, nwcPercentRevenue))
	b.mustEqual(changeInNWC, b.sub(nwc, b.previous(nwc, 1, y0NWC)))
	b.mustEqual(cfo, b.sub(b.add(netIncome, da), changeInNWC))
	b.mustEqual(capex, b.mul(revenue, capexPercentRevenue))
	b.mustEqual(freeCashFlow, b.sub(cfo, capex))

	termLoanBeginningBalance := b.previous(termLoanBalance, 1, initialTermLoan)
	avgTermLoanBalance := b.div(b.add(termLoanBeginningBalance, termLoanBalance), two)
	b.mustEqual(interestExpense, b.mul(avgTermLoanBalance, termLoanRate))
	b.mustEqual(cashForRepayment, freeCashFlow)
	b.mustEqual(optionalPrepayment, b.sub(cashForRepayment, mandatoryAmortization))
	b.mustEqual(totalDebtRepayment, b.add(mandatoryAmortization, optionalPrepayment))
	b.mustEqual(termLoanBalance, b.sub(termLoanBeginningBalance, totalDebtRepayment))

	b.mustEqual(netChangeInCash, b.sub(freeCashFlow, totalDebtRepayment))
	b.mustEqual(cash, b.add(b.previous(cash, 1, y0Cash), netChangeInCash))
	b.mustEqual(ppe, b.sub(b.add(b.previous(ppe, 1, y0PPE), capex), da))
	b.mustEqual(totalAssets, b.add(b.add(cash, nwc), ppe))
	b.mustEqual(shareholdersEquity, b.sub(totalAssets, termLoanBalance))
	b.mustEqual(totalLiabEquity, b.add(termLoanBalance, shareholdersEquity))

	if b.err != nil {
		return nil, b.err
	}

	return map[string]*canvas.Var{
		"Revenue":            revenue,
		"EBITDA":             ebitda,
		"NetIncome":          netIncome,
		"FreeCashFlow":       freeCashFlow,
		"TermLoanBalance":    termLoanBalance,
		"ShareholdersEquity": shareholdersEquity,
		"Cash":               cash,
		"TotalAssets":        totalAssets,
		"TotalLiabEquity":    totalLiabEquity,
		"SponsorEquity":      sponsorEquity,
		"ExitMultiple":       exitMultiple,
	}, nil
}
