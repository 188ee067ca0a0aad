package core

import "github.com/shopspring/decimal"

const (
	safeDriverLabel  = "Safe Driver Discount - 15%"
	multiPolicyLabel = "Multi-Policy Discount - 10%"
)

var (
	safeDriverPct  = decimal.New(15, -2) // 0.15
	multiPolicyPct = decimal.New(10, -2) // 0.10
	maxDiscountPct = decimal.New(25, -2) // total discount capped at 25%
)

// DiscountCalculator turns discount-eligibility flags into a money amount
// and a human-readable list of applied discounts. It recomputes the base
// premium itself rather than taking one as input.
type DiscountCalculator struct {
	risk *RiskCalculator
}

func NewDiscountCalculator(risk *RiskCalculator) *DiscountCalculator {
	return &DiscountCalculator{risk: risk}
}

// CalculateTotalDiscount accumulates 15% per safe driver and 10% per
// multi-policy driver, caps the total percentage at 25%, and applies it to
// a freshly computed base premium.
func (c *DiscountCalculator) CalculateTotalDiscount(req *QuoteRequest) decimal.Decimal {
	base := c.risk.CalculateBasePremium(req)

	pct := decimal.Zero
	for i := range req.Drivers {
		if req.Drivers[i].SafeDriverDiscount {
			pct = pct.Add(safeDriverPct)
		}
		if req.Drivers[i].MultiPolicyDiscount {
			pct = pct.Add(multiPolicyPct)
		}
	}
	if pct.GreaterThan(maxDiscountPct) {
		pct = maxDiscountPct
	}

	return base.Mul(pct).Round(2)
}

// AppliedDiscounts lists one entry per triggered flag in driver order. The
// list is not subject to the 25% cap, so it can name more discounts than
// the capped amount reflects.
func (c *DiscountCalculator) AppliedDiscounts(req *QuoteRequest) []string {
	var applied []string
	for i := range req.Drivers {
		if req.Drivers[i].SafeDriverDiscount {
			applied = append(applied, safeDriverLabel)
		}
		if req.Drivers[i].MultiPolicyDiscount {
			applied = append(applied, multiPolicyLabel)
		}
	}
	return applied
}
