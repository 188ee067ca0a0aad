package core

import (
	"fmt"
)

// PremiumAssembler combines the risk and discount calculators into a
// single PremiumCalculation and memoizes the result in the calculation
// cache.
type PremiumAssembler struct {
	risk     *RiskCalculator
	discount *DiscountCalculator
	cache    *CalcCache
}

func NewPremiumAssembler(risk *RiskCalculator, discount *DiscountCalculator, cache *CalcCache) *PremiumAssembler {
	return &PremiumAssembler{risk: risk, discount: discount, cache: cache}
}

// Assemble prices a validated request. The discount calculator computes
// its own base premium internally, so the risk calculation runs twice per
// uncached request.
func (a *PremiumAssembler) Assemble(req *QuoteRequest) PremiumCalculation {
	key := Fingerprint(req)
	if a.cache != nil {
		if calc, ok := a.cache.Get(key); ok {
			return calc
		}
	}

	base := a.risk.CalculateBasePremium(req)
	discount := a.discount.CalculateTotalDiscount(req)
	final := base.Sub(discount)

	calc := PremiumCalculation{
		BasePremium:      base,
		TotalDiscount:    discount,
		FinalPremium:     final,
		MonthlyPremium:   final.DivRound(monthsPerYear, 2),
		AppliedDiscounts: a.discount.AppliedDiscounts(req),
	}

	if a.cache != nil {
		a.cache.Set(key, calc)
	}
	return calc
}

// Fingerprint derives the calculation-cache key from VIN, driver count and
// coverage amount. Deductible and per-driver discount flags are not part
// of the key; requests differing only in those map to the same entry.
func Fingerprint(req *QuoteRequest) string {
	return fmt.Sprintf("%s|%d|%s", req.Vehicle.VIN, len(req.Drivers), req.CoverageAmount)
}
