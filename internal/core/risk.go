package core

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	coverageUnit   = decimal.NewFromInt(100000)
	deductibleUnit = decimal.NewFromInt(1000)

	vehicleAgeRate = decimal.New(2, -2) // 0.02 per year of vehicle age

	factorYoungDriver  = decimal.New(15, -1) // under 25
	factorStdDriver    = decimal.New(10, -1) // 25 to 64
	factorSeniorDriver = decimal.New(12, -1) // 65 and up
	factorExperienced  = decimal.New(95, -2) // more than 5 years behind the wheel

	monthsPerYear = decimal.NewFromInt(12)
)

// RiskCalculator produces the unadjusted base premium for a request. It is
// a pure function of its input and the clock.
type RiskCalculator struct {
	cfg   RatingConfig
	clock func() time.Time
}

func NewRiskCalculator(cfg RatingConfig) *RiskCalculator {
	return &RiskCalculator{cfg: cfg, clock: time.Now}
}

// CalculateBasePremium multiplies the configured base premium constant by
// the coverage, deductible, vehicle-age and per-driver risk factors, in
// that order, and rounds the result to cents.
func (c *RiskCalculator) CalculateBasePremium(req *QuoteRequest) decimal.Decimal {
	now := c.clock()
	premium := c.cfg.BasePremium

	coverageFactor := req.CoverageAmount.Div(coverageUnit).Round(2)
	premium = premium.Mul(coverageFactor)

	// A smaller deductible means a larger factor and a higher premium.
	deductibleFactor := deductibleUnit.Div(req.Deductible).Round(2)
	premium = premium.Mul(deductibleFactor)

	vehicleAge := int64(now.Year() - req.Vehicle.Year)
	ageFactor := decimal.New(1, 0).Add(decimal.NewFromInt(vehicleAge).Mul(vehicleAgeRate))
	premium = premium.Mul(ageFactor)

	for i := range req.Drivers {
		premium = applyDriverFactors(premium, &req.Drivers[i], now)
	}

	return premium.Round(2)
}

// applyDriverFactors applies the driver-age factor followed by the
// experience factor. Both compound onto the running premium.
func applyDriverFactors(premium decimal.Decimal, d *Driver, now time.Time) decimal.Decimal {
	age := ageYears(d.DateOfBirth, now)
	switch {
	case age < 25:
		premium = premium.Mul(factorYoungDriver)
	case age < 65:
		premium = premium.Mul(factorStdDriver)
	default:
		premium = premium.Mul(factorSeniorDriver)
	}

	if d.YearsOfExperience != nil && *d.YearsOfExperience > 5 {
		premium = premium.Mul(factorExperienced)
	}
	return premium
}
