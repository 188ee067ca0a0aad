package core

import (
	"time"

	"github.com/dmarais/go-autoquote/internal/platform/ids"
)

// quoteValidity is how long a freshly issued quote stays valid.
const quoteValidity = 30 * 24 * time.Hour

// BuildQuote maps a validated request plus its calculation into a
// persistable Quote. The id is freshly generated; CreatedAt stays zero so
// the store can stamp it on first save.
func BuildQuote(req *QuoteRequest, calc PremiumCalculation, issuedAt time.Time) Quote {
	primary := req.Drivers[0]

	discounts := make([]string, len(calc.AppliedDiscounts))
	copy(discounts, calc.AppliedDiscounts)

	return Quote{
		ID:               ids.New(),
		FinalPremium:     calc.FinalPremium,
		MonthlyPremium:   calc.MonthlyPremium,
		CoverageAmount:   req.CoverageAmount,
		Deductible:       req.Deductible,
		ValidUntil:       issuedAt.Add(quoteValidity),
		VehicleMake:      req.Vehicle.Make,
		VehicleModel:     req.Vehicle.Model,
		VehicleYear:      req.Vehicle.Year,
		VehicleVIN:       req.Vehicle.VIN,
		VehicleValue:     req.Vehicle.CurrentValue,
		DriverName:       primary.FirstName + " " + primary.LastName,
		DriverLicense:    primary.LicenseNumber,
		AppliedDiscounts: discounts,
	}
}
