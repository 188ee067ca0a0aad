package mongo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmarais/go-autoquote/internal/core"
)

const ColQuotes = "quotes"

// QuoteDoc is the stored shape of a quote. Money fields are stored as
// decimal strings so no precision is lost in transit.
type QuoteDoc struct {
	ID               string    `bson:"_id"`
	FinalPremium     string    `bson:"final_premium"`
	MonthlyPremium   string    `bson:"monthly_premium"`
	CoverageAmount   string    `bson:"coverage_amount"`
	Deductible       string    `bson:"deductible"`
	ValidUntil       time.Time `bson:"valid_until"`
	CreatedAt        time.Time `bson:"created_at"`
	VehicleMake      string    `bson:"vehicle_make"`
	VehicleModel     string    `bson:"vehicle_model"`
	VehicleYear      int       `bson:"vehicle_year"`
	VehicleVIN       string    `bson:"vehicle_vin"`
	VehicleValue     string    `bson:"vehicle_value"`
	DriverName       string    `bson:"driver_name"`
	DriverLicense    string    `bson:"driver_license"`
	AppliedDiscounts []string  `bson:"applied_discounts"`
}

func toQuoteDoc(q core.Quote) QuoteDoc {
	return QuoteDoc{
		ID:               q.ID,
		FinalPremium:     q.FinalPremium.String(),
		MonthlyPremium:   q.MonthlyPremium.String(),
		CoverageAmount:   q.CoverageAmount.String(),
		Deductible:       q.Deductible.String(),
		ValidUntil:       q.ValidUntil,
		CreatedAt:        q.CreatedAt,
		VehicleMake:      q.VehicleMake,
		VehicleModel:     q.VehicleModel,
		VehicleYear:      q.VehicleYear,
		VehicleVIN:       q.VehicleVIN,
		VehicleValue:     q.VehicleValue.String(),
		DriverName:       q.DriverName,
		DriverLicense:    q.DriverLicense,
		AppliedDiscounts: q.AppliedDiscounts,
	}
}

func fromQuoteDoc(d QuoteDoc) core.Quote {
	return core.Quote{
		ID:               d.ID,
		FinalPremium:     mustDecimal(d.FinalPremium),
		MonthlyPremium:   mustDecimal(d.MonthlyPremium),
		CoverageAmount:   mustDecimal(d.CoverageAmount),
		Deductible:       mustDecimal(d.Deductible),
		ValidUntil:       d.ValidUntil,
		CreatedAt:        d.CreatedAt,
		VehicleMake:      d.VehicleMake,
		VehicleModel:     d.VehicleModel,
		VehicleYear:      d.VehicleYear,
		VehicleVIN:       d.VehicleVIN,
		VehicleValue:     mustDecimal(d.VehicleValue),
		DriverName:       d.DriverName,
		DriverLicense:    d.DriverLicense,
		AppliedDiscounts: d.AppliedDiscounts,
	}
}

// mustDecimal trusts stored values; they were serialized from decimals.
func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
