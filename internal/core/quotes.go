package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle is the insured vehicle as submitted on a quote request.
type Vehicle struct {
	Make         string
	Model        string
	Year         int
	VIN          string
	CurrentValue decimal.Decimal
}

// Driver is one driver on a quote request. The first driver in the
// request's list is the primary driver.
type Driver struct {
	FirstName           string
	LastName            string
	DateOfBirth         time.Time
	LicenseNumber       string
	LicenseState        string
	YearsOfExperience   *int
	SafeDriverDiscount  bool
	MultiPolicyDiscount bool
}

// QuoteRequest carries everything needed to price a quote.
type QuoteRequest struct {
	Vehicle        *Vehicle
	Drivers        []Driver
	CoverageAmount decimal.Decimal
	Deductible     decimal.Decimal
}

// PremiumCalculation is the result of one full premium assembly.
// Built once, never mutated.
type PremiumCalculation struct {
	BasePremium      decimal.Decimal
	TotalDiscount    decimal.Decimal
	FinalPremium     decimal.Decimal
	MonthlyPremium   decimal.Decimal
	AppliedDiscounts []string
}

// Quote is the persisted record of a completed calculation. Written once;
// read-only afterwards. CreatedAt is stamped by the store on first save.
type Quote struct {
	ID               string
	FinalPremium     decimal.Decimal
	MonthlyPremium   decimal.Decimal
	CoverageAmount   decimal.Decimal
	Deductible       decimal.Decimal
	ValidUntil       time.Time
	CreatedAt        time.Time
	VehicleMake      string
	VehicleModel     string
	VehicleYear      int
	VehicleVIN       string
	VehicleValue     decimal.Decimal
	DriverName       string
	DriverLicense    string
	AppliedDiscounts []string
}

// QuoteResponse is the projection returned to callers of the service.
type QuoteResponse struct {
	ID               string
	FinalPremium     decimal.Decimal
	MonthlyPremium   decimal.Decimal
	CoverageAmount   decimal.Decimal
	Deductible       decimal.Decimal
	ValidUntil       time.Time
	AppliedDiscounts []string
}

type QuoteRepo interface {
	Save(ctx context.Context, q Quote) (Quote, error)
	FindByID(ctx context.Context, id string) (Quote, error)
}

// QuoteService is the contract consumed by the transport layer.
type QuoteService interface {
	GenerateQuote(ctx context.Context, req *QuoteRequest) (QuoteResponse, error)
	GetQuoteByID(ctx context.Context, id string) (QuoteResponse, error)
	CalculatePremium(ctx context.Context, req *QuoteRequest) (decimal.Decimal, error)
}

func toResponse(q Quote) QuoteResponse {
	discounts := make([]string, len(q.AppliedDiscounts))
	copy(discounts, q.AppliedDiscounts)
	return QuoteResponse{
		ID:               q.ID,
		FinalPremium:     q.FinalPremium,
		MonthlyPremium:   q.MonthlyPremium,
		CoverageAmount:   q.CoverageAmount,
		Deductible:       q.Deductible,
		ValidUntil:       q.ValidUntil,
		AppliedDiscounts: discounts,
	}
}
