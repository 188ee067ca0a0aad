package handlers

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmarais/go-autoquote/internal/core"
)

// Request-shape bounds enforced before the core validator runs.
var (
	minCoverage   = decimal.NewFromInt(25000)
	maxCoverage   = decimal.NewFromInt(1000000)
	minDeductible = decimal.NewFromInt(250)
	maxDeductible = decimal.NewFromInt(10000)
)

const dateLayout = "2006-01-02"

type vehicleDTO struct {
	Make         string          `json:"make"`
	Model        string          `json:"model"`
	Year         int             `json:"year"`
	VIN          string          `json:"vin"`
	CurrentValue decimal.Decimal `json:"current_value"`
}

type driverDTO struct {
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	DateOfBirth         string `json:"date_of_birth"`
	LicenseNumber       string `json:"license_number"`
	LicenseState        string `json:"license_state"`
	YearsOfExperience   *int   `json:"years_of_experience,omitempty"`
	SafeDriverDiscount  bool   `json:"safe_driver_discount"`
	MultiPolicyDiscount bool   `json:"multi_policy_discount"`
}

type quoteRequestDTO struct {
	Vehicle        *vehicleDTO     `json:"vehicle"`
	Drivers        []driverDTO     `json:"drivers"`
	CoverageAmount decimal.Decimal `json:"coverage_amount"`
	Deductible     decimal.Decimal `json:"deductible"`
}

// toCore checks the request-shape bounds and converts to the core model.
// Business-rule validation happens inside the service.
func (dto *quoteRequestDTO) toCore() (*core.QuoteRequest, error) {
	if dto.CoverageAmount.LessThan(minCoverage) || dto.CoverageAmount.GreaterThan(maxCoverage) {
		return nil, fmt.Errorf("%w: coverage amount must be between %s and %s",
			core.ErrValidation, minCoverage, maxCoverage)
	}
	if dto.Deductible.LessThan(minDeductible) || dto.Deductible.GreaterThan(maxDeductible) {
		return nil, fmt.Errorf("%w: deductible must be between %s and %s",
			core.ErrValidation, minDeductible, maxDeductible)
	}

	req := &core.QuoteRequest{
		CoverageAmount: dto.CoverageAmount,
		Deductible:     dto.Deductible,
	}

	if dto.Vehicle != nil {
		req.Vehicle = &core.Vehicle{
			Make:         dto.Vehicle.Make,
			Model:        dto.Vehicle.Model,
			Year:         dto.Vehicle.Year,
			VIN:          dto.Vehicle.VIN,
			CurrentValue: dto.Vehicle.CurrentValue,
		}
	}

	for _, d := range dto.Drivers {
		if len(d.LicenseState) != 2 {
			return nil, fmt.Errorf("%w: license state must be exactly 2 characters, got %q",
				core.ErrValidation, d.LicenseState)
		}
		dob, err := time.Parse(dateLayout, d.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: date of birth %q is not a valid %s date",
				core.ErrValidation, d.DateOfBirth, dateLayout)
		}
		req.Drivers = append(req.Drivers, core.Driver{
			FirstName:           d.FirstName,
			LastName:            d.LastName,
			DateOfBirth:         dob,
			LicenseNumber:       d.LicenseNumber,
			LicenseState:        d.LicenseState,
			YearsOfExperience:   d.YearsOfExperience,
			SafeDriverDiscount:  d.SafeDriverDiscount,
			MultiPolicyDiscount: d.MultiPolicyDiscount,
		})
	}

	return req, nil
}

type quoteResponseDTO struct {
	ID               string          `json:"id"`
	FinalPremium     decimal.Decimal `json:"final_premium"`
	MonthlyPremium   decimal.Decimal `json:"monthly_premium"`
	CoverageAmount   decimal.Decimal `json:"coverage_amount"`
	Deductible       decimal.Decimal `json:"deductible"`
	ValidUntil       time.Time       `json:"valid_until"`
	AppliedDiscounts []string        `json:"applied_discounts"`
}

func fromResponse(r core.QuoteResponse) quoteResponseDTO {
	discounts := r.AppliedDiscounts
	if discounts == nil {
		discounts = []string{}
	}
	return quoteResponseDTO{
		ID:               r.ID,
		FinalPremium:     r.FinalPremium,
		MonthlyPremium:   r.MonthlyPremium,
		CoverageAmount:   r.CoverageAmount,
		Deductible:       r.Deductible,
		ValidUntil:       r.ValidUntil,
		AppliedDiscounts: discounts,
	}
}

type premiumResponseDTO struct {
	BasePremium decimal.Decimal `json:"base_premium"`
}
