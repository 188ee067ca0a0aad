package core

import (
	"fmt"
	"strings"
	"time"
)

// Validator enforces structural and business-rule constraints on a quote
// request before it reaches the rating pipeline. The first failing check
// wins; errors are not accumulated.
type Validator struct {
	cfg   RatingConfig
	clock func() time.Time
}

func NewValidator(cfg RatingConfig) *Validator {
	return &Validator{cfg: cfg, clock: time.Now}
}

func (v *Validator) Validate(req *QuoteRequest) error {
	if req == nil {
		return fmt.Errorf("%w: quote request is required", ErrValidation)
	}
	if req.Vehicle == nil {
		return fmt.Errorf("%w: vehicle is required", ErrValidation)
	}
	if len(req.Drivers) == 0 {
		return fmt.Errorf("%w: at least one driver is required", ErrValidation)
	}
	if v.cfg.MaxDrivers > 0 && len(req.Drivers) > v.cfg.MaxDrivers {
		return fmt.Errorf("%w: at most %d drivers allowed, got %d",
			ErrValidation, v.cfg.MaxDrivers, len(req.Drivers))
	}
	if !req.CoverageAmount.IsPositive() {
		return fmt.Errorf("%w: coverage amount must be > 0", ErrValidation)
	}
	if req.Deductible.IsNegative() {
		return fmt.Errorf("%w: deductible must be >= 0", ErrValidation)
	}
	// A zero deductible would divide by zero in the risk calculator; treat
	// it as absent.
	if req.Deductible.IsZero() {
		return fmt.Errorf("%w: deductible is required", ErrValidation)
	}
	if req.Deductible.GreaterThan(req.CoverageAmount) {
		return fmt.Errorf("%w: deductible %s exceeds coverage amount %s",
			ErrValidation, req.Deductible, req.CoverageAmount)
	}
	if err := v.validateVehicle(req.Vehicle); err != nil {
		return err
	}
	for i := range req.Drivers {
		if err := v.validateDriver(&req.Drivers[i]); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) validateVehicle(veh *Vehicle) error {
	if strings.TrimSpace(veh.VIN) == "" {
		return fmt.Errorf("%w: vehicle VIN is required", ErrValidation)
	}
	if !v.cfg.VINPattern.MatchString(veh.VIN) {
		return fmt.Errorf("%w: VIN %q does not match pattern %s",
			ErrValidation, veh.VIN, v.cfg.VINPattern)
	}
	if veh.Year == 0 {
		return fmt.Errorf("%w: vehicle year is required", ErrValidation)
	}
	age := v.clock().Year() - veh.Year
	if age < 0 {
		return fmt.Errorf("%w: vehicle year %d is in the future", ErrValidation, veh.Year)
	}
	if age > v.cfg.MaxVehicleAge {
		return fmt.Errorf("%w: vehicle age must be at most %d years, got %d",
			ErrValidation, v.cfg.MaxVehicleAge, age)
	}
	if strings.TrimSpace(veh.Make) == "" {
		return fmt.Errorf("%w: vehicle make is required", ErrValidation)
	}
	if strings.TrimSpace(veh.Model) == "" {
		return fmt.Errorf("%w: vehicle model is required", ErrValidation)
	}
	if !veh.CurrentValue.IsPositive() {
		return fmt.Errorf("%w: vehicle current value must be > 0", ErrValidation)
	}
	return nil
}

func (v *Validator) validateDriver(d *Driver) error {
	if strings.TrimSpace(d.FirstName) == "" {
		return fmt.Errorf("%w: driver first name is required", ErrValidation)
	}
	if strings.TrimSpace(d.LastName) == "" {
		return fmt.Errorf("%w: driver last name is required", ErrValidation)
	}
	if d.DateOfBirth.IsZero() {
		return fmt.Errorf("%w: driver date of birth is required", ErrValidation)
	}
	now := v.clock()
	if !d.DateOfBirth.Before(now) {
		return fmt.Errorf("%w: driver date of birth must be in the past", ErrValidation)
	}
	age := ageYears(d.DateOfBirth, now)
	if age < v.cfg.MinDriverAge {
		return fmt.Errorf("%w: driver age must be at least %d, got %d",
			ErrValidation, v.cfg.MinDriverAge, age)
	}
	if age > v.cfg.MaxDriverAge {
		return fmt.Errorf("%w: driver age must be at most %d, got %d",
			ErrValidation, v.cfg.MaxDriverAge, age)
	}
	if strings.TrimSpace(d.LicenseNumber) == "" {
		return fmt.Errorf("%w: driver license number is required", ErrValidation)
	}
	if strings.TrimSpace(d.LicenseState) == "" {
		return fmt.Errorf("%w: driver license state is required", ErrValidation)
	}
	return nil
}
