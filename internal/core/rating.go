package core

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Rating defaults. Every value here can be overridden through NewRatingConfig.
const (
	DefaultVINPattern    = "^[A-HJ-NPR-Z0-9]{17}$"
	DefaultMinDriverAge  = 18
	DefaultMaxDriverAge  = 85
	DefaultMaxVehicleAge = 20
	DefaultBasePremium   = "500.00"
)

// RatingConfig holds the externally configurable rating thresholds.
// Immutable after construction; shared by the validator and the risk
// calculator.
type RatingConfig struct {
	VINPattern    *regexp.Regexp
	MinDriverAge  int
	MaxDriverAge  int
	MaxVehicleAge int

	// MaxDrivers caps the number of drivers per request; 0 disables the
	// check.
	MaxDrivers int

	BasePremium decimal.Decimal
}

// NewRatingConfig parses raw configuration values into a RatingConfig.
func NewRatingConfig(vinPattern string, minDriverAge, maxDriverAge, maxVehicleAge, maxDrivers int, basePremium string) (RatingConfig, error) {
	re, err := regexp.Compile(vinPattern)
	if err != nil {
		return RatingConfig{}, fmt.Errorf("parse vin pattern %q: %w", vinPattern, err)
	}
	base, err := decimal.NewFromString(basePremium)
	if err != nil {
		return RatingConfig{}, fmt.Errorf("parse base premium %q: %w", basePremium, err)
	}
	if minDriverAge <= 0 || maxDriverAge < minDriverAge {
		return RatingConfig{}, fmt.Errorf("driver age range %d-%d is invalid", minDriverAge, maxDriverAge)
	}
	if maxVehicleAge < 0 {
		return RatingConfig{}, fmt.Errorf("max vehicle age %d is invalid", maxVehicleAge)
	}
	return RatingConfig{
		VINPattern:    re,
		MinDriverAge:  minDriverAge,
		MaxDriverAge:  maxDriverAge,
		MaxVehicleAge: maxVehicleAge,
		MaxDrivers:    maxDrivers,
		BasePremium:   base,
	}, nil
}

// DefaultRatingConfig returns the standard rating thresholds.
func DefaultRatingConfig() RatingConfig {
	cfg, err := NewRatingConfig(DefaultVINPattern,
		DefaultMinDriverAge, DefaultMaxDriverAge, DefaultMaxVehicleAge, 0,
		DefaultBasePremium)
	if err != nil {
		panic(err)
	}
	return cfg
}

// ageYears returns the whole-year age of someone born at dob as of now.
func ageYears(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() ||
		(now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}
