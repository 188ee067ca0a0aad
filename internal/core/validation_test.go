package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func testValidator() *Validator {
	v := NewValidator(DefaultRatingConfig())
	v.clock = func() time.Time { return testNow }
	return v
}

func intPtr(n int) *int { return &n }

func validRequest() *QuoteRequest {
	return &QuoteRequest{
		Vehicle: &Vehicle{
			Make:         "Toyota",
			Model:        "Camry",
			Year:         testNow.Year(),
			VIN:          "1HGCM82633A004352",
			CurrentValue: decimal.NewFromInt(24000),
		},
		Drivers: []Driver{{
			FirstName:         "Jordan",
			LastName:          "Lee",
			DateOfBirth:       testNow.AddDate(-30, 0, -1),
			LicenseNumber:     "D1234567",
			LicenseState:      "CA",
			YearsOfExperience: intPtr(10),
		}},
		CoverageAmount: decimal.NewFromInt(100000),
		Deductible:     decimal.NewFromInt(1000),
	}
}

func TestValidateAcceptsValidRequest(t *testing.T) {
	if err := testValidator().Validate(validRequest()); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*QuoteRequest)
		wantMsg string
	}{
		{"nil vehicle", func(r *QuoteRequest) { r.Vehicle = nil }, "vehicle is required"},
		{"no drivers", func(r *QuoteRequest) { r.Drivers = nil }, "at least one driver"},
		{"zero coverage", func(r *QuoteRequest) { r.CoverageAmount = decimal.Zero }, "coverage amount must be > 0"},
		{"negative deductible", func(r *QuoteRequest) { r.Deductible = decimal.NewFromInt(-1) }, "deductible must be >= 0"},
		{"zero deductible", func(r *QuoteRequest) { r.Deductible = decimal.Zero }, "deductible is required"},
		{"deductible above coverage", func(r *QuoteRequest) {
			r.CoverageAmount = decimal.NewFromInt(30000)
			r.Deductible = decimal.NewFromInt(40000)
		}, "exceeds coverage amount"},
		{"blank vin", func(r *QuoteRequest) { r.Vehicle.VIN = "   " }, "VIN is required"},
		{"vin too short", func(r *QuoteRequest) { r.Vehicle.VIN = "ABC123" }, "does not match pattern"},
		{"vin with excluded letter", func(r *QuoteRequest) { r.Vehicle.VIN = "IHGCM82633A004352" }, "does not match pattern"},
		{"missing year", func(r *QuoteRequest) { r.Vehicle.Year = 0 }, "vehicle year is required"},
		{"future year", func(r *QuoteRequest) { r.Vehicle.Year = testNow.Year() + 1 }, "in the future"},
		{"vehicle too old", func(r *QuoteRequest) { r.Vehicle.Year = testNow.Year() - 25 }, "at most 20 years"},
		{"blank make", func(r *QuoteRequest) { r.Vehicle.Make = " " }, "vehicle make is required"},
		{"blank model", func(r *QuoteRequest) { r.Vehicle.Model = "" }, "vehicle model is required"},
		{"zero value", func(r *QuoteRequest) { r.Vehicle.CurrentValue = decimal.Zero }, "current value must be > 0"},
		{"blank first name", func(r *QuoteRequest) { r.Drivers[0].FirstName = "  " }, "first name is required"},
		{"blank last name", func(r *QuoteRequest) { r.Drivers[0].LastName = "" }, "last name is required"},
		{"missing dob", func(r *QuoteRequest) { r.Drivers[0].DateOfBirth = time.Time{} }, "date of birth is required"},
		{"future dob", func(r *QuoteRequest) { r.Drivers[0].DateOfBirth = testNow.AddDate(1, 0, 0) }, "must be in the past"},
		{"driver too young", func(r *QuoteRequest) { r.Drivers[0].DateOfBirth = testNow.AddDate(-16, 0, 0) }, "at least 18"},
		{"driver too old", func(r *QuoteRequest) { r.Drivers[0].DateOfBirth = testNow.AddDate(-90, 0, 0) }, "at most 85"},
		{"blank license number", func(r *QuoteRequest) { r.Drivers[0].LicenseNumber = " " }, "license number is required"},
		{"blank license state", func(r *QuoteRequest) { r.Drivers[0].LicenseState = "" }, "license state is required"},
	}

	v := testValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error %v is not ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestValidateNilRequest(t *testing.T) {
	err := testValidator().Validate(nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Validate(nil) = %v, want ErrValidation", err)
	}
}

func TestValidateVINErrorNamesInputAndPattern(t *testing.T) {
	req := validRequest()
	req.Vehicle.VIN = "BADVIN"

	err := testValidator().Validate(req)
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !strings.Contains(err.Error(), "BADVIN") {
		t.Errorf("error %q does not name the offending VIN", err)
	}
	if !strings.Contains(err.Error(), DefaultVINPattern) {
		t.Errorf("error %q does not name the expected pattern", err)
	}
}

func TestValidateAgeErrorNamesLimitAndActual(t *testing.T) {
	req := validRequest()
	req.Drivers[0].DateOfBirth = testNow.AddDate(-16, 0, -1)

	err := testValidator().Validate(req)
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, want := range []string{"18", "16"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not contain %q", err, want)
		}
	}
}

func TestValidateVehicleAgeErrorNamesLimitAndActual(t *testing.T) {
	req := validRequest()
	req.Vehicle.Year = testNow.Year() - 23

	err := testValidator().Validate(req)
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, want := range []string{"20", "23"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not contain %q", err, want)
		}
	}
}

func TestValidateFirstFailureWins(t *testing.T) {
	req := validRequest()
	req.Vehicle = nil
	req.Drivers = nil

	err := testValidator().Validate(req)
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !strings.Contains(err.Error(), "vehicle is required") {
		t.Errorf("error %q, want the vehicle check to fail first", err)
	}
}

func TestValidateEachDriverIndependently(t *testing.T) {
	req := validRequest()
	req.Drivers = append(req.Drivers, Driver{
		FirstName:     "Sam",
		LastName:      "Ngata",
		DateOfBirth:   testNow.AddDate(-15, 0, 0),
		LicenseNumber: "N7654321",
		LicenseState:  "WA",
	})

	err := testValidator().Validate(req)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Validate() = %v, want ErrValidation for second driver", err)
	}
	if !strings.Contains(err.Error(), "at least 18") {
		t.Errorf("error %q does not identify the underage driver", err)
	}
}

func TestValidateMaxDriversConfigurable(t *testing.T) {
	cfg, err := NewRatingConfig(DefaultVINPattern, 18, 85, 20, 1, DefaultBasePremium)
	if err != nil {
		t.Fatalf("NewRatingConfig: %v", err)
	}
	v := NewValidator(cfg)
	v.clock = func() time.Time { return testNow }

	req := validRequest()
	second := req.Drivers[0]
	second.LicenseNumber = "X9999999"
	req.Drivers = append(req.Drivers, second)

	if err := v.Validate(req); !errors.Is(err, ErrValidation) {
		t.Fatalf("Validate() = %v, want ErrValidation for driver count", err)
	}
}

func TestNewRatingConfigRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		minAge  int
		maxAge  int
		maxVeh  int
		base    string
	}{
		{"bad regexp", "[", 18, 85, 20, "500.00"},
		{"bad premium", DefaultVINPattern, 18, 85, 20, "five hundred"},
		{"inverted age range", DefaultVINPattern, 85, 18, 20, "500.00"},
		{"negative vehicle age", DefaultVINPattern, 18, 85, -1, "500.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRatingConfig(tt.pattern, tt.minAge, tt.maxAge, tt.maxVeh, 0, tt.base)
			if err == nil {
				t.Error("NewRatingConfig() = nil, want error")
			}
		})
	}
}

func TestAgeYears(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		dob  time.Time
		want int
	}{
		{time.Date(1996, time.June, 15, 0, 0, 0, 0, time.UTC), 30},
		{time.Date(1996, time.June, 16, 0, 0, 0, 0, time.UTC), 29},
		{time.Date(1996, time.December, 1, 0, 0, 0, 0, time.UTC), 29},
		{time.Date(1996, time.January, 1, 0, 0, 0, 0, time.UTC), 30},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("dob=%s", tt.dob.Format("2006-01-02")), func(t *testing.T) {
			if got := ageYears(tt.dob, now); got != tt.want {
				t.Errorf("ageYears() = %d, want %d", got, tt.want)
			}
		})
	}
}
