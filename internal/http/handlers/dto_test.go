package handlers

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dmarais/go-autoquote/internal/core"
)

func validDTO() quoteRequestDTO {
	return quoteRequestDTO{
		Vehicle: &vehicleDTO{
			Make:         "Toyota",
			Model:        "Camry",
			Year:         2024,
			VIN:          "1HGCM82633A004352",
			CurrentValue: decimal.NewFromInt(24000),
		},
		Drivers: []driverDTO{{
			FirstName:     "Jordan",
			LastName:      "Lee",
			DateOfBirth:   "1990-04-12",
			LicenseNumber: "D1234567",
			LicenseState:  "CA",
		}},
		CoverageAmount: decimal.NewFromInt(100000),
		Deductible:     decimal.NewFromInt(1000),
	}
}

func TestDTOToCore(t *testing.T) {
	dto := validDTO()
	req, err := dto.toCore()
	if err != nil {
		t.Fatalf("toCore() error = %v", err)
	}
	if req.Vehicle == nil || req.Vehicle.VIN != "1HGCM82633A004352" {
		t.Error("vehicle not mapped")
	}
	if len(req.Drivers) != 1 {
		t.Fatalf("drivers = %d, want 1", len(req.Drivers))
	}
	if got := req.Drivers[0].DateOfBirth.Format(dateLayout); got != "1990-04-12" {
		t.Errorf("DateOfBirth = %s, want 1990-04-12", got)
	}
}

func TestDTOShapeBounds(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*quoteRequestDTO)
		wantMsg string
	}{
		{"coverage below minimum", func(d *quoteRequestDTO) {
			d.CoverageAmount = decimal.NewFromInt(24999)
		}, "coverage amount must be between"},
		{"coverage above maximum", func(d *quoteRequestDTO) {
			d.CoverageAmount = decimal.NewFromInt(1000001)
		}, "coverage amount must be between"},
		{"deductible below minimum", func(d *quoteRequestDTO) {
			d.Deductible = decimal.NewFromInt(249)
		}, "deductible must be between"},
		{"zero deductible", func(d *quoteRequestDTO) {
			d.Deductible = decimal.Zero
		}, "deductible must be between"},
		{"deductible above maximum", func(d *quoteRequestDTO) {
			d.Deductible = decimal.NewFromInt(10001)
		}, "deductible must be between"},
		{"one-letter state", func(d *quoteRequestDTO) {
			d.Drivers[0].LicenseState = "C"
		}, "exactly 2 characters"},
		{"three-letter state", func(d *quoteRequestDTO) {
			d.Drivers[0].LicenseState = "CAL"
		}, "exactly 2 characters"},
		{"bad date", func(d *quoteRequestDTO) {
			d.Drivers[0].DateOfBirth = "12/04/1990"
		}, "not a valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := validDTO()
			tt.mutate(&dto)

			_, err := dto.toCore()
			if err == nil {
				t.Fatal("toCore() = nil, want error")
			}
			if !errors.Is(err, core.ErrValidation) {
				t.Errorf("error %v is not ErrValidation", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestDTOBoundsInclusive(t *testing.T) {
	tests := []struct {
		name     string
		coverage int64
		deduct   int64
	}{
		{"lower bounds", 25000, 250},
		{"upper bounds", 1000000, 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := validDTO()
			dto.CoverageAmount = decimal.NewFromInt(tt.coverage)
			dto.Deductible = decimal.NewFromInt(tt.deduct)

			if _, err := dto.toCore(); err != nil {
				t.Fatalf("toCore() error = %v, want bounds to be inclusive", err)
			}
		})
	}
}

func TestFromResponseNeverNilDiscounts(t *testing.T) {
	got := fromResponse(core.QuoteResponse{ID: "q1"})
	if got.AppliedDiscounts == nil {
		t.Fatal("AppliedDiscounts is nil, want empty list")
	}
}
