package core

import (
	"testing"
)

func testDiscountCalculator() *DiscountCalculator {
	return NewDiscountCalculator(testRiskCalculator())
}

func TestTotalDiscountNoFlags(t *testing.T) {
	got := testDiscountCalculator().CalculateTotalDiscount(validRequest())
	if !got.IsZero() {
		t.Fatalf("CalculateTotalDiscount() = %s, want 0", got)
	}
}

// Safe-driver flag on the reference request: 475.00 * 0.15 = 71.25.
func TestTotalDiscountSafeDriver(t *testing.T) {
	req := validRequest()
	req.Drivers[0].SafeDriverDiscount = true

	got := testDiscountCalculator().CalculateTotalDiscount(req)
	if want := dec("71.25"); !got.Equal(want) {
		t.Fatalf("CalculateTotalDiscount() = %s, want %s", got, want)
	}
}

func TestTotalDiscountBothFlagsOneDriver(t *testing.T) {
	req := validRequest()
	req.Drivers[0].SafeDriverDiscount = true
	req.Drivers[0].MultiPolicyDiscount = true

	// 0.15 + 0.10 stays under the cap: 475.00 * 0.25 = 118.75
	got := testDiscountCalculator().CalculateTotalDiscount(req)
	if want := dec("118.75"); !got.Equal(want) {
		t.Fatalf("CalculateTotalDiscount() = %s, want %s", got, want)
	}
}

// Two drivers with both flags accumulate 50% raw but the cap holds the
// applied percentage at 25%.
func TestTotalDiscountCapAcrossDrivers(t *testing.T) {
	req := twoFullyFlaggedDrivers()

	calc := testDiscountCalculator()
	base := calc.risk.CalculateBasePremium(req)
	got := calc.CalculateTotalDiscount(req)
	if want := base.Mul(maxDiscountPct).Round(2); !got.Equal(want) {
		t.Fatalf("CalculateTotalDiscount() = %s, want capped %s", got, want)
	}
}

func TestAppliedDiscountsListsEveryFlagDespiteCap(t *testing.T) {
	req := twoFullyFlaggedDrivers()

	got := testDiscountCalculator().AppliedDiscounts(req)
	want := []string{safeDriverLabel, multiPolicyLabel, safeDriverLabel, multiPolicyLabel}
	if len(got) != len(want) {
		t.Fatalf("AppliedDiscounts() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AppliedDiscounts()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAppliedDiscountsEmptyWithoutFlags(t *testing.T) {
	if got := testDiscountCalculator().AppliedDiscounts(validRequest()); len(got) != 0 {
		t.Fatalf("AppliedDiscounts() = %v, want empty", got)
	}
}

func TestAppliedDiscountLabels(t *testing.T) {
	req := validRequest()
	req.Drivers[0].MultiPolicyDiscount = true

	got := testDiscountCalculator().AppliedDiscounts(req)
	if len(got) != 1 || got[0] != "Multi-Policy Discount - 10%" {
		t.Fatalf("AppliedDiscounts() = %v, want the multi-policy label", got)
	}
}

func twoFullyFlaggedDrivers() *QuoteRequest {
	req := validRequest()
	req.Drivers[0].SafeDriverDiscount = true
	req.Drivers[0].MultiPolicyDiscount = true
	req.Drivers = append(req.Drivers, Driver{
		FirstName:           "Casey",
		LastName:            "Lee",
		DateOfBirth:         testNow.AddDate(-40, 0, -1),
		LicenseNumber:       "D2223334",
		LicenseState:        "CA",
		SafeDriverDiscount:  true,
		MultiPolicyDiscount: true,
	})
	return req
}
