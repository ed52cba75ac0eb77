package pricing

import (
	"math"
	"testing"
)

// Simple sanity check: ATM call should have non-zero value
func TestPriceCallBasic(t *testing.T) {
	call := Price(true, 100.0, 100.0, 30.0/365.0, 0.05, 0.20)
	if call <= 0 {
		t.Fatalf("expected call price > 0, got %f", call)
	}
}

// Put-call parity check
func TestPricePutCallParity(t *testing.T) {
	spot := 100.0
	strike := 100.0
	years := 45.0 / 365.0
	rate := 0.03
	iv := 0.25

	call := Price(true, spot, strike, years, rate, iv)
	put := Price(false, spot, strike, years, rate, iv)

	lhs := call - put
	rhs := spot - strike*math.Exp(-rate*years)

	if math.Abs(lhs-rhs) > 1e-6 {
		t.Fatalf("put-call parity violated: LHS=%f RHS=%f", lhs, rhs)
	}
}

// Known value: S=450 K=440 sigma=0.15 t=30/365 r=0.045 gives d1 near 0.6301
// under the standard formula, so the call delta is near Phi(0.6301).
func TestDeltaKnownValue(t *testing.T) {
	delta := Delta(true, 450.0, 440.0, 30.0/365.0, 0.045, 0.15)
	if math.Abs(delta-0.7357) > 5e-4 {
		t.Fatalf("expected call delta near 0.7357, got %f", delta)
	}
}

func TestDeltaCallPutRelation(t *testing.T) {
	spot, strike, years, rate, iv := 450.0, 440.0, 30.0/365.0, 0.045, 0.15

	dc := Delta(true, spot, strike, years, rate, iv)
	dp := Delta(false, spot, strike, years, rate, iv)

	if dc < 0 || dc > 1 {
		t.Fatalf("call delta out of [0,1]: %f", dc)
	}
	if dp < -1 || dp > 0 {
		t.Fatalf("put delta out of [-1,0]: %f", dp)
	}
	if math.Abs(dc-dp-1.0) > 1e-9 {
		t.Fatalf("delta_call - delta_put should be 1, got %f", dc-dp)
	}
}

func TestGreeksSigns(t *testing.T) {
	spot, strike, years, rate, iv := 450.0, 440.0, 30.0/365.0, 0.045, 0.15

	if g := Gamma(spot, strike, years, rate, iv); g <= 0 {
		t.Fatalf("expected gamma > 0, got %f", g)
	}
	if v := Vega(spot, strike, years, rate, iv); v <= 0 {
		t.Fatalf("expected vega > 0, got %f", v)
	}
	if th := Theta(true, spot, strike, years, rate, iv); th >= 0 {
		t.Fatalf("expected call theta < 0, got %f", th)
	}
}

func TestDegenerateInputsReturnZero(t *testing.T) {
	if d := Delta(true, 100, 100, 0, 0.05, 0.2); d != 0 {
		t.Fatalf("expected 0 delta for t=0, got %f", d)
	}
	if g := Gamma(100, 100, 0.1, 0.05, 0); g != 0 {
		t.Fatalf("expected 0 gamma for sigma=0, got %f", g)
	}
	if v := Vega(100, 100, -0.1, 0.05, 0.2); v != 0 {
		t.Fatalf("expected 0 vega for t<0, got %f", v)
	}
	if th := Theta(false, 100, 100, 0.1, 0.05, -1); th != 0 {
		t.Fatalf("expected 0 theta for sigma<0, got %f", th)
	}
}
