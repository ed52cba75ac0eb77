package pricing

import "math"

const sqrt2Pi = 2.5066282746310002

// Price calculates the price of a European option using the Black-Scholes model.
//
// Parameters:
//   - isCall: true for call option, false for put option
//   - S: spot price of the underlying asset
//   - K: strike price of the option
//   - T: time to expiry in years
//   - r: risk-free interest rate (annual, continuously compounded)
//   - sigma: volatility of the underlying asset (annual, as a decimal)
//
// Returns:
//
//	The theoretical price of the option. If time to expiry or volatility is
//	zero or negative, returns the intrinsic value of the option.
//
// Note: This implementation uses the standard Black-Scholes formula for
// European options with zero dividend yield and relies on normCDF for the
// cumulative standard normal distribution function.
func Price(
	isCall bool,
	S float64, // spot
	K float64, // strike
	T float64, // time to expiry in years
	r float64, // risk-free rate
	sigma float64, // volatility
) float64 {

	if T <= 0 || sigma <= 0 {
		if isCall {
			return math.Max(0, S-K) // intrinsic fallback
		}
		return math.Max(0, K-S)
	}

	d1, d2 := dValues(S, K, T, r, sigma)

	if isCall {
		return S*normCDF(d1) - K*math.Exp(-r*T)*normCDF(d2)
	}
	return K*math.Exp(-r*T)*normCDF(-d2) - S*normCDF(-d1)
}

// Delta calculates the Black-Scholes delta of a European option: the
// sensitivity of the option price to a one-unit move in the underlying.
//
// Call deltas lie in [0, 1], put deltas in [-1, 0]. Returns 0 if T or
// sigma is non-positive.
func Delta(isCall bool, S, K, T, r, sigma float64) float64 {
	if T <= 0 || sigma <= 0 {
		return 0
	}

	d1, _ := dValues(S, K, T, r, sigma)
	if isCall {
		return normCDF(d1)
	}
	return normCDF(d1) - 1
}

// Gamma calculates the Black-Scholes gamma of a European option: the rate
// of change of delta with respect to the underlying price. The formula is
// identical for calls and puts and is always non-negative.
//
// Returns 0 if T or sigma is non-positive.
func Gamma(S, K, T, r, sigma float64) float64 {
	if T <= 0 || sigma <= 0 {
		return 0
	}

	d1, _ := dValues(S, K, T, r, sigma)
	return normPDF(d1) / (S * sigma * math.Sqrt(T))
}

// Theta calculates the Black-Scholes theta of a European option, expressed
// per calendar day (the annualized value divided by 365). Typically
// negative for long positions.
//
// Returns 0 if T or sigma is non-positive.
func Theta(isCall bool, S, K, T, r, sigma float64) float64 {
	if T <= 0 || sigma <= 0 {
		return 0
	}

	d1, d2 := dValues(S, K, T, r, sigma)
	decay := -S * sigma * normPDF(d1) / (2 * math.Sqrt(T))

	if isCall {
		return (decay - r*K*math.Exp(-r*T)*normCDF(d2)) / 365
	}
	return (decay + r*K*math.Exp(-r*T)*normCDF(-d2)) / 365
}

// Vega calculates the Black-Scholes vega of a European option, expressed
// per one-percentage-point change in volatility (the raw sensitivity
// divided by 100). The formula is identical for calls and puts and is
// always non-negative.
//
// Returns 0 if T or sigma is non-positive.
func Vega(S, K, T, r, sigma float64) float64 {
	if T <= 0 || sigma <= 0 {
		return 0
	}

	d1, _ := dValues(S, K, T, r, sigma)
	return S * math.Sqrt(T) * normPDF(d1) / 100
}

// dValues computes the d1 and d2 intermediates of the Black-Scholes
// formulas. Callers must guarantee T > 0 and sigma > 0.
func dValues(S, K, T, r, sigma float64) (d1, d2 float64) {
	d1 = (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * math.Sqrt(T))
	d2 = d1 - sigma*math.Sqrt(T)
	return d1, d2
}

// normPDF calculates the probability density function (PDF) of the standard
// normal distribution at x using exp(-0.5 * x^2) / sqrt(2π).
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / sqrt2Pi
}

// normCDF computes the cumulative distribution function of the standard
// normal distribution for a given value x using the error function.
// It returns a value between 0 and 1 representing the probability that a
// standard normal random variable is less than or equal to x.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}
