package eventmodels

import "time"

// FinancingRates is a piecewise-constant date -> annual percentage rate
// mapping. Dates without an observation are a valid, expected outcome.
type FinancingRates map[string]float64

func (r FinancingRates) RateOn(date time.Time) (float64, error) {
	rate, ok := r[DateKey(date)]
	if !ok {
		return 0, &MissingRateError{Date: date}
	}

	return rate, nil
}

func (r FinancingRates) Set(date time.Time, ratePercent float64) {
	r[DateKey(date)] = ratePercent
}
