package eventmodels

import "time"

// Candle is one daily bar. A NaN open or close marks a date the vendor
// reported without a usable fill price.
type Candle struct {
	Date   time.Time
	Open   float64
	Close  float64
	Volume float64
}
