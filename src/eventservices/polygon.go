package eventservices

import (
	"context"
	"fmt"
	"sync"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	log "github.com/sirupsen/logrus"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

// PolygonPriceProvider fetches daily aggregate bars from the polygon.io
// REST API, scoped to a fixed date range. Fetched series are cached so the
// simulation loop never repeats a network call.
type PolygonPriceProvider struct {
	client   *polygon.Client
	fromDate time.Time
	toDate   time.Time

	mu    sync.Mutex
	cache map[eventmodels.StockSymbol]*eventmodels.PriceSeries
}

func NewPolygonPriceProvider(apiKey string, fromDate, toDate time.Time) *PolygonPriceProvider {
	return &PolygonPriceProvider{
		client:   polygon.New(apiKey),
		fromDate: fromDate,
		toDate:   toDate,
		cache:    make(map[eventmodels.StockSymbol]*eventmodels.PriceSeries),
	}
}

func (p *PolygonPriceProvider) fetch(ctx context.Context, symbol eventmodels.StockSymbol) (*eventmodels.PriceSeries, error) {
	log.Debugf("fetching daily bars for %s from polygon", symbol)

	params := models.ListAggsParams{
		Ticker:     symbol.String(),
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(p.fromDate),
		To:         models.Millis(p.toDate),
	}.WithOrder(models.Asc).WithAdjusted(false)

	iter := p.client.ListAggs(ctx, params)

	var candles []eventmodels.Candle
	for iter.Next() {
		item := iter.Item()

		candles = append(candles, eventmodels.Candle{
			Date:   time.Time(item.Timestamp).UTC(),
			Open:   item.Open,
			Close:  item.Close,
			Volume: item.Volume,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, &eventmodels.DataProviderError{
			Provider: "polygon",
			Err:      fmt.Errorf("failed to fetch aggs for %s: %w", symbol, err),
		}
	}

	return eventmodels.NewPriceSeries(symbol, candles)
}

// DailySeries returns the cached series for symbol, fetching it on first
// use. An empty series means the vendor had no data for the range.
func (p *PolygonPriceProvider) DailySeries(ctx context.Context, symbol eventmodels.StockSymbol) (*eventmodels.PriceSeries, error) {
	p.mu.Lock()
	series, ok := p.cache[symbol]
	p.mu.Unlock()

	if ok {
		return series, nil
	}

	series, err := p.fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	p.cache[symbol] = series
	p.mu.Unlock()

	return series, nil
}

// Preload fetches all symbols up front so the simulation loop runs against
// warm caches.
func (p *PolygonPriceProvider) Preload(ctx context.Context, symbols []eventmodels.StockSymbol) error {
	for _, symbol := range symbols {
		if _, err := p.DailySeries(ctx, symbol); err != nil {
			return err
		}
	}

	return nil
}
