package eventservices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

const nyFedBaseURL = "https://markets.newyorkfed.org/api/rates/unsecured/effr/search.json"

// fundingSpreadPercent is added on top of the published EFFR to model the
// broker's funding rate over the reference rate.
const fundingSpreadPercent = 1.25

type nyFedRefRate struct {
	EffectiveDate string  `json:"effectiveDate"`
	PercentRate   float64 `json:"percentRate"`
}

type nyFedResponse struct {
	RefRates []nyFedRefRate `json:"refRates"`
}

// NYFedRateProvider serves the effective federal funds rate, fetched from
// the NY Fed markets API for a fixed date range and cached for the life of
// the provider. Dates without a published rate (weekends, holidays) yield
// a MissingRateError.
type NYFedRateProvider struct {
	baseURL   string
	startDate time.Time
	endDate   time.Time

	mu    sync.Mutex
	rates eventmodels.FinancingRates
}

func NewNYFedRateProvider(startDate, endDate time.Time) *NYFedRateProvider {
	return &NYFedRateProvider{
		baseURL:   nyFedBaseURL,
		startDate: startDate,
		endDate:   endDate,
	}
}

// NewNYFedRateProviderWithURL points the provider at a non-default
// endpoint. Used by tests.
func NewNYFedRateProviderWithURL(baseURL string, startDate, endDate time.Time) *NYFedRateProvider {
	return &NYFedRateProvider{
		baseURL:   baseURL,
		startDate: startDate,
		endDate:   endDate,
	}
}

func (p *NYFedRateProvider) fetch(ctx context.Context) (eventmodels.FinancingRates, error) {
	requestURL, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("NYFedRateProvider.fetch: failed to parse base URL: %w", err)
	}

	q := requestURL.Query()
	q.Add("startDate", p.startDate.Format("2006-01-02"))
	q.Add("endDate", p.endDate.Format("2006-01-02"))
	q.Add("type", "rate")
	requestURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("NYFedRateProvider.fetch: failed to create request: %w", err)
	}

	req.Header.Add("Accept", "application/json")

	log.Infof("fetching effr rates from %v", requestURL.String())

	client := http.Client{
		Timeout: 10 * time.Second,
	}

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("NYFedRateProvider.fetch: failed to fetch rates: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NYFedRateProvider.fetch: failed to fetch rates, http code %v", res.Status)
	}

	var dto nyFedResponse
	if err := json.NewDecoder(res.Body).Decode(&dto); err != nil {
		return nil, fmt.Errorf("NYFedRateProvider.fetch: failed to decode json: %w", err)
	}

	rates := make(eventmodels.FinancingRates, len(dto.RefRates))
	for _, refRate := range dto.RefRates {
		date, err := time.Parse("2006-01-02", refRate.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("NYFedRateProvider.fetch: failed to parse effective date %q: %w", refRate.EffectiveDate, err)
		}

		rates.Set(date, refRate.PercentRate+fundingSpreadPercent)
	}

	log.Infof("loaded %d effr observations", len(rates))

	return rates, nil
}

// RateOn returns the annual financing rate (percent) in effect on the
// given date, fetching the full range on first use.
func (p *NYFedRateProvider) RateOn(ctx context.Context, date time.Time) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.rates == nil {
		rates, err := p.fetch(ctx)
		if err != nil {
			return 0, &eventmodels.DataProviderError{Provider: "nyfed", Err: err}
		}

		p.rates = rates
	}

	return p.rates.RateOn(date)
}

// Preload fetches the rate table up front.
func (p *NYFedRateProvider) Preload(ctx context.Context) error {
	_, err := p.RateOn(ctx, p.startDate)

	// the start date itself may be a non-business day
	var missingRate *eventmodels.MissingRateError
	if errors.As(err, &missingRate) {
		return nil
	}

	return err
}
