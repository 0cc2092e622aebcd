package eventservices

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	log "github.com/sirupsen/logrus"

	"github.com/jcarver-research/index-event-backtest/src/eventmodels"
)

// LoadTradeEvents reads the event-set CSV and converts each row to a typed
// TradeEvent. A row that cannot be parsed fails the whole load: the event
// set is the run's input of record, not a data feed with expected gaps.
func LoadTradeEvents(path string) ([]eventmodels.TradeEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &eventmodels.DataProviderError{Provider: "events", Err: fmt.Errorf("failed to open %s: %w", path, err)}
	}

	defer f.Close()

	var rows []*eventmodels.TradeEventDTO
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, &eventmodels.DataProviderError{Provider: "events", Err: fmt.Errorf("failed to unmarshal %s: %w", path, err)}
	}

	events := make([]eventmodels.TradeEvent, 0, len(rows))
	for i, row := range rows {
		event, err := row.ToModel()
		if err != nil {
			return nil, &eventmodels.DataProviderError{Provider: "events", Err: fmt.Errorf("row %d: %w", i+1, err)}
		}

		events = append(events, *event)
	}

	log.Infof("loaded %d events from %s", len(events), path)

	return events, nil
}

// FilterByIndex keeps events whose index-change category matches. The All
// filter passes everything through unchanged.
func FilterByIndex(events []eventmodels.TradeEvent, index eventmodels.IndexChange) []eventmodels.TradeEvent {
	if index == eventmodels.IndexChangeAll {
		return events
	}

	var filtered []eventmodels.TradeEvent
	for _, event := range events {
		if event.IndexChange == index {
			filtered = append(filtered, event)
		}
	}

	return filtered
}

// ExportSimulatedTrades writes trades to a CSV file in the order given.
func ExportSimulatedTrades(path string, trades []*eventmodels.SimulatedTrade) error {
	rows := make([]*eventmodels.SimulatedTradeDTO, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, t.ToDTO())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ExportSimulatedTrades: failed to create %s: %w", path, err)
	}

	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("ExportSimulatedTrades: failed to marshal %s: %w", path, err)
	}

	log.Infof("exported %d trades to %s", len(rows), path)

	return nil
}
