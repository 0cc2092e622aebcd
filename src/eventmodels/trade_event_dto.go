package eventmodels

import (
	"fmt"
	"strings"
	"time"
)

type TradeEventDTO struct {
	Ticker      string `csv:"Ticker"`
	TradeDate   string `csv:"Trade Date"`
	IndexChange string `csv:"Index Change"`
}

// tradeDateLayouts covers both ISO dates and the m/d/yyyy form that
// spreadsheet exports produce.
var tradeDateLayouts = []string{"2006-01-02", "1/2/2006", "01/02/2006"}

func (dto *TradeEventDTO) ToModel() (*TradeEvent, error) {
	ticker := strings.TrimSpace(dto.Ticker)
	if ticker == "" {
		return nil, fmt.Errorf("TradeEventDTO.ToModel: missing ticker")
	}

	dateStr := strings.TrimSpace(dto.TradeDate)

	var tradeDate time.Time
	var err error
	for _, layout := range tradeDateLayouts {
		tradeDate, err = time.Parse(layout, dateStr)
		if err == nil {
			break
		}
	}

	if err != nil {
		return nil, fmt.Errorf("TradeEventDTO.ToModel: failed to parse trade date %q: %w", dto.TradeDate, err)
	}

	return &TradeEvent{
		Ticker:      StockSymbol(ticker),
		TradeDate:   tradeDate,
		IndexChange: IndexChange(strings.TrimSpace(dto.IndexChange)),
	}, nil
}
