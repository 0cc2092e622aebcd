package eventmodels

import "fmt"

type SimulatedTradeDTO struct {
	Ticker            string `csv:"Ticker"`
	EntryDate         string `csv:"Entry Date"`
	ExitDate          string `csv:"Exit Date"`
	HoldingPeriodDays int    `csv:"Holding Period (Days)"`
	EntryPrice        string `csv:"Entry Price"`
	ExitPrice         string `csv:"Exit Price"`
	Shares            int64  `csv:"Shares"`
	GrossPnl          string `csv:"PnL"`
	TransactionCost   string `csv:"Transaction Costs"`
	FinancingCost     string `csv:"Financing Costs"`
	HedgePnl          string `csv:"Hedge PnL"`
	NetPnl            string `csv:"Net PnL"`
}

func (t *SimulatedTrade) ToDTO() *SimulatedTradeDTO {
	hedge := ""
	if t.HedgePnl != nil {
		hedge = fmt.Sprintf("%.2f", *t.HedgePnl)
	}

	return &SimulatedTradeDTO{
		Ticker:            t.Ticker.String(),
		EntryDate:         DateKey(t.EntryDate),
		ExitDate:          DateKey(t.ExitDate),
		HoldingPeriodDays: t.HoldingPeriodDays,
		EntryPrice:        fmt.Sprintf("%.4f", t.EntryPrice),
		ExitPrice:         fmt.Sprintf("%.4f", t.ExitPrice),
		Shares:            t.Shares,
		GrossPnl:          fmt.Sprintf("%.2f", t.GrossPnl),
		TransactionCost:   fmt.Sprintf("%.2f", t.TransactionCost),
		FinancingCost:     fmt.Sprintf("%.2f", t.FinancingCost),
		HedgePnl:          hedge,
		NetPnl:            fmt.Sprintf("%.2f", t.NetPnl),
	}
}
