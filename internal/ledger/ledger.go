// Package ledger records every simulated trade in an append-only structure
// so capital deployment can be explained after a run.
package ledger

import "time"

// TransactionType classifies a ledger entry
type TransactionType string

const (
	TransactionBuy       TransactionType = "buy"
	TransactionSell      TransactionType = "sell"
	TransactionRebalance TransactionType = "rebalance"
	TransactionDCA       TransactionType = "dca"
)

// Reason identifies why capital was deployed
type Reason string

const (
	ReasonInitial         Reason = "initial"
	ReasonRebalance       Reason = "rebalance"
	ReasonDCAPeriodic     Reason = "dca_periodic"
	ReasonPriceDrop       Reason = "price_drop"
	ReasonDrawdown        Reason = "drawdown"
	ReasonVIXHigh         Reason = "vix_high"
	ReasonRSIOversold     Reason = "rsi_oversold"
	ReasonMACDGoldenCross Reason = "macd_golden_cross"
	ReasonSupportLevel    Reason = "support_level"
)

// Transaction is one buy/sell event with contextual metadata.
// Never mutated after creation.
type Transaction struct {
	Date                 time.Time              `json:"date"`
	Symbol               string                 `json:"symbol"`
	Type                 TransactionType        `json:"type"`
	Shares               float64                `json:"shares"`
	Price                float64                `json:"price"`
	Amount               float64                `json:"amount"`
	Reason               string                 `json:"reason"`
	ReasonCode           Reason                 `json:"reason_code"`
	Details              map[string]interface{} `json:"details,omitempty"`
	PortfolioValueBefore float64                `json:"portfolio_value_before"`
	PortfolioValueAfter  float64                `json:"portfolio_value_after"`
}

// Ledger is an append-only record of transactions. A ledger belongs to a
// single simulation run; runs never share one.
type Ledger struct {
	transactions []Transaction
}

// New creates an empty ledger
func New() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
	}
}

// Record appends a transaction to the ledger
func (l *Ledger) Record(tx Transaction) {
	l.transactions = append(l.transactions, tx)
}

// All returns the recorded transactions in insertion order
func (l *Ledger) All() []Transaction {
	return l.transactions
}

// Len returns the number of recorded transactions
func (l *Ledger) Len() int {
	return len(l.transactions)
}

// ReasonStats aggregates transactions sharing a reason code
type ReasonStats struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}

// Summary is the aggregate view of a ledger
type Summary struct {
	Total           int                    `json:"total_transactions"`
	BuyCount        int                    `json:"buy_count"`
	SellCount       int                    `json:"sell_count"`
	TotalBuyAmount  float64                `json:"total_buy_amount"`
	TotalSellAmount float64                `json:"total_sell_amount"`
	ByReason        map[Reason]ReasonStats `json:"reason_statistics"`
}

// Analyze aggregates the ledger by transaction type and reason code
func (l *Ledger) Analyze() Summary {
	summary := Summary{
		ByReason: make(map[Reason]ReasonStats),
	}

	for _, tx := range l.transactions {
		summary.Total++

		switch tx.Type {
		case TransactionSell:
			summary.SellCount++
			summary.TotalSellAmount += tx.Amount
		default:
			// buy, rebalance and dca entries all deploy capital
			summary.BuyCount++
			summary.TotalBuyAmount += tx.Amount
		}

		stats := summary.ByReason[tx.ReasonCode]
		stats.Count++
		stats.TotalAmount += tx.Amount
		summary.ByReason[tx.ReasonCode] = stats
	}

	return summary
}
