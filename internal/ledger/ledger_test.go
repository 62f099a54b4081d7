package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(typ TransactionType, code Reason, amount float64) Transaction {
	return Transaction{
		Date:       time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC),
		Symbol:     "AAPL",
		Type:       typ,
		Shares:     amount / 100,
		Price:      100,
		Amount:     amount,
		ReasonCode: code,
	}
}

func TestLedger_RecordAndAll(t *testing.T) {
	l := New()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.All())

	first := tx(TransactionBuy, ReasonInitial, 6000)
	second := tx(TransactionDCA, ReasonDCAPeriodic, 500)
	l.Record(first)
	l.Record(second)

	require.Equal(t, 2, l.Len())
	all := l.All()
	assert.Equal(t, ReasonInitial, all[0].ReasonCode)
	assert.Equal(t, ReasonDCAPeriodic, all[1].ReasonCode)
}

func TestLedger_AnalyzeEmpty(t *testing.T) {
	summary := New().Analyze()

	assert.Equal(t, 0, summary.Total)
	assert.Equal(t, 0, summary.BuyCount)
	assert.Equal(t, 0, summary.SellCount)
	assert.Empty(t, summary.ByReason)
}

func TestLedger_Analyze(t *testing.T) {
	l := New()
	l.Record(tx(TransactionBuy, ReasonInitial, 6000))
	l.Record(tx(TransactionBuy, ReasonInitial, 4000))
	l.Record(tx(TransactionDCA, ReasonDCAPeriodic, 500))
	l.Record(tx(TransactionDCA, ReasonPriceDrop, 1000))
	l.Record(tx(TransactionSell, ReasonRebalance, 1200))
	l.Record(tx(TransactionRebalance, ReasonRebalance, 1200))

	summary := l.Analyze()

	assert.Equal(t, 6, summary.Total)
	assert.Equal(t, 5, summary.BuyCount)
	assert.Equal(t, 1, summary.SellCount)
	assert.InDelta(t, 12700.0, summary.TotalBuyAmount, 1e-9)
	assert.InDelta(t, 1200.0, summary.TotalSellAmount, 1e-9)

	require.Len(t, summary.ByReason, 4)
	assert.Equal(t, 2, summary.ByReason[ReasonInitial].Count)
	assert.InDelta(t, 10000.0, summary.ByReason[ReasonInitial].TotalAmount, 1e-9)
	assert.Equal(t, 1, summary.ByReason[ReasonPriceDrop].Count)
	// Sells and rebalance buys share a reason code and are summed together.
	assert.Equal(t, 2, summary.ByReason[ReasonRebalance].Count)
	assert.InDelta(t, 2400.0, summary.ByReason[ReasonRebalance].TotalAmount, 1e-9)
}
