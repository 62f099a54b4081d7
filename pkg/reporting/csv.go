package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ducminhle1904/portfolio-backtest/internal/backtest"
)

// DefaultCSVReporter implements CSV output functionality
type DefaultCSVReporter struct{}

// NewDefaultCSVReporter creates a new CSV reporter
func NewDefaultCSVReporter() *DefaultCSVReporter {
	return &DefaultCSVReporter{}
}

// WriteTimeSeriesCSV writes the daily portfolio valuation to a CSV file
func (r *DefaultCSVReporter) WriteTimeSeriesCSV(output *backtest.SimulationOutput, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Value", "Cash", "Holdings_Value"}); err != nil {
		return err
	}

	for _, point := range output.TimeSeries {
		row := []string{
			point.Date.Format("2006-01-02"),
			fmt.Sprintf("%.2f", point.Value),
			fmt.Sprintf("%.2f", point.Cash),
			fmt.Sprintf("%.2f", point.HoldingsValue),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// WriteTransactionsCSV writes the transaction ledger to a CSV file
func (r *DefaultCSVReporter) WriteTransactionsCSV(output *backtest.SimulationOutput, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{
		"Date",
		"Symbol",
		"Type",
		"Shares",
		"Price",
		"Amount",
		"Reason_Code",
		"Reason",
		"Value_Before",
		"Value_After",
	}); err != nil {
		return err
	}

	var totalBought, totalSold float64
	for _, tx := range output.Transactions {
		if tx.Type == "sell" {
			totalSold += tx.Amount
		} else {
			totalBought += tx.Amount
		}

		row := []string{
			tx.Date.Format("2006-01-02"),
			tx.Symbol,
			string(tx.Type),
			fmt.Sprintf("%.6f", tx.Shares),
			fmt.Sprintf("%.4f", tx.Price),
			fmt.Sprintf("%.2f", tx.Amount),
			string(tx.ReasonCode),
			tx.Reason,
			fmt.Sprintf("%.2f", tx.PortfolioValueBefore),
			fmt.Sprintf("%.2f", tx.PortfolioValueAfter),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("SUMMARY: total_bought=$%.2f; total_sold=$%.2f; total_transactions=%d",
		totalBought, totalSold, len(output.Transactions))

	summaryRow := make([]string, 10)
	summaryRow[9] = summary
	return w.Write(summaryRow)
}

// WriteTimeSeriesCSVOrExcel delegates to the Excel writer when the path has
// an .xlsx extension
func (r *DefaultCSVReporter) WriteTimeSeriesCSVOrExcel(output *backtest.SimulationOutput, path string) error {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return WriteResultsXLSX(output, path)
	}
	return r.WriteTimeSeriesCSV(output, path)
}
