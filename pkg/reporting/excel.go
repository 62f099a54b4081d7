package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/ducminhle1904/portfolio-backtest/internal/backtest"
)

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// WriteResultsXLSX writes a complete simulation output to a multi-sheet
// Excel workbook
func (r *DefaultExcelReporter) WriteResultsXLSX(output *backtest.SimulationOutput, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const summarySheet = "Summary"
	const seriesSheet = "Time Series"
	const transactionsSheet = "Transactions"
	const annualSheet = "Annual Returns"

	fx.SetSheetName(fx.GetSheetName(0), summarySheet)
	fx.NewSheet(seriesSheet)
	fx.NewSheet(transactionsSheet)
	fx.NewSheet(annualSheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeSummarySheet(fx, summarySheet, output, styles); err != nil {
		return err
	}
	if err := r.writeTimeSeriesSheet(fx, seriesSheet, output, styles); err != nil {
		return err
	}
	if err := r.writeTransactionsSheet(fx, transactionsSheet, output, styles); err != nil {
		return err
	}
	if err := r.writeAnnualSheet(fx, annualSheet, output, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

// createExcelStyles creates the shared cell styles for all sheets
func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	lightBorders := []excelize.Border{
		{Type: "left", Color: "E0E0E0", Style: 1},
		{Type: "right", Color: "E0E0E0", Style: 1},
		{Type: "bottom", Color: "E0E0E0", Style: 1},
	}

	// Header style - dark background with white text
	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return styles, err
	}

	// Currency style (right aligned, $ format)
	styles.CurrencyStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt:    7,
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    lightBorders,
	})
	if err != nil {
		return styles, err
	}

	// Percentage style (right aligned, % format)
	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt:    9,
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    lightBorders,
	})
	if err != nil {
		return styles, err
	}

	// Red percentage style for losses
	styles.RedPercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt:    9,
		Font:      &excelize.Font{Color: "FF0000"},
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    lightBorders,
	})
	if err != nil {
		return styles, err
	}

	// Green percentage style for gains
	styles.GreenPercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt:    9,
		Font:      &excelize.Font{Color: "008000"},
		Alignment: &excelize.Alignment{Horizontal: "right"},
		Border:    lightBorders,
	})
	if err != nil {
		return styles, err
	}

	// Base style (light borders)
	styles.BaseStyle, err = fx.NewStyle(&excelize.Style{
		Border: lightBorders,
	})
	if err != nil {
		return styles, err
	}

	// Summary label style (bold, light gray background)
	styles.SummaryStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"F0F0F0"},
			Pattern: 1,
		},
		Border: lightBorders,
	})
	if err != nil {
		return styles, err
	}

	return styles, nil
}

func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, output *backtest.SimulationOutput, styles ExcelStyles) error {
	fx.SetColWidth(sheet, "A", "A", 28)
	fx.SetColWidth(sheet, "B", "B", 20)

	type row struct {
		label string
		value interface{}
		style int
	}

	percentStyle := func(v float64) int {
		if v < 0 {
			return styles.RedPercentStyle
		}
		return styles.GreenPercentStyle
	}

	rows := []row{
		{"Run ID", output.RunID, styles.BaseStyle},
		{"Status", output.Status, styles.BaseStyle},
		{"Total Invested", output.TotalInvested, styles.CurrencyStyle},
		{"Final Value", output.FinalValue, styles.CurrencyStyle},
	}

	if m := output.RiskMetrics; m != nil {
		rows = append(rows,
			row{"Total Return", m.TotalReturnPct / 100, percentStyle(m.TotalReturnPct)},
			row{"Annualized Return", m.AnnualizedReturnPct / 100, percentStyle(m.AnnualizedReturnPct)},
			row{"Volatility", m.VolatilityPct / 100, styles.PercentStyle},
			row{"Max Drawdown", m.MaxDrawdownPct / 100, styles.RedPercentStyle},
			row{"Sharpe Ratio", m.SharpeRatio, styles.BaseStyle},
			row{"Sortino Ratio", m.SortinoRatio, styles.BaseStyle},
			row{"Positive Days", m.PositiveRatePct / 100, styles.PercentStyle},
		)
	}

	if impact := output.RebalancingImpact; impact != nil {
		rows = append(rows,
			row{"Rebalance Events", impact.RebalanceCount, styles.BaseStyle},
			row{"Rebalancing Benefit", impact.BenefitPct / 100, percentStyle(impact.BenefitPct)},
		)
	}

	if b := output.Benchmark; b != nil {
		rows = append(rows,
			row{"Benchmark", b.BenchmarkSymbol, styles.BaseStyle},
			row{"Benchmark Return", b.BenchmarkReturnPct / 100, percentStyle(b.BenchmarkReturnPct)},
			row{"Excess Return", b.ExcessReturnPct / 100, percentStyle(b.ExcessReturnPct)},
			row{"Information Ratio", b.InformationRatio, styles.BaseStyle},
		)
	}

	for i, item := range rows {
		labelCell := fmt.Sprintf("A%d", i+1)
		valueCell := fmt.Sprintf("B%d", i+1)
		fx.SetCellValue(sheet, labelCell, item.label)
		fx.SetCellStyle(sheet, labelCell, labelCell, styles.SummaryStyle)
		fx.SetCellValue(sheet, valueCell, item.value)
		fx.SetCellStyle(sheet, valueCell, valueCell, item.style)
	}

	return nil
}

func (r *DefaultExcelReporter) writeTimeSeriesSheet(fx *excelize.File, sheet string, output *backtest.SimulationOutput, styles ExcelStyles) error {
	headers := []string{"Date", "Value", "Cash", "Holdings Value"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		fx.SetCellValue(sheet, cell, header)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}
	fx.SetColWidth(sheet, "A", "A", 12)
	fx.SetColWidth(sheet, "B", "D", 16)

	for i, point := range output.TimeSeries {
		rowNum := i + 2
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), point.Date.Format("2006-01-02"))
		fx.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("A%d", rowNum), styles.BaseStyle)

		values := []float64{point.Value, point.Cash, point.HoldingsValue}
		for j, v := range values {
			cell := fmt.Sprintf("%c%d", 'B'+j, rowNum)
			fx.SetCellValue(sheet, cell, v)
			fx.SetCellStyle(sheet, cell, cell, styles.CurrencyStyle)
		}
	}

	return nil
}

func (r *DefaultExcelReporter) writeTransactionsSheet(fx *excelize.File, sheet string, output *backtest.SimulationOutput, styles ExcelStyles) error {
	headers := []string{"Date", "Symbol", "Type", "Shares", "Price", "Amount", "Reason Code", "Reason"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		fx.SetCellValue(sheet, cell, header)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}
	fx.SetColWidth(sheet, "A", "A", 12)
	fx.SetColWidth(sheet, "B", "C", 10)
	fx.SetColWidth(sheet, "D", "F", 14)
	fx.SetColWidth(sheet, "G", "G", 18)
	fx.SetColWidth(sheet, "H", "H", 50)

	for i, tx := range output.Transactions {
		rowNum := i + 2
		cells := []struct {
			value interface{}
			style int
		}{
			{tx.Date.Format("2006-01-02"), styles.BaseStyle},
			{tx.Symbol, styles.BaseStyle},
			{string(tx.Type), styles.BaseStyle},
			{tx.Shares, styles.BaseStyle},
			{tx.Price, styles.CurrencyStyle},
			{tx.Amount, styles.CurrencyStyle},
			{string(tx.ReasonCode), styles.BaseStyle},
			{tx.Reason, styles.BaseStyle},
		}
		for j, c := range cells {
			cell := fmt.Sprintf("%c%d", 'A'+j, rowNum)
			fx.SetCellValue(sheet, cell, c.value)
			fx.SetCellStyle(sheet, cell, cell, c.style)
		}
	}

	return nil
}

func (r *DefaultExcelReporter) writeAnnualSheet(fx *excelize.File, sheet string, output *backtest.SimulationOutput, styles ExcelStyles) error {
	headers := []string{"Year", "Start Value", "End Value", "Return", "Volatility"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		fx.SetCellValue(sheet, cell, header)
		fx.SetCellStyle(sheet, cell, cell, styles.HeaderStyle)
	}
	fx.SetColWidth(sheet, "A", "E", 14)

	for i, ar := range output.AnnualReturns {
		rowNum := i + 2

		returnStyle := styles.GreenPercentStyle
		if ar.AnnualReturn < 0 {
			returnStyle = styles.RedPercentStyle
		}

		cells := []struct {
			value interface{}
			style int
		}{
			{ar.Year, styles.BaseStyle},
			{ar.StartValue, styles.CurrencyStyle},
			{ar.EndValue, styles.CurrencyStyle},
			{ar.AnnualReturn / 100, returnStyle},
			{ar.Volatility / 100, styles.PercentStyle},
		}
		for j, c := range cells {
			cell := fmt.Sprintf("%c%d", 'A'+j, rowNum)
			fx.SetCellValue(sheet, cell, c.value)
			fx.SetCellStyle(sheet, cell, cell, c.style)
		}
	}

	return nil
}

// WriteResultsXLSX is a package-level convenience function
func WriteResultsXLSX(output *backtest.SimulationOutput, path string) error {
	reporter := NewDefaultExcelReporter()
	return reporter.WriteResultsXLSX(output, path)
}
