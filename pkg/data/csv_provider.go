package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ducminhle1904/portfolio-backtest/pkg/types"
)

// CSVProvider implements Provider for per-symbol CSV files located under a
// data root directory (<root>/<SYMBOL>.csv).
type CSVProvider struct {
	root   string
	format CSVColumnMapping
}

// NewCSVProvider creates a new CSV data provider with the default format
func NewCSVProvider(root string) *CSVProvider {
	return &CSVProvider{
		root:   root,
		format: DefaultCSVFormat,
	}
}

// NewCSVProviderWithFormat creates a new CSV data provider with a custom format
func NewCSVProviderWithFormat(root string, format CSVColumnMapping) *CSVProvider {
	return &CSVProvider{
		root:   root,
		format: format,
	}
}

// GetName returns the name of the data provider
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// GetSeries loads the price series for one symbol within [start, end]
func (p *CSVProvider) GetSeries(symbol string, start, end time.Time) ([]types.PriceBar, error) {
	path := filepath.Join(p.root, strings.ToUpper(symbol)+".csv")

	bars, err := p.loadFile(path)
	if err != nil {
		return nil, err
	}

	bars = FilterByDateRange(bars, start, end)
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s in [%s, %s]: %w",
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"), ErrNoData)
	}

	if err := ValidateTimeSequence(bars); err != nil {
		return nil, fmt.Errorf("invalid series for %s: %w", symbol, err)
	}

	return bars, nil
}

// loadFile parses one CSV file into price bars, skipping malformed rows
func (p *CSVProvider) loadFile(path string) ([]types.PriceBar, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoData)
		}
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, err
	}

	format := p.format
	var bars []types.PriceBar

	lineNum := 1 // already read header
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("error reading CSV at line %d: %v", lineNum, err)
		}
		lineNum++

		if len(record) < format.MinColumns {
			log.Printf("⚠️ Insufficient columns at line %d (expected %d, got %d), skipping", lineNum, format.MinColumns, len(record))
			continue
		}

		date, err := time.Parse(format.DateFormat, record[format.DateCol])
		if err != nil {
			log.Printf("⚠️ Invalid date '%s' at line %d, skipping: %v", record[format.DateCol], lineNum, err)
			continue
		}

		open, err := strconv.ParseFloat(record[format.OpenCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid open price '%s' at line %d, skipping: %v", record[format.OpenCol], lineNum, err)
			continue
		}

		high, err := strconv.ParseFloat(record[format.HighCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid high price '%s' at line %d, skipping: %v", record[format.HighCol], lineNum, err)
			continue
		}

		low, err := strconv.ParseFloat(record[format.LowCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid low price '%s' at line %d, skipping: %v", record[format.LowCol], lineNum, err)
			continue
		}

		closePrice, err := strconv.ParseFloat(record[format.CloseCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid close price '%s' at line %d, skipping: %v", record[format.CloseCol], lineNum, err)
			continue
		}

		volume, err := strconv.ParseFloat(record[format.VolumeCol], 64)
		if err != nil {
			log.Printf("⚠️ Invalid volume '%s' at line %d, skipping: %v", record[format.VolumeCol], lineNum, err)
			continue
		}

		if open <= 0 || high <= 0 || low <= 0 || closePrice <= 0 {
			log.Printf("⚠️ Invalid price data (negative or zero) at line %d, skipping", lineNum)
			continue
		}

		if high < open || high < closePrice || high < low {
			log.Printf("⚠️ High price is lower than other prices at line %d, skipping", lineNum)
			continue
		}

		if low > open || low > closePrice || low > high {
			log.Printf("⚠️ Low price is higher than other prices at line %d, skipping", lineNum)
			continue
		}

		bars = append(bars, types.PriceBar{
			Date:   date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
	}

	return bars, nil
}
