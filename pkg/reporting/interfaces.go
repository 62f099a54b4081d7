package reporting

import (
	"github.com/ducminhle1904/portfolio-backtest/internal/backtest"
)

// Package reporting provides output generation for simulation results

// ConsoleReporter defines interface for console output
type ConsoleReporter interface {
	OutputResults(output *backtest.SimulationOutput)
	PrintConfigSummary(output *backtest.SimulationOutput)
}

// FileReporter defines interface for file output
type FileReporter interface {
	WriteTimeSeriesCSV(output *backtest.SimulationOutput, path string) error
	WriteTransactionsCSV(output *backtest.SimulationOutput, path string) error
	WriteResultsXLSX(output *backtest.SimulationOutput, path string) error
	WriteResultsJSON(output *backtest.SimulationOutput, path string) error
}

// PathManager defines interface for output path management
type PathManager interface {
	GetDefaultOutputDir(runID string) string
	EnsureDirectoryExists(path string) error
}

// Reporter combines all reporting interfaces
type Reporter interface {
	ConsoleReporter
	FileReporter
	PathManager
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle       int
	CurrencyStyle     int
	PercentStyle      int
	BaseStyle         int
	RedPercentStyle   int
	GreenPercentStyle int
	SummaryStyle      int
}

// ReportingConfig holds configuration for reporting
type ReportingConfig struct {
	EnableConsole   bool
	EnableFiles     bool
	OutputDirectory string
	ExcelEnabled    bool
	CSVEnabled      bool
	JSONEnabled     bool
}
