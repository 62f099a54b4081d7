package reporting

import (
	"path/filepath"

	"github.com/ducminhle1904/portfolio-backtest/internal/backtest"
)

// DefaultReporter implements the complete Reporter interface
type DefaultReporter struct {
	console *DefaultConsoleReporter
	csv     *DefaultCSVReporter
	excel   *DefaultExcelReporter
	json    *DefaultJSONFormatter
	paths   *DefaultPathManager
}

// NewDefaultReporter creates a new default reporter with all functionality
func NewDefaultReporter() *DefaultReporter {
	return &DefaultReporter{
		console: NewDefaultConsoleReporter(),
		csv:     NewDefaultCSVReporter(),
		excel:   NewDefaultExcelReporter(),
		json:    NewDefaultJSONFormatter(),
		paths:   NewDefaultPathManager(),
	}
}

// Console output methods
func (r *DefaultReporter) OutputResults(output *backtest.SimulationOutput) {
	r.console.OutputResults(output)
}

func (r *DefaultReporter) PrintConfigSummary(output *backtest.SimulationOutput) {
	r.console.PrintConfigSummary(output)
}

// File output methods
func (r *DefaultReporter) WriteTimeSeriesCSV(output *backtest.SimulationOutput, path string) error {
	return r.csv.WriteTimeSeriesCSV(output, path)
}

func (r *DefaultReporter) WriteTransactionsCSV(output *backtest.SimulationOutput, path string) error {
	return r.csv.WriteTransactionsCSV(output, path)
}

func (r *DefaultReporter) WriteResultsXLSX(output *backtest.SimulationOutput, path string) error {
	return r.excel.WriteResultsXLSX(output, path)
}

func (r *DefaultReporter) WriteResultsJSON(output *backtest.SimulationOutput, path string) error {
	return WriteResultsJSON(output, path)
}

// Path management methods
func (r *DefaultReporter) GetDefaultOutputDir(runID string) string {
	return r.paths.GetDefaultOutputDir(runID)
}

func (r *DefaultReporter) EnsureDirectoryExists(path string) error {
	return r.paths.EnsureDirectoryExists(path)
}

// ReportingManager provides a high-level interface for all reporting needs
type ReportingManager struct {
	reporter *DefaultReporter
	config   ReportingConfig
}

// NewReportingManager creates a new reporting manager with configuration
func NewReportingManager(config ReportingConfig) *ReportingManager {
	return &ReportingManager{
		reporter: NewDefaultReporter(),
		config:   config,
	}
}

// ReportResults outputs results according to configuration
func (m *ReportingManager) ReportResults(output *backtest.SimulationOutput) error {
	if m.config.EnableConsole {
		m.reporter.PrintConfigSummary(output)
		m.reporter.OutputResults(output)
	}

	if !m.config.EnableFiles {
		return nil
	}

	outputDir := m.config.OutputDirectory
	if outputDir == "" {
		outputDir = m.reporter.GetDefaultOutputDir(output.RunID)
	}

	if m.config.CSVEnabled {
		if err := m.reporter.WriteTimeSeriesCSV(output, filepath.Join(outputDir, "time_series.csv")); err != nil {
			return err
		}
		if err := m.reporter.WriteTransactionsCSV(output, filepath.Join(outputDir, "transactions.csv")); err != nil {
			return err
		}
	}

	if m.config.ExcelEnabled {
		if err := m.reporter.WriteResultsXLSX(output, filepath.Join(outputDir, "results.xlsx")); err != nil {
			return err
		}
	}

	if m.config.JSONEnabled {
		if err := m.reporter.WriteResultsJSON(output, filepath.Join(outputDir, "results.json")); err != nil {
			return err
		}
	}

	return nil
}
