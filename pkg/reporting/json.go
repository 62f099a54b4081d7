package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ducminhle1904/portfolio-backtest/internal/backtest"
)

// DefaultJSONFormatter implements JSON output functionality
type DefaultJSONFormatter struct{}

// NewDefaultJSONFormatter creates a new JSON formatter
func NewDefaultJSONFormatter() *DefaultJSONFormatter {
	return &DefaultJSONFormatter{}
}

// FormatResults formats a simulation output as indented JSON bytes
func (f *DefaultJSONFormatter) FormatResults(output *backtest.SimulationOutput) ([]byte, error) {
	return json.MarshalIndent(output, "", "  ")
}

// PrintResults prints a simulation output as JSON to the console
func (f *DefaultJSONFormatter) PrintResults(output *backtest.SimulationOutput) {
	data, _ := f.FormatResults(output)
	fmt.Println(string(data))
}

// WriteResultsJSON writes a simulation output to a JSON file
func WriteResultsJSON(output *backtest.SimulationOutput, path string) error {
	formatter := NewDefaultJSONFormatter()

	data, err := formatter.FormatResults(output)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}
