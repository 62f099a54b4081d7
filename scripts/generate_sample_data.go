package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Generates deterministic synthetic daily OHLCV files in the CSV layout the
// simulator reads. Useful for trying the tool without a market data feed.

func main() {
	var (
		symbols   = flag.String("symbols", "AAPL,MSFT,SPY", "Comma-separated list of symbols")
		outdir    = flag.String("outdir", "data", "Directory to write CSV files")
		startDate = flag.String("start", "2018-01-01", "Start date (YYYY-MM-DD)")
		endDate   = flag.String("end", "2023-12-31", "End date (YYYY-MM-DD)")
		seed      = flag.Int64("seed", 42, "Random seed (same seed reproduces the same series)")
		drift     = flag.Float64("drift", 0.0003, "Mean daily log return")
		vol       = flag.Float64("vol", 0.015, "Daily log return standard deviation")
	)

	flag.Parse()

	start, err := time.Parse("2006-01-02", *startDate)
	if err != nil {
		log.Fatalf("❌ Invalid start date: %v", err)
	}
	end, err := time.Parse("2006-01-02", *endDate)
	if err != nil {
		log.Fatalf("❌ Invalid end date: %v", err)
	}
	if !start.Before(end) {
		log.Fatalf("❌ Start date must be before end date")
	}

	if err := os.MkdirAll(*outdir, 0755); err != nil {
		log.Fatalf("❌ Could not create output directory: %v", err)
	}

	for i, symbol := range strings.Split(*symbols, ",") {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}

		// Independent stream per symbol so adding a symbol does not
		// shift the others.
		rng := rand.New(rand.NewSource(*seed + int64(i)))

		path := filepath.Join(*outdir, symbol+".csv")
		if err := writeSeries(path, start, end, rng, *drift, *vol); err != nil {
			log.Fatalf("❌ Failed to write %s: %v", path, err)
		}
		fmt.Printf("✅ Wrote %s\n", path)
	}
}

func writeSeries(path string, start, end time.Time, rng *rand.Rand, drift, vol float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Open", "High", "Low", "Close", "Volume"}); err != nil {
		return err
	}

	price := 50.0 + rng.Float64()*200.0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}

		open := price
		price = price * math.Exp(drift+vol*rng.NormFloat64())
		high := math.Max(open, price) * (1 + 0.003*rng.Float64())
		low := math.Min(open, price) * (1 - 0.003*rng.Float64())
		volume := 1_000_000 + rng.Float64()*9_000_000

		row := []string{
			d.Format("2006-01-02"),
			fmt.Sprintf("%.4f", open),
			fmt.Sprintf("%.4f", high),
			fmt.Sprintf("%.4f", low),
			fmt.Sprintf("%.4f", price),
			fmt.Sprintf("%.0f", volume),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}
