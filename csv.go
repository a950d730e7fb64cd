package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// csvDownloadFilename is the fixed name the browser download uses.
const csvDownloadFilename = "rent-or-sell-projection.csv"

// csvHeader is the first record of every projection CSV. Column order matches
// the yearly outcome fields.
var csvHeader = []string{"year", "sellStrategyValue", "holdPropertyValue", "holdCashValue", "holdNetValue", "delta"}

// ProjectionCSV renders the projection as CSV: one header record, then one
// record per year with all money values at two decimal places.
func ProjectionCSV(outcomes []YearlyOutcome) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, o := range outcomes {
		record := []string{
			strconv.Itoa(o.Year),
			formatCSVMoney(o.SellStrategyValue),
			formatCSVMoney(o.HoldPropertyValue),
			formatCSVMoney(o.HoldCashValue),
			formatCSVMoney(o.HoldNetValue),
			formatCSVMoney(o.Delta),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing CSV year %d: %w", o.Year, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func formatCSVMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ParseProjectionCSV reads a projection CSV produced by ProjectionCSV back
// into yearly outcomes. The header record is required.
func ParseProjectionCSV(data []byte) ([]YearlyOutcome, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(csvHeader)

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("projection CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	for i, name := range csvHeader {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected CSV column %d: got %q, want %q", i, header[i], name)
		}
	}

	var outcomes []YearlyOutcome
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV record: %w", err)
		}

		year, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("parsing year %q: %w", record[0], err)
		}
		values := make([]float64, len(record)-1)
		for i, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %s for year %d: %w", csvHeader[i+1], year, err)
			}
			values[i] = v
		}

		outcomes = append(outcomes, YearlyOutcome{
			Year:              year,
			SellStrategyValue: values[0],
			HoldPropertyValue: values[1],
			HoldCashValue:     values[2],
			HoldNetValue:      values[3],
			Delta:             values[4],
		})
	}
	return outcomes, nil
}

// exportCSVFilename names saved CSV exports so repeated saves never collide.
func exportCSVFilename(now time.Time) string {
	return fmt.Sprintf("rent-or-sell-%s.csv", now.Format("2006-01-02-150405"))
}
