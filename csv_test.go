package main

import (
	"strings"
	"testing"
	"time"
)

// CSV Export Test Suite
//
// The CSV export is the only projection output meant for other programs, so
// its shape is pinned down exactly: a fixed header record, then one record
// per year with every money value at two decimal places. Because the
// projection itself rounds to cents, export followed by parse reproduces the
// outcomes bit for bit.

// =============================================================================
// Exact Output Shape
// =============================================================================

func TestProjectionCSV_ExactOutput(t *testing.T) {
	a := Assumptions{
		HorizonYears:     2,
		MarketReturnRate: 0.10,
		SaleProceeds:     1000,
		AnnualRent:       100,
	}
	data, err := ProjectionCSV(RunProjection(a))
	if err != nil {
		t.Fatalf("ProjectionCSV failed: %v", err)
	}

	want := "year,sellStrategyValue,holdPropertyValue,holdCashValue,holdNetValue,delta\n" +
		"1,1100.00,0.00,100.00,100.00,-1000.00\n" +
		"2,1210.00,0.00,200.00,200.00,-1010.00\n"
	if got := string(data); got != want {
		t.Errorf("CSV output mismatch:\n  got:\n%s\n  want:\n%s", got, want)
	}
}

func TestProjectionCSV_EmptyProjectionIsHeaderOnly(t *testing.T) {
	data, err := ProjectionCSV(nil)
	if err != nil {
		t.Fatalf("ProjectionCSV(nil) failed: %v", err)
	}

	want := strings.Join(csvHeader, ",") + "\n"
	if got := string(data); got != want {
		t.Errorf("empty projection CSV = %q, want header only %q", got, want)
	}
}

// =============================================================================
// Round Trips
// =============================================================================

func TestInvariant_CSVRoundTripIsExact(t *testing.T) {
	// Property: parse(export(outcomes)) == outcomes. Every value in an
	// outcome is already rounded to cents, and two fixed decimals represent
	// cents exactly.
	outcomes := RunProjection(DefaultAssumptions())
	if len(outcomes) == 0 {
		t.Fatal("default projection is empty")
	}

	data, err := ProjectionCSV(outcomes)
	if err != nil {
		t.Fatalf("ProjectionCSV failed: %v", err)
	}
	parsed, err := ParseProjectionCSV(data)
	if err != nil {
		t.Fatalf("ParseProjectionCSV failed: %v", err)
	}

	if len(parsed) != len(outcomes) {
		t.Fatalf("round trip changed row count: got %d, want %d", len(parsed), len(outcomes))
	}
	for i := range outcomes {
		if parsed[i] != outcomes[i] {
			t.Errorf("year %d changed in round trip:\n  got  %+v\n  want %+v", outcomes[i].Year, parsed[i], outcomes[i])
		}
	}
}

// =============================================================================
// Malformed Input
// =============================================================================

func TestParseProjectionCSV_RejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty input", ""},
		{"wrong header", "yr,sell,property,cash,net,delta\n1,1.00,2.00,3.00,4.00,5.00\n"},
		{"reordered header", "year,holdPropertyValue,sellStrategyValue,holdCashValue,holdNetValue,delta\n"},
		{"non-numeric year", "year,sellStrategyValue,holdPropertyValue,holdCashValue,holdNetValue,delta\none,1.00,2.00,3.00,4.00,5.00\n"},
		{"non-numeric money", "year,sellStrategyValue,holdPropertyValue,holdCashValue,holdNetValue,delta\n1,lots,2.00,3.00,4.00,5.00\n"},
		{"short record", "year,sellStrategyValue,holdPropertyValue,holdCashValue,holdNetValue,delta\n1,1.00,2.00\n"},
		{"long record", "year,sellStrategyValue,holdPropertyValue,holdCashValue,holdNetValue,delta\n1,1.00,2.00,3.00,4.00,5.00,6.00\n"},
	}

	for _, tc := range cases {
		if _, err := ParseProjectionCSV([]byte(tc.data)); err == nil {
			t.Errorf("%s: expected an error, got none", tc.name)
		}
	}
}

// =============================================================================
// Filenames
// =============================================================================

func TestExportCSVFilename(t *testing.T) {
	now := time.Date(2026, time.March, 9, 14, 30, 5, 0, time.UTC)
	if got, want := exportCSVFilename(now), "rent-or-sell-2026-03-09-143005.csv"; got != want {
		t.Errorf("exportCSVFilename = %q, want %q", got, want)
	}
}
