package main

// MarketPreset represents an investable market benchmark with historical
// return data, used to fill the market return and reinvestment rate fields.
type MarketPreset struct {
	ID            string  // Unique identifier (e.g., "sp500")
	Name          string  // Full name (e.g., "S&P 500")
	ShortName     string  // Short display name
	Region        string  // Region group (e.g., "US", "Global")
	AnnualReturn  float64 // Long-term annualized return as decimal (0.10 = 10%)
	Volatility    string  // "low", "medium", "high"
	Description   string  // Brief description
	InceptionYear int     // Year the benchmark was created
}

// MarketPresets contains all available market benchmarks
// Data as of end 2024
// Sources: MSCI, FTSE Russell, S&P Dow Jones Indices, Bloomberg, Morningstar
// Note: Returns are nominal (not inflation-adjusted). Real returns typically 2-3% lower.
// Past performance does not guarantee future results.
var MarketPresets = []MarketPreset{
	// US benchmarks
	{
		ID:            "sp500",
		Name:          "S&P 500",
		ShortName:     "S&P 500",
		Region:        "US",
		AnnualReturn:  0.104,
		Volatility:    "medium",
		Description:   "US large cap - 500 largest companies",
		InceptionYear: 1957,
	},
	{
		ID:            "nasdaq",
		Name:          "NASDAQ Composite",
		ShortName:     "NASDAQ",
		Region:        "US",
		AnnualReturn:  0.105,
		Volatility:    "high",
		Description:   "US tech-heavy - higher growth, more volatile",
		InceptionYear: 1971,
	},
	{
		ID:            "dowJones",
		Name:          "Dow Jones Industrial Average",
		ShortName:     "Dow Jones",
		Region:        "US",
		AnnualReturn:  0.075,
		Volatility:    "medium",
		Description:   "US blue chip - 30 large industrial companies",
		InceptionYear: 1896,
	},

	// Global benchmarks
	{
		ID:            "msciWorld",
		Name:          "MSCI World",
		ShortName:     "MSCI World",
		Region:        "Global",
		AnnualReturn:  0.085,
		Volatility:    "medium",
		Description:   "Developed markets - ~1,500 companies, 23 countries",
		InceptionYear: 1970,
	},
	{
		ID:            "ftseAllWorld",
		Name:          "FTSE All-World",
		ShortName:     "All-World",
		Region:        "Global",
		AnnualReturn:  0.080,
		Volatility:    "medium",
		Description:   "Global all markets - ~4,000 companies, 50 countries",
		InceptionYear: 2000,
	},

	// UK benchmarks
	{
		ID:            "ftse100",
		Name:          "FTSE 100",
		ShortName:     "FTSE 100",
		Region:        "UK",
		AnnualReturn:  0.074,
		Volatility:    "medium",
		Description:   "UK large cap - top 100 companies",
		InceptionYear: 1984,
	},

	// Bonds and mixed portfolios
	{
		ID:            "usBonds",
		Name:          "US Aggregate Bonds",
		ShortName:     "US Bonds",
		Region:        "Bonds & Mixed",
		AnnualReturn:  0.046,
		Volatility:    "low",
		Description:   "US investment-grade bonds - Bloomberg Aggregate",
		InceptionYear: 1976,
	},
	{
		ID:            "balanced6040",
		Name:          "Balanced 60/40 Portfolio",
		ShortName:     "60/40",
		Region:        "Bonds & Mixed",
		AnnualReturn:  0.082,
		Volatility:    "low",
		Description:   "Classic mix - 60% global stocks, 40% bonds",
		InceptionYear: 1976,
	},
}

// presetRegionOrder fixes the display order of region groups.
var presetRegionOrder = []string{"US", "Global", "UK", "Bonds & Mixed"}

// AppreciationPreset represents a housing market scenario used to fill the
// property appreciation rate field.
type AppreciationPreset struct {
	ID          string  // Unique identifier (e.g., "usAverage")
	Name        string  // Display name
	AnnualRate  float64 // Annual appreciation as decimal
	Description string  // Brief description
}

// AppreciationPresets contains housing appreciation scenarios
// Long-run figure from the Case-Shiller national home price index; the rest
// are round scenario numbers, not forecasts.
var AppreciationPresets = []AppreciationPreset{
	{
		ID:          "usAverage",
		Name:        "US long-run average",
		AnnualRate:  0.034,
		Description: "Case-Shiller national average since 1987",
	},
	{
		ID:          "steadyMarket",
		Name:        "Steady market",
		AnnualRate:  0.030,
		Description: "Modest growth roughly tracking inflation",
	},
	{
		ID:          "hotMarket",
		Name:        "Hot market",
		AnnualRate:  0.055,
		Description: "Sustained seller's market",
	},
	{
		ID:          "flatMarket",
		Name:        "Flat market",
		AnnualRate:  0.0,
		Description: "Prices hold their nominal value",
	},
	{
		ID:          "decliningMarket",
		Name:        "Declining market",
		AnnualRate:  -0.02,
		Description: "Slow nominal decline",
	},
}

// GetMarketPresetByID returns a market preset by its ID, or nil if not found
func GetMarketPresetByID(id string) *MarketPreset {
	for i := range MarketPresets {
		if MarketPresets[i].ID == id {
			return &MarketPresets[i]
		}
	}
	return nil
}

// GetAppreciationPresetByID returns an appreciation preset by its ID, or nil if not found
func GetAppreciationPresetByID(id string) *AppreciationPreset {
	for i := range AppreciationPresets {
		if AppreciationPresets[i].ID == id {
			return &AppreciationPresets[i]
		}
	}
	return nil
}

// GetMarketPresetsByRegion groups market presets by their region
func GetMarketPresetsByRegion() map[string][]MarketPreset {
	result := make(map[string][]MarketPreset)
	for _, p := range MarketPresets {
		result[p.Region] = append(result[p.Region], p)
	}
	return result
}
