package main

// Assumptions is the immutable input record for one projection run. A fresh
// snapshot is taken for every recompute; the engine never mutates it.
//
// Rates are decimal fractions (0.07 = 7%) and may be negative for decline
// scenarios. Money fields are annual amounts where the name says so.
type Assumptions struct {
	HorizonYears     int     `yaml:"horizon_years" json:"horizon_years"`
	MarketReturnRate float64 `yaml:"market_return_rate" json:"market_return_rate"`
	AppreciationRate float64 `yaml:"appreciation_rate" json:"appreciation_rate"`
	ReinvestmentRate float64 `yaml:"reinvestment_rate" json:"reinvestment_rate"`
	SaleProceeds     float64 `yaml:"sale_proceeds" json:"sale_proceeds"`
	PropertyValue    float64 `yaml:"property_value" json:"property_value"`
	AnnualRent       float64 `yaml:"annual_rent" json:"annual_rent"`
	MaintenanceCost  float64 `yaml:"maintenance_cost" json:"maintenance_cost"`
	HOACost          float64 `yaml:"hoa_cost" json:"hoa_cost"`
	OtherCosts       float64 `yaml:"other_costs" json:"other_costs"`
}

// NetAnnualCashFlow returns one year of rent minus recurring costs. It may
// be negative when the costs exceed the rent.
func (a Assumptions) NetAnnualCashFlow() float64 {
	return a.AnnualRent - a.MaintenanceCost - a.HOACost - a.OtherCosts
}

// DefaultAssumptions returns the documented fallback values. Every boundary
// (config file, address fragment, form field, CLI flag) that fails to supply
// a usable value falls back to these, field by field.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		HorizonYears:     15,
		MarketReturnRate: 0.07,
		AppreciationRate: 0.03,
		ReinvestmentRate: 0.07,
		SaleProceeds:     300000,
		PropertyValue:    800000,
		AnnualRent:       42000,
		MaintenanceCost:  2500,
		HOACost:          3600,
		OtherCosts:       0,
	}
}

// YearlyOutcome is one row of the projection: the state of both strategies
// at the end of a given year. All money fields are rounded to cents and
// never mutated once the row is appended.
type YearlyOutcome struct {
	Year              int     `json:"year"`
	SellStrategyValue float64 `json:"sell_strategy_value"`
	HoldPropertyValue float64 `json:"hold_property_value"`
	HoldCashValue     float64 `json:"hold_cash_value"`
	HoldNetValue      float64 `json:"hold_net_value"`
	Delta             float64 `json:"delta"`
}

// Verdict classifies which strategy leads at the end of the horizon
type Verdict int

const (
	VerdictTie      Verdict = iota // strategies end level to the cent
	VerdictHoldWins                // keeping the property as a rental ends ahead
	VerdictSellWins                // selling now and investing ends ahead
)

func (v Verdict) String() string {
	switch v {
	case VerdictHoldWins:
		return "Hold & Rent Wins"
	case VerdictSellWins:
		return "Sell & Invest Wins"
	default:
		return "Tie"
	}
}

// Key returns the stable token used in API responses and string-table
// lookups.
func (v Verdict) Key() string {
	switch v {
	case VerdictHoldWins:
		return "hold"
	case VerdictSellWins:
		return "sell"
	default:
		return "tie"
	}
}
