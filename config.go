package main

import (
	_ "embed"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// ScenarioConfig holds projection-wide settings
type ScenarioConfig struct {
	HorizonYears int `yaml:"horizon_years" json:"horizon_years"` // Projection length in years
}

// SaleConfig holds the sell-and-invest strategy settings
type SaleConfig struct {
	Proceeds float64 `yaml:"proceeds" json:"proceeds"` // Net cash in hand after selling costs, fees and taxes

	// Market Return Source: leave market_preset empty for manual entry, or set a
	// benchmark ID (e.g., "sp500", "msciWorld") to use its long-term return
	MarketPreset string  `yaml:"market_preset,omitempty" json:"market_preset,omitempty"`
	MarketReturn float64 `yaml:"market_return" json:"market_return"` // Annual market return as decimal (0.07 = 7%)
}

// PropertyConfig holds the hold-and-rent property settings
type PropertyConfig struct {
	Value float64 `yaml:"value" json:"value"` // Current market value of the property

	AppreciationPreset string  `yaml:"appreciation_preset,omitempty" json:"appreciation_preset,omitempty"` // Scenario ID (e.g., "usAverage")
	Appreciation       float64 `yaml:"appreciation" json:"appreciation"` // Annual appreciation as decimal (0.03 = 3%)
}

// RentalConfig holds rental income, carrying costs and cash reinvestment
type RentalConfig struct {
	AnnualRent       float64 `yaml:"annual_rent" json:"annual_rent"`             // Gross rent collected per year
	MaintenanceCost  float64 `yaml:"maintenance_cost" json:"maintenance_cost"`   // Annual repairs and upkeep
	HOACost          float64 `yaml:"hoa_cost" json:"hoa_cost"`                   // Annual HOA / community fees
	OtherCosts       float64 `yaml:"other_costs" json:"other_costs"`             // Insurance, management, vacancy allowance
	ReinvestmentRate float64 `yaml:"reinvestment_rate" json:"reinvestment_rate"` // Rate the rental surplus compounds at
}

// DisplayConfig holds presentation settings
type DisplayConfig struct {
	Language string `yaml:"language,omitempty" json:"language,omitempty"` // "en", "es", or empty for the system locale
}

// SensitivityConfig holds sensitivity analysis parameters
type SensitivityConfig struct {
	MarketReturnMin float64 `yaml:"market_return_min" json:"market_return_min"` // Min market return rate (e.g., 0.03 = 3%)
	MarketReturnMax float64 `yaml:"market_return_max" json:"market_return_max"` // Max market return rate (e.g., 0.11 = 11%)
	AppreciationMin float64 `yaml:"appreciation_min" json:"appreciation_min"`   // Min property appreciation rate
	AppreciationMax float64 `yaml:"appreciation_max" json:"appreciation_max"`   // Max property appreciation rate
	StepSize        float64 `yaml:"step_size" json:"step_size"`                 // Step size (e.g., 0.01 = 1%)
}

// Config holds the complete configuration
type Config struct {
	Scenario    ScenarioConfig    `yaml:"scenario" json:"scenario"`
	Sale        SaleConfig        `yaml:"sale" json:"sale"`
	Property    PropertyConfig    `yaml:"property" json:"property"`
	Rental      RentalConfig      `yaml:"rental" json:"rental"`
	Display     DisplayConfig     `yaml:"display" json:"display"`
	Sensitivity SensitivityConfig `yaml:"sensitivity" json:"sensitivity"`
}

// Assumptions resolves the configuration into projection inputs. Preset IDs
// override the manual rates when they name a known preset.
func (c *Config) Assumptions() Assumptions {
	a := Assumptions{
		HorizonYears:     c.Scenario.HorizonYears,
		MarketReturnRate: c.Sale.MarketReturn,
		SaleProceeds:     c.Sale.Proceeds,
		PropertyValue:    c.Property.Value,
		AppreciationRate: c.Property.Appreciation,
		AnnualRent:       c.Rental.AnnualRent,
		MaintenanceCost:  c.Rental.MaintenanceCost,
		HOACost:          c.Rental.HOACost,
		OtherCosts:       c.Rental.OtherCosts,
		ReinvestmentRate: c.Rental.ReinvestmentRate,
	}

	if c.Sale.MarketPreset != "" {
		if preset := GetMarketPresetByID(c.Sale.MarketPreset); preset != nil {
			a.MarketReturnRate = preset.AnnualReturn
		}
	}
	if c.Property.AppreciationPreset != "" {
		if preset := GetAppreciationPresetByID(c.Property.AppreciationPreset); preset != nil {
			a.AppreciationRate = preset.AnnualRate
		}
	}

	return a
}

// LoadConfig loads configuration from a YAML file. Fields absent from the
// file keep their embedded defaults, so a config that only sets
// rental.annual_rent still projects sensibly.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := LoadDefaultConfig()
	if err != nil {
		return nil, err
	}

	content := preprocessPercentages(string(data))
	err = yaml.Unmarshal([]byte(content), config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	// Add a header comment with instructions
	header := []byte(`# Rent or Sell Configuration
# Generated interactively - feel free to edit manually
#
# ═══════════════════════════════════════════════════════════════════════════════
# WHAT THE PROJECTION COMPARES
# ═══════════════════════════════════════════════════════════════════════════════
#
# SELL & INVEST:
#   Sell today, invest sale.proceeds, and let the lump sum compound at
#   sale.market_return for scenario.horizon_years.
#
# HOLD & RENT:
#   Keep the property (grows at property.appreciation), collect
#   rental.annual_rent, pay the carrying costs, and reinvest whatever is
#   left each year at rental.reinvestment_rate.
#
# The verdict compares the two end states: property + cash pot vs lump sum.
#
# ═══════════════════════════════════════════════════════════════════════════════
# VALUE FORMATS
# ═══════════════════════════════════════════════════════════════════════════════
#   Percentages: 7% and 0.07 both work (negative rates like -2% too)
#   Money: values are in USD (e.g., 300000 = $300k)
#
# ═══════════════════════════════════════════════════════════════════════════════
# RUN COMMANDS
# ═══════════════════════════════════════════════════════════════════════════════
#   ./goRentOrSell                     Desktop window (embedded browser)
#   ./goRentOrSell -console            Console projection
#   ./goRentOrSell -web                Browser UI
#   ./goRentOrSell -sensitivity        Rate sensitivity matrix
#   ./goRentOrSell -interactive        Guided scenario builder
#   ./goRentOrSell -help               Show all options
#
# See default-config.yaml for all available options with detailed comments.

`)
	content := append(header, data...)
	return os.WriteFile(filename, content, 0644)
}

// LoadDefaultConfig loads the default configuration from embedded default-config.yaml
// It handles percentage format (e.g., "5%" -> 0.05)
func LoadDefaultConfig() (*Config, error) {
	// Use embedded default config (compiled into binary)
	content := preprocessPercentages(defaultConfigYAML)

	var config Config
	err := yaml.Unmarshal([]byte(content), &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

// preprocessPercentages converts percentage values like "5%" to decimal "0.05"
func preprocessPercentages(content string) string {
	// Match patterns like: key: 5% or key: -2.5%
	// But not inside strings (already quoted)
	re := regexp.MustCompile(`(:\s*)(-?\d+\.?\d*)%`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		// Extract the number before %
		parts := re.FindStringSubmatch(match)
		if len(parts) >= 3 {
			numStr := parts[2]
			num, err := strconv.ParseFloat(numStr, 64)
			if err == nil {
				return parts[1] + strconv.FormatFloat(num/100.0, 'f', -1, 64)
			}
		}
		return match
	})
}

// GetDefaultValue returns a default value from the default config for display purposes
func GetDefaultValue(fieldPath string, defaultConfig *Config) string {
	if defaultConfig == nil {
		return ""
	}

	switch fieldPath {
	// Scenario fields
	case "scenario.horizon_years":
		return strconv.Itoa(defaultConfig.Scenario.HorizonYears)

	// Sale fields
	case "sale.proceeds":
		return formatDefaultMoney(defaultConfig.Sale.Proceeds)
	case "sale.market_return":
		return formatDefaultPercent(defaultConfig.Sale.MarketReturn)

	// Property fields
	case "property.value":
		return formatDefaultMoney(defaultConfig.Property.Value)
	case "property.appreciation":
		return formatDefaultPercent(defaultConfig.Property.Appreciation)

	// Rental fields
	case "rental.annual_rent":
		return formatDefaultMoney(defaultConfig.Rental.AnnualRent)
	case "rental.maintenance_cost":
		return formatDefaultMoney(defaultConfig.Rental.MaintenanceCost)
	case "rental.hoa_cost":
		return formatDefaultMoney(defaultConfig.Rental.HOACost)
	case "rental.other_costs":
		return formatDefaultMoney(defaultConfig.Rental.OtherCosts)
	case "rental.reinvestment_rate":
		return formatDefaultPercent(defaultConfig.Rental.ReinvestmentRate)

	// Display fields
	case "display.language":
		return defaultConfig.Display.Language

	// Sensitivity fields
	case "sensitivity.market_return_min":
		return formatDefaultPercent(defaultConfig.Sensitivity.MarketReturnMin)
	case "sensitivity.market_return_max":
		return formatDefaultPercent(defaultConfig.Sensitivity.MarketReturnMax)
	case "sensitivity.appreciation_min":
		return formatDefaultPercent(defaultConfig.Sensitivity.AppreciationMin)
	case "sensitivity.appreciation_max":
		return formatDefaultPercent(defaultConfig.Sensitivity.AppreciationMax)
	case "sensitivity.step_size":
		return formatDefaultPercent(defaultConfig.Sensitivity.StepSize)
	}

	return ""
}

func formatDefaultMoney(amount float64) string {
	if amount >= 1000000 {
		return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(amount/1000000, 'f', 1, 64), "0"), ".") + "m"
	} else if amount >= 1000 {
		return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(amount/1000, 'f', 1, 64), "0"), ".") + "k"
	}
	return strconv.FormatFloat(amount, 'f', 0, 64)
}

func formatDefaultPercent(rate float64) string {
	return strconv.FormatFloat(rate*100, 'f', 2, 64) + "%"
}
