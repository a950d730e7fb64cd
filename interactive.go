package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// validateHorizon checks if the horizon is a reasonable number of years
func validateHorizon(years int) error {
	if years < 1 || years > 100 {
		return ValidationError{Field: "horizon_years", Message: fmt.Sprintf("Horizon must be between 1 and 100 years (got %d)", years)}
	}
	return nil
}

// validateRate checks if rate is a valid annual rate (-100% to 100% as decimal)
func validateRate(rate float64, fieldName string) error {
	if rate < -1.0 || rate > 1.0 {
		return ValidationError{Field: fieldName, Message: fmt.Sprintf("Rate must be between -100%% and 100%% (got %.1f%%)", rate*100)}
	}
	return nil
}

// validateMoney checks if amount is non-negative and reasonable
func validateMoney(amount float64, fieldName string) error {
	if amount < 0 {
		return ValidationError{Field: fieldName, Message: "Amount cannot be negative"}
	}
	if amount > 100000000 { // 100 million
		return ValidationError{Field: fieldName, Message: "Amount seems too large. Please check the value"}
	}
	return nil
}

// InteractiveScenarioBuilder handles interactive configuration creation
type InteractiveScenarioBuilder struct {
	reader        *bufio.Reader
	config        *Config
	defaultConfig *Config
}

// NewInteractiveScenarioBuilder creates a new builder
func NewInteractiveScenarioBuilder() *InteractiveScenarioBuilder {
	builder := &InteractiveScenarioBuilder{
		reader: bufio.NewReader(os.Stdin),
		config: &Config{},
	}

	// Try to load defaults from default-config.yaml
	defaultConfig, err := LoadDefaultConfig()
	if err == nil {
		builder.defaultConfig = defaultConfig
	}

	return builder
}

// getDefault returns a default value from the default config, or the fallback
func (b *InteractiveScenarioBuilder) getDefault(fieldPath string, fallback string) string {
	if b.defaultConfig != nil {
		val := GetDefaultValue(fieldPath, b.defaultConfig)
		if val != "" {
			return val
		}
	}
	return fallback
}

// getDefaultInt gets an int default from default config
func (b *InteractiveScenarioBuilder) getDefaultInt(fieldPath string, fallback int) int {
	val := b.getDefault(fieldPath, "")
	if val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

// getDefaultMoney gets a money default from default config (handles "100k" format)
func (b *InteractiveScenarioBuilder) getDefaultMoney(fieldPath string, fallback float64) float64 {
	val := b.getDefault(fieldPath, "")
	if val != "" {
		return parseMoney(val, fallback)
	}
	return fallback
}

// getDefaultPercent gets a percent default from default config (handles "5%" format)
func (b *InteractiveScenarioBuilder) getDefaultPercent(fieldPath string, fallback float64) float64 {
	val := b.getDefault(fieldPath, "")
	if val != "" {
		if p, err := parsePercentOrDecimal(val); err == nil {
			return p
		}
	}
	return fallback
}

// parseMoney parses money strings like "100k", "1m", "100000"
func parseMoney(input string, fallback float64) float64 {
	input = strings.TrimSpace(strings.ToLower(input))
	input = strings.TrimPrefix(input, "$")
	multiplier := 1.0
	if strings.HasSuffix(input, "k") {
		multiplier = 1000
		input = strings.TrimSuffix(input, "k")
	} else if strings.HasSuffix(input, "m") {
		multiplier = 1000000
		input = strings.TrimSuffix(input, "m")
	}
	val, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return fallback
	}
	return val * multiplier
}

// parsePercentOrDecimal converts "5%" or "0.05" to 0.05
func parsePercentOrDecimal(input string) (float64, error) {
	input = strings.TrimSpace(input)
	if strings.HasSuffix(input, "%") {
		// Remove % and convert
		numStr := strings.TrimSuffix(input, "%")
		num, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return 0, err
		}
		return num / 100.0, nil
	}
	// Try parsing as decimal
	return strconv.ParseFloat(input, 64)
}

// promptString asks for a string with a default value
func (b *InteractiveScenarioBuilder) promptString(prompt, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Printf("%s: ", prompt)
	}
	input, _ := b.reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

// promptHorizon asks for the projection horizon with validation (1-100)
func (b *InteractiveScenarioBuilder) promptHorizon(prompt string, defaultVal int) int {
	for {
		fmt.Printf("%s [%d]: ", prompt, defaultVal)
		input, _ := b.reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			return defaultVal
		}
		val, err := strconv.Atoi(input)
		if err != nil {
			fmt.Printf("  ✗ Invalid number. Please enter a whole number of years\n")
			continue
		}
		if err := validateHorizon(val); err != nil {
			fmt.Printf("  ✗ %s\n", err.Error())
			continue
		}
		return val
	}
}

// promptPercent asks for a rate with validation (accepts "5%" or "0.05")
func (b *InteractiveScenarioBuilder) promptPercent(prompt string, defaultVal float64) float64 {
	for {
		fmt.Printf("%s [%.1f%%]: ", prompt, defaultVal*100)
		input, _ := b.reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			return defaultVal
		}
		val, err := parsePercentOrDecimal(input)
		if err != nil {
			fmt.Printf("  ✗ Invalid percentage. Enter as '5%%' or '0.05'\n")
			continue
		}
		if err := validateRate(val, "rate"); err != nil {
			fmt.Printf("  ✗ %s\n", err.Error())
			continue
		}
		return val
	}
}

// promptMoney asks for a money amount with validation (accepts "100k" or "100000")
func (b *InteractiveScenarioBuilder) promptMoney(prompt string, defaultVal float64) float64 {
	defaultStr := formatMoneyShort(defaultVal)
	for {
		fmt.Printf("%s [%s]: ", prompt, defaultStr)
		input, _ := b.reader.ReadString('\n')
		input = strings.TrimSpace(strings.ToLower(input))
		if input == "" {
			return defaultVal
		}
		// Handle k/m suffix
		multiplier := 1.0
		if strings.HasSuffix(input, "k") {
			multiplier = 1000
			input = strings.TrimSuffix(input, "k")
		} else if strings.HasSuffix(input, "m") {
			multiplier = 1000000
			input = strings.TrimSuffix(input, "m")
		}
		// Remove $ if present
		input = strings.TrimPrefix(input, "$")
		val, err := strconv.ParseFloat(input, 64)
		if err != nil {
			fmt.Printf("  ✗ Invalid amount. Enter as '100k', '1.5m', or '100000'\n")
			continue
		}
		amount := val * multiplier
		if err := validateMoney(amount, "amount"); err != nil {
			fmt.Printf("  ✗ %s\n", err.Error())
			continue
		}
		return amount
	}
}

// promptMarketPreset asks for a market preset ID, accepting only known IDs or blank
func (b *InteractiveScenarioBuilder) promptMarketPreset() string {
	for {
		input := b.promptString("  Market preset ID (blank for manual rate)", "")
		if input == "" {
			return ""
		}
		if GetMarketPresetByID(input) != nil {
			return input
		}
		fmt.Printf("  ✗ Unknown preset. Run with -presets to list available IDs\n")
	}
}

// promptAppreciationPreset asks for an appreciation preset ID, accepting only known IDs or blank
func (b *InteractiveScenarioBuilder) promptAppreciationPreset() string {
	for {
		input := b.promptString("  Appreciation preset ID (blank for manual rate)", "")
		if input == "" {
			return ""
		}
		if GetAppreciationPresetByID(input) != nil {
			return input
		}
		fmt.Printf("  ✗ Unknown preset. Run with -presets to list available IDs\n")
	}
}

// promptLanguage asks for a display language, accepting "en", "es" or blank
func (b *InteractiveScenarioBuilder) promptLanguage() string {
	for {
		input := b.promptString("  Language (en/es, blank = system locale)", b.getDefault("display.language", ""))
		if input == "" {
			return ""
		}
		if lang, ok := matchSupportedLanguage(input); ok {
			return lang
		}
		fmt.Printf("  ✗ Unsupported language. Use 'en' or 'es'\n")
	}
}

func formatMoneyShort(amount float64) string {
	if amount >= 1000000 {
		return fmt.Sprintf("$%.1fm", amount/1000000)
	} else if amount >= 1000 {
		return fmt.Sprintf("$%.0fk", amount/1000)
	}
	return fmt.Sprintf("$%.0f", amount)
}

// BuildScenarioConfig walks through every setting with guided prompts
func (b *InteractiveScenarioBuilder) BuildScenarioConfig() *Config {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Println("║              RENT OR SELL - SCENARIO SETUP                                   ║")
	fmt.Println("╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Println()
	if b.defaultConfig != nil {
		fmt.Println("Defaults loaded from default-config.yaml. Press Enter to accept defaults.")
	} else {
		fmt.Println("Let's set up your comparison. Press Enter to accept defaults.")
	}
	fmt.Println("For percentages, enter '5%' or '0.05'. For money, enter '100k' or '100000'.")
	fmt.Println()

	// Scenario
	fmt.Println("─── Projection ───")
	b.config.Scenario.HorizonYears = b.promptHorizon("  Horizon in years", b.getDefaultInt("scenario.horizon_years", 15))

	// Sale side
	fmt.Println()
	fmt.Println("─── Sell & Invest ───")
	b.config.Sale.Proceeds = b.promptMoney("  Net sale proceeds (after fees and taxes)", b.getDefaultMoney("sale.proceeds", 300000))
	usePreset := b.promptString("  Use a market benchmark preset? (y/n)", "n")
	if strings.ToLower(usePreset) == "y" || strings.ToLower(usePreset) == "yes" {
		b.config.Sale.MarketPreset = b.promptMarketPreset()
	}
	if b.config.Sale.MarketPreset == "" {
		b.config.Sale.MarketReturn = b.promptPercent("  Annual market return", b.getDefaultPercent("sale.market_return", 0.07))
	}

	// Property side
	fmt.Println()
	fmt.Println("─── Hold & Rent ───")
	b.config.Property.Value = b.promptMoney("  Current property value", b.getDefaultMoney("property.value", 800000))
	useApprPreset := b.promptString("  Use an appreciation preset? (y/n)", "n")
	if strings.ToLower(useApprPreset) == "y" || strings.ToLower(useApprPreset) == "yes" {
		b.config.Property.AppreciationPreset = b.promptAppreciationPreset()
	}
	if b.config.Property.AppreciationPreset == "" {
		b.config.Property.Appreciation = b.promptPercent("  Annual appreciation", b.getDefaultPercent("property.appreciation", 0.03))
	}

	// Rental income and costs
	fmt.Println()
	fmt.Println("─── Rental Cash Flow ───")
	b.config.Rental.AnnualRent = b.promptMoney("  Gross annual rent", b.getDefaultMoney("rental.annual_rent", 42000))
	b.config.Rental.MaintenanceCost = b.promptMoney("  Annual maintenance cost", b.getDefaultMoney("rental.maintenance_cost", 2500))
	b.config.Rental.HOACost = b.promptMoney("  Annual HOA fees", b.getDefaultMoney("rental.hoa_cost", 3600))
	b.config.Rental.OtherCosts = b.promptMoney("  Other annual costs", b.getDefaultMoney("rental.other_costs", 0))
	b.config.Rental.ReinvestmentRate = b.promptPercent("  Surplus reinvestment rate", b.getDefaultPercent("rental.reinvestment_rate", 0.07))

	// Display
	fmt.Println()
	fmt.Println("─── Display ───")
	b.config.Display.Language = b.promptLanguage()

	// Sensitivity analysis settings
	fmt.Println()
	fmt.Println("─── Sensitivity Analysis ───")
	b.config.Sensitivity.MarketReturnMin = b.promptPercent("  Market return min rate", b.getDefaultPercent("sensitivity.market_return_min", 0.03))
	b.config.Sensitivity.MarketReturnMax = b.promptPercent("  Market return max rate", b.getDefaultPercent("sensitivity.market_return_max", 0.11))
	b.config.Sensitivity.AppreciationMin = b.promptPercent("  Appreciation min rate", b.getDefaultPercent("sensitivity.appreciation_min", 0.00))
	b.config.Sensitivity.AppreciationMax = b.promptPercent("  Appreciation max rate", b.getDefaultPercent("sensitivity.appreciation_max", 0.06))
	b.config.Sensitivity.StepSize = b.promptPercent("  Step size for analysis", b.getDefaultPercent("sensitivity.step_size", 0.01))

	return b.config
}
