package main

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Fragment keys. The embedded web UI writes the same keys into
// window.location.hash, so the two codecs must stay in lockstep.
const (
	keyHorizonYears     = "horizonYears"
	keyMarketReturnRate = "marketReturnRate"
	keyAppreciationRate = "appreciationRate"
	keyReinvestmentRate = "reinvestmentRate"
	keySaleProceeds     = "saleProceeds"
	keyPropertyValue    = "propertyValue"
	keyAnnualRent       = "annualRent"
	keyMaintenanceCost  = "maintenanceCost"
	keyHOACost          = "hoaCost"
	keyOtherCosts       = "otherCosts"
	keyLanguage         = "lang"
)

// EncodeFragment serializes assumptions plus the display language into the
// address-fragment form "horizonYears=15&marketReturnRate=0.07&...". Field
// order is fixed so encoded links are canonical and comparable.
func EncodeFragment(a Assumptions, lang string) string {
	var b strings.Builder
	pair := func(key, value string) {
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(value)
	}

	pair(keyHorizonYears, strconv.Itoa(a.HorizonYears))
	pair(keyMarketReturnRate, formatFragmentNumber(a.MarketReturnRate))
	pair(keyAppreciationRate, formatFragmentNumber(a.AppreciationRate))
	pair(keyReinvestmentRate, formatFragmentNumber(a.ReinvestmentRate))
	pair(keySaleProceeds, formatFragmentNumber(a.SaleProceeds))
	pair(keyPropertyValue, formatFragmentNumber(a.PropertyValue))
	pair(keyAnnualRent, formatFragmentNumber(a.AnnualRent))
	pair(keyMaintenanceCost, formatFragmentNumber(a.MaintenanceCost))
	pair(keyHOACost, formatFragmentNumber(a.HOACost))
	pair(keyOtherCosts, formatFragmentNumber(a.OtherCosts))
	pair(keyLanguage, lang)

	return b.String()
}

// formatFragmentNumber uses the shortest decimal form that round-trips, the
// same representation JavaScript's String(number) produces for these values.
func formatFragmentNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DecodeFragment parses a fragment (or query) string back into assumptions
// and a display language. Absent or unparsable fields keep the supplied
// defaults; decoding never fails. A leading "#" or "?" is tolerated so raw
// window.location.hash values and query strings both work.
func DecodeFragment(fragment string, defaults Assumptions, defaultLang string) (Assumptions, string) {
	fragment = strings.TrimPrefix(fragment, "#")
	fragment = strings.TrimPrefix(fragment, "?")
	values, _ := url.ParseQuery(fragment) // valid pairs survive a partial parse error

	a := defaults
	a.HorizonYears = fragmentInt(values, keyHorizonYears, defaults.HorizonYears)
	a.MarketReturnRate = fragmentFloat(values, keyMarketReturnRate, defaults.MarketReturnRate)
	a.AppreciationRate = fragmentFloat(values, keyAppreciationRate, defaults.AppreciationRate)
	a.ReinvestmentRate = fragmentFloat(values, keyReinvestmentRate, defaults.ReinvestmentRate)
	a.SaleProceeds = fragmentFloat(values, keySaleProceeds, defaults.SaleProceeds)
	a.PropertyValue = fragmentFloat(values, keyPropertyValue, defaults.PropertyValue)
	a.AnnualRent = fragmentFloat(values, keyAnnualRent, defaults.AnnualRent)
	a.MaintenanceCost = fragmentFloat(values, keyMaintenanceCost, defaults.MaintenanceCost)
	a.HOACost = fragmentFloat(values, keyHOACost, defaults.HOACost)
	a.OtherCosts = fragmentFloat(values, keyOtherCosts, defaults.OtherCosts)

	lang := defaultLang
	if matched, ok := matchSupportedLanguage(values.Get(keyLanguage)); ok {
		lang = matched
	}

	return a, lang
}

func fragmentInt(values url.Values, key string, fallback int) int {
	raw := values.Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func fragmentFloat(values url.Values, key string, fallback float64) float64 {
	raw := values.Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		// The projection is only total over finite numbers; "NaN" and "Inf"
		// parse but count as unusable here.
		return fallback
	}
	return v
}
