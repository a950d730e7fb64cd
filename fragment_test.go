package main

import (
	"strings"
	"testing"
)

// Share-Link Fragment Codec Test Suite
//
// The fragment codec carries a full scenario in window.location.hash, so the
// encoder must be canonical (same assumptions, same string) and the decoder
// must be total: whatever garbage arrives in the hash, decoding returns a
// usable scenario. Numbers are written in shortest round-trip form, which
// makes exact equality the right assertion for encode/decode cycles.

// =============================================================================
// Canonical Encoding
// =============================================================================

func TestEncodeFragment_CanonicalFieldOrder(t *testing.T) {
	got := EncodeFragment(DefaultAssumptions(), "en")
	want := "horizonYears=15&marketReturnRate=0.07&appreciationRate=0.03&reinvestmentRate=0.07" +
		"&saleProceeds=300000&propertyValue=800000&annualRent=42000&maintenanceCost=2500" +
		"&hoaCost=3600&otherCosts=0&lang=en"

	if got != want {
		t.Errorf("EncodeFragment(defaults, en):\n  got  %q\n  want %q", got, want)
	}
}

func TestEncodeFragment_LanguageIsLastKey(t *testing.T) {
	for _, lang := range []string{"en", "es"} {
		encoded := EncodeFragment(DefaultAssumptions(), lang)
		if !strings.HasSuffix(encoded, "&lang="+lang) {
			t.Errorf("lang %q: fragment should end with the language key, got %q", lang, encoded)
		}
	}
}

// =============================================================================
// Round Trips
// =============================================================================

func TestInvariant_FragmentRoundTripIsExact(t *testing.T) {
	// Property: decode(encode(a, lang)) == (a, lang) for every scenario,
	// because the encoder emits the shortest decimal that parses back to the
	// identical float64.
	scenarios := []struct {
		name string
		a    Assumptions
		lang string
	}{
		{"defaults", DefaultAssumptions(), "en"},
		{
			name: "fractional rates and cents",
			a: Assumptions{
				HorizonYears:     30,
				MarketReturnRate: 0.0725,
				AppreciationRate: 0.035,
				ReinvestmentRate: 0.041,
				SaleProceeds:     123456.78,
				PropertyValue:    950000.5,
				AnnualRent:       23988.12,
				MaintenanceCost:  1845.33,
				HOACost:          0,
				OtherCosts:       99.99,
			},
			lang: "es",
		},
		{
			name: "negative rates",
			a: Assumptions{
				HorizonYears:     5,
				MarketReturnRate: -0.02,
				AppreciationRate: -0.1,
				ReinvestmentRate: 0,
				SaleProceeds:     1000,
				PropertyValue:    1000,
				AnnualRent:       0,
				MaintenanceCost:  0,
				HOACost:          0,
				OtherCosts:       0,
			},
			lang: "en",
		},
	}

	for _, sc := range scenarios {
		encoded := EncodeFragment(sc.a, sc.lang)
		decoded, lang := DecodeFragment(encoded, Assumptions{}, "")

		if decoded != sc.a {
			t.Errorf("%s: round trip changed assumptions:\n  got  %+v\n  want %+v", sc.name, decoded, sc.a)
		}
		if lang != sc.lang {
			t.Errorf("%s: round trip changed language: got %q, want %q", sc.name, lang, sc.lang)
		}
	}
}

// =============================================================================
// Decoding Fallbacks
// =============================================================================

func TestDecodeFragment_EmptyFragmentKeepsDefaults(t *testing.T) {
	defaults := DefaultAssumptions()

	for _, fragment := range []string{"", "#", "?"} {
		a, lang := DecodeFragment(fragment, defaults, "es")
		if a != defaults {
			t.Errorf("fragment %q: assumptions changed from defaults: %+v", fragment, a)
		}
		if lang != "es" {
			t.Errorf("fragment %q: language = %q, want default es", fragment, lang)
		}
	}
}

func TestDecodeFragment_PartialFragmentOverridesOnlyNamedFields(t *testing.T) {
	defaults := DefaultAssumptions()
	a, lang := DecodeFragment("horizonYears=30&annualRent=24000", defaults, "en")

	if a.HorizonYears != 30 {
		t.Errorf("HorizonYears = %d, want 30", a.HorizonYears)
	}
	if a.AnnualRent != 24000 {
		t.Errorf("AnnualRent = %.2f, want 24000", a.AnnualRent)
	}
	if lang != "en" {
		t.Errorf("language = %q, want en", lang)
	}

	// Everything the fragment did not name stays at its default.
	rest := a
	rest.HorizonYears = defaults.HorizonYears
	rest.AnnualRent = defaults.AnnualRent
	if rest != defaults {
		t.Errorf("unnamed fields drifted from defaults: %+v", a)
	}
}

func TestDecodeFragment_UnparsableFieldsFallBackIndividually(t *testing.T) {
	// Property: a bad value poisons only its own field. The parsable keys in
	// the same fragment still take effect.
	defaults := DefaultAssumptions()
	a, _ := DecodeFragment("horizonYears=soon&marketReturnRate=0.09&propertyValue=lots", defaults, "en")

	if a.HorizonYears != defaults.HorizonYears {
		t.Errorf("HorizonYears = %d, want default %d after unparsable value", a.HorizonYears, defaults.HorizonYears)
	}
	if a.PropertyValue != defaults.PropertyValue {
		t.Errorf("PropertyValue = %.2f, want default %.2f after unparsable value", a.PropertyValue, defaults.PropertyValue)
	}
	if a.MarketReturnRate != 0.09 {
		t.Errorf("MarketReturnRate = %.4f, want 0.09 from the same fragment", a.MarketReturnRate)
	}
}

func TestDecodeFragment_RejectsNonFiniteNumbers(t *testing.T) {
	defaults := DefaultAssumptions()

	cases := []string{
		"marketReturnRate=NaN",
		"marketReturnRate=Inf",
		"marketReturnRate=-Inf",
		"marketReturnRate=1e999",
	}
	for _, fragment := range cases {
		a, _ := DecodeFragment(fragment, defaults, "en")
		if a.MarketReturnRate != defaults.MarketReturnRate {
			t.Errorf("fragment %q: MarketReturnRate = %v, want default %v", fragment, a.MarketReturnRate, defaults.MarketReturnRate)
		}
	}
}

func TestDecodeFragment_TrimsHashAndQueryPrefixes(t *testing.T) {
	defaults := DefaultAssumptions()

	for _, fragment := range []string{"#horizonYears=5", "?horizonYears=5", "horizonYears=5"} {
		a, _ := DecodeFragment(fragment, defaults, "en")
		if a.HorizonYears != 5 {
			t.Errorf("fragment %q: HorizonYears = %d, want 5", fragment, a.HorizonYears)
		}
	}
}

func TestDecodeFragment_LanguageMatching(t *testing.T) {
	defaults := DefaultAssumptions()

	cases := []struct {
		fragment    string
		defaultLang string
		want        string
	}{
		{"lang=en", "es", "en"},
		{"lang=es", "en", "es"},
		{"lang=ES", "en", "es"},      // tags are case-insensitive
		{"lang=es-MX", "en", "es"},   // regional variants match the base language
		{"lang=fr", "es", "es"},      // unsupported language keeps the default
		{"lang=zz-ZZ", "en", "en"},   // nonsense keeps the default
		{"horizonYears=5", "es", "es"}, // absent key keeps the default
	}

	for _, tc := range cases {
		_, lang := DecodeFragment(tc.fragment, defaults, tc.defaultLang)
		if lang != tc.want {
			t.Errorf("fragment %q with default %q: language = %q, want %q", tc.fragment, tc.defaultLang, lang, tc.want)
		}
	}
}

// =============================================================================
// Number Formatting
// =============================================================================

func TestFormatFragmentNumber(t *testing.T) {
	// The shortest round-trip form matches what JavaScript's String(number)
	// writes, so links built by either side are byte-identical.
	cases := []struct {
		value float64
		want  string
	}{
		{0.07, "0.07"},
		{0.035, "0.035"},
		{300000, "300000"},
		{123456.78, "123456.78"},
		{0, "0"},
		{-0.02, "-0.02"},
	}

	for _, tc := range cases {
		if got := formatFragmentNumber(tc.value); got != tc.want {
			t.Errorf("formatFragmentNumber(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
