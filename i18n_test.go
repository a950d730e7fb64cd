package main

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

// Internationalization Test Suite
//
// The display layer is fully bilingual, and every surface (console, web UI,
// reports) draws from the same string tables and language resolution chain.
// These tests pin the resolution precedence (query > cookie > Accept-Language
// > fallback), the locale detection used by the console, and the localized
// number formatting.

// =============================================================================
// String Tables
// =============================================================================

func TestStringTables_EveryFieldTranslated(t *testing.T) {
	// A StringTable field left empty would render as a blank label, so both
	// languages must fill every field.
	for lang, table := range stringTables {
		v := reflect.ValueOf(table)
		for i := 0; i < v.NumField(); i++ {
			if v.Field(i).String() == "" {
				t.Errorf("%s: field %s is empty", lang, v.Type().Field(i).Name)
			}
		}
	}
}

func TestStringsFor(t *testing.T) {
	if got := StringsFor("es").AppTitle; got != spanishStrings.AppTitle {
		t.Errorf("StringsFor(es).AppTitle = %q, want %q", got, spanishStrings.AppTitle)
	}
	if got := StringsFor("en").AppTitle; got != englishStrings.AppTitle {
		t.Errorf("StringsFor(en).AppTitle = %q, want %q", got, englishStrings.AppTitle)
	}
	// Unknown keys fall back to English rather than panicking or blanking.
	if got := StringsFor("fr").AppTitle; got != englishStrings.AppTitle {
		t.Errorf("StringsFor(fr).AppTitle = %q, want the English fallback", got)
	}
}

func TestStringTable_VerdictString(t *testing.T) {
	cases := []struct {
		lang    string
		verdict Verdict
		want    string
	}{
		{"en", VerdictHoldWins, "Hold & Rent Wins"},
		{"en", VerdictSellWins, "Sell & Invest Wins"},
		{"en", VerdictTie, "Tie"},
		{"es", VerdictHoldWins, "Gana mantener y alquilar"},
		{"es", VerdictSellWins, "Gana vender e invertir"},
		{"es", VerdictTie, "Empate"},
	}
	for _, tc := range cases {
		if got := StringsFor(tc.lang).VerdictString(tc.verdict); got != tc.want {
			t.Errorf("%s verdict %v = %q, want %q", tc.lang, tc.verdict, got, tc.want)
		}
	}
}

// =============================================================================
// Language Matching
// =============================================================================

func TestMatchSupportedLanguage(t *testing.T) {
	cases := []struct {
		raw     string
		want    string
		matched bool
	}{
		{"en", "en", true},
		{"es", "es", true},
		{"EN", "en", true},
		{"es-MX", "es", true},
		{"es_ES.UTF-8", "es", true}, // POSIX locale names work too
		{"en_US.UTF-8", "en", true},
		{" es ", "es", true},
		{"fr", "", false},
		{"12345", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, matched := matchSupportedLanguage(tc.raw)
		if matched != tc.matched || (matched && got != tc.want) {
			t.Errorf("matchSupportedLanguage(%q) = (%q, %v), want (%q, %v)", tc.raw, got, matched, tc.want, tc.matched)
		}
	}
}

// =============================================================================
// Request Language Resolution
// =============================================================================

func TestResolveLanguage_QueryParameterWins(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?lang=es", nil)
	r.AddCookie(&http.Cookie{Name: langCookieName, Value: "en"})
	r.Header.Set("Accept-Language", "en-US,en;q=0.9")

	lang, explicit := ResolveLanguage(r, "en")
	if lang != "es" {
		t.Errorf("language = %q, want es from the query parameter", lang)
	}
	if !explicit {
		t.Error("query parameter choice should be reported as explicit")
	}
}

func TestResolveLanguage_InvalidQueryFallsThroughToCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?lang=fr", nil)
	r.AddCookie(&http.Cookie{Name: langCookieName, Value: "es"})

	lang, explicit := ResolveLanguage(r, "en")
	if lang != "es" || explicit {
		t.Errorf("got (%q, %v), want (es, false) from the cookie", lang, explicit)
	}
}

func TestResolveLanguage_CookieBeatsAcceptLanguage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: langCookieName, Value: "es"})
	r.Header.Set("Accept-Language", "en-US,en;q=0.9")

	lang, explicit := ResolveLanguage(r, "en")
	if lang != "es" || explicit {
		t.Errorf("got (%q, %v), want (es, false) from the cookie", lang, explicit)
	}
}

func TestResolveLanguage_AcceptLanguageHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept-Language", "es-ES,es;q=0.9,en;q=0.8")

	lang, explicit := ResolveLanguage(r, "en")
	if lang != "es" || explicit {
		t.Errorf("got (%q, %v), want (es, false) from Accept-Language", lang, explicit)
	}
}

func TestResolveLanguage_Fallback(t *testing.T) {
	// No query, no cookie, no matchable header: the caller's fallback holds.
	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	if lang, explicit := ResolveLanguage(bare, "es"); lang != "es" || explicit {
		t.Errorf("bare request: got (%q, %v), want (es, false)", lang, explicit)
	}

	unmatched := httptest.NewRequest(http.MethodGet, "/", nil)
	unmatched.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
	if lang, _ := ResolveLanguage(unmatched, "en"); lang != "en" {
		t.Errorf("unmatched header: language = %q, want the en fallback", lang)
	}

	if lang, explicit := ResolveLanguage(nil, "es"); lang != "es" || explicit {
		t.Errorf("nil request: got (%q, %v), want (es, false)", lang, explicit)
	}
}

func TestSetLanguageCookie(t *testing.T) {
	w := httptest.NewRecorder()
	SetLanguageCookie(w, "es")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != langCookieName || c.Value != "es" {
		t.Errorf("cookie = %s=%s, want %s=es", c.Name, c.Value, langCookieName)
	}
	if c.Path != "/" {
		t.Errorf("cookie path = %q, want /", c.Path)
	}
	if c.MaxAge != 365*24*60*60 {
		t.Errorf("cookie max-age = %d, want one year", c.MaxAge)
	}
}

// =============================================================================
// Locale Detection
// =============================================================================

func TestDetectLocaleLanguage(t *testing.T) {
	cases := []struct {
		name                    string
		lcAll, lcMessages, lang string
		want                    string
	}{
		{"spanish LC_ALL", "es_ES.UTF-8", "", "", "es"},
		{"LC_ALL beats LC_MESSAGES", "en_US.UTF-8", "es_ES.UTF-8", "", "en"},
		{"LC_MESSAGES beats LANG", "", "es_MX.UTF-8", "en_US.UTF-8", "es"},
		{"LANG alone", "", "", "es_ES.UTF-8", "es"},
		{"C locale is untranslated", "C", "", "es_ES.UTF-8", "en"},
		{"C.UTF-8 too", "C.UTF-8", "", "es_ES.UTF-8", "en"},
		{"POSIX too", "POSIX", "", "es_ES.UTF-8", "en"},
		{"unsupported locale falls back", "", "", "fr_FR.UTF-8", "en"},
		{"nothing set", "", "", "", "en"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("LC_ALL", tc.lcAll)
			t.Setenv("LC_MESSAGES", tc.lcMessages)
			t.Setenv("LANG", tc.lang)

			if got := DetectLocaleLanguage(); got != tc.want {
				t.Errorf("DetectLocaleLanguage() = %q, want %q", got, tc.want)
			}
		})
	}
}

// =============================================================================
// Localized Formatting
// =============================================================================

func TestMoneyString(t *testing.T) {
	cases := []struct {
		lang  string
		value float64
		want  string
	}{
		{"en", 42000, "$42,000.00"},
		{"en", 1234.5, "$1,234.50"},
		{"en", 0, "$0.00"},
		{"en", -42, "-$42.00"},
		{"es", 42000, "$42.000,00"},
		{"es", 538900, "$538.900,00"},
		{"es", -42000, "-$42.000,00"},
	}

	for _, tc := range cases {
		if got := MoneyString(tc.lang, tc.value); got != tc.want {
			t.Errorf("MoneyString(%s, %v) = %q, want %q", tc.lang, tc.value, got, tc.want)
		}
	}
}

func TestPercentString(t *testing.T) {
	cases := []struct {
		lang string
		rate float64
		want string
	}{
		{"en", 0.07, "7.00%"},
		{"en", -0.02, "-2.00%"},
		{"es", 0.07, "7,00%"},
		{"es", 0.035, "3,50%"},
	}

	for _, tc := range cases {
		if got := PercentString(tc.lang, tc.rate); got != tc.want {
			t.Errorf("PercentString(%s, %v) = %q, want %q", tc.lang, tc.rate, got, tc.want)
		}
	}
}
