package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangEnglish and LangSpanish are the only display languages. Every
	// string table below carries both.
	LangEnglish = "en"
	LangSpanish = "es"

	// langParam is the query parameter used to select a language.
	langParam = "lang"
	// langCookieName stores the user's language preference.
	langCookieName = "ros_lang"
)

// supportedLanguageTags and supportedLanguageKeys are index-aligned; the
// matcher reports matches by index.
var supportedLanguageTags = []language.Tag{
	language.English,
	language.Spanish,
}

var supportedLanguageKeys = []string{LangEnglish, LangSpanish}

var languageMatcher = language.NewMatcher(supportedLanguageTags)

// StringTable holds every user-facing string for one language. Adding a
// field here forces every language to supply it, so a missing translation is
// a compile error rather than a blank label at runtime.
type StringTable struct {
	AppTitle    string
	AppSubtitle string

	LabelHorizonYears     string
	LabelMarketReturnRate string
	LabelAppreciationRate string
	LabelReinvestmentRate string
	LabelSaleProceeds     string
	LabelPropertyValue    string
	LabelAnnualRent       string
	LabelMaintenanceCost  string
	LabelHOACost          string
	LabelOtherCosts       string
	LabelNetCashFlow      string

	SectionAssumptions string
	SectionProjection  string
	SectionVerdict     string
	SectionSensitivity string

	HeaderYear          string
	HeaderSellValue     string
	HeaderPropertyValue string
	HeaderCashValue     string
	HeaderHoldNet       string
	HeaderDelta         string

	VerdictHoldWins string
	VerdictSellWins string
	VerdictTie      string

	SummaryFinalDelta      string
	SummaryBreakEvenYear   string
	SummaryNoBreakEven     string
	SummaryBreakEvenRate   string
	SummaryNoBreakEvenRate string

	ChartSellSeries string
	ChartHoldSeries string

	SensitivityMarketAxis       string
	SensitivityAppreciationAxis string
	SensitivitySubtitle         string
	SensitivityMatrixTitle      string
	SensitivityClickHint        string
	SensitivityInsightsTitle    string
	SensitivityMostCommon       string
	SensitivityWinShare         string
	SensitivityDeltaTitle       string
	SensitivityDeltaNote        string

	PresetsMarketTitle       string
	PresetsAppreciationTitle string

	ReportGeneratedAt string
	ReportDisclaimer  string
}

var englishStrings = StringTable{
	AppTitle:    "Rent or Sell?",
	AppSubtitle: "Compare selling your property against holding it and renting it out",

	LabelHorizonYears:     "Projection horizon (years)",
	LabelMarketReturnRate: "Market return rate",
	LabelAppreciationRate: "Property appreciation rate",
	LabelReinvestmentRate: "Cash reinvestment rate",
	LabelSaleProceeds:     "Net sale proceeds",
	LabelPropertyValue:    "Property value",
	LabelAnnualRent:       "Annual rent income",
	LabelMaintenanceCost:  "Annual maintenance cost",
	LabelHOACost:          "Annual HOA fees",
	LabelOtherCosts:       "Other annual costs",
	LabelNetCashFlow:      "Net annual cash flow",

	SectionAssumptions: "Assumptions",
	SectionProjection:  "Year-by-Year Projection",
	SectionVerdict:     "Verdict",
	SectionSensitivity: "Sensitivity Analysis",

	HeaderYear:          "Year",
	HeaderSellValue:     "Sell & Invest",
	HeaderPropertyValue: "Property",
	HeaderCashValue:     "Cash",
	HeaderHoldNet:       "Hold Net",
	HeaderDelta:         "Delta",

	VerdictHoldWins: "Hold & Rent Wins",
	VerdictSellWins: "Sell & Invest Wins",
	VerdictTie:      "Tie",

	SummaryFinalDelta:      "Final advantage of holding: %s",
	SummaryBreakEvenYear:   "Holding pulls ahead in year %d",
	SummaryNoBreakEven:     "Holding never pulls ahead within the horizon",
	SummaryBreakEvenRate:   "Break-even appreciation rate: %s",
	SummaryNoBreakEvenRate: "No break-even appreciation rate in the searched range",

	ChartSellSeries: "Sell & Invest",
	ChartHoldSeries: "Hold & Rent",

	SensitivityMarketAxis:       "Market return",
	SensitivityAppreciationAxis: "Appreciation",
	SensitivitySubtitle:         "How market and housing rates change the verdict",
	SensitivityMatrixTitle:      "Verdict by Rate Combination",
	SensitivityClickHint:        "Click any cell to see the full projection for that rate combination.",
	SensitivityInsightsTitle:    "Key Insights",
	SensitivityMostCommon:       "Most Common Outcome",
	SensitivityWinShare:         "Wins in %d of %d scenarios (%.0f%%)",
	SensitivityDeltaTitle:       "Final Delta by Rate Combination",
	SensitivityDeltaNote:        "Positive favors holding, negative favors selling.",

	PresetsMarketTitle:       "Market return presets",
	PresetsAppreciationTitle: "Appreciation presets",

	ReportGeneratedAt: "Generated %s",
	ReportDisclaimer:  "Figures are projections, not financial advice.",
}

var spanishStrings = StringTable{
	AppTitle:    "¿Alquilar o Vender?",
	AppSubtitle: "Compara vender tu propiedad frente a conservarla y alquilarla",

	LabelHorizonYears:     "Horizonte de proyección (años)",
	LabelMarketReturnRate: "Rentabilidad del mercado",
	LabelAppreciationRate: "Tasa de apreciación del inmueble",
	LabelReinvestmentRate: "Tasa de reinversión del efectivo",
	LabelSaleProceeds:     "Ingresos netos de la venta",
	LabelPropertyValue:    "Valor del inmueble",
	LabelAnnualRent:       "Ingresos anuales por alquiler",
	LabelMaintenanceCost:  "Coste anual de mantenimiento",
	LabelHOACost:          "Cuotas anuales de comunidad",
	LabelOtherCosts:       "Otros costes anuales",
	LabelNetCashFlow:      "Flujo de caja neto anual",

	SectionAssumptions: "Supuestos",
	SectionProjection:  "Proyección año a año",
	SectionVerdict:     "Veredicto",
	SectionSensitivity: "Análisis de sensibilidad",

	HeaderYear:          "Año",
	HeaderSellValue:     "Vender e invertir",
	HeaderPropertyValue: "Inmueble",
	HeaderCashValue:     "Efectivo",
	HeaderHoldNet:       "Neto de conservar",
	HeaderDelta:         "Diferencia",

	VerdictHoldWins: "Gana mantener y alquilar",
	VerdictSellWins: "Gana vender e invertir",
	VerdictTie:      "Empate",

	SummaryFinalDelta:      "Ventaja final de conservar: %s",
	SummaryBreakEvenYear:   "Conservar toma la delantera en el año %d",
	SummaryNoBreakEven:     "Conservar nunca toma la delantera dentro del horizonte",
	SummaryBreakEvenRate:   "Tasa de apreciación de equilibrio: %s",
	SummaryNoBreakEvenRate: "Sin tasa de apreciación de equilibrio en el rango analizado",

	ChartSellSeries: "Vender e invertir",
	ChartHoldSeries: "Mantener y alquilar",

	SensitivityMarketAxis:       "Rentabilidad del mercado",
	SensitivityAppreciationAxis: "Apreciación",
	SensitivitySubtitle:         "Cómo las tasas de mercado y vivienda cambian el veredicto",
	SensitivityMatrixTitle:      "Veredicto por combinación de tasas",
	SensitivityClickHint:        "Haz clic en cualquier celda para ver la proyección completa de esa combinación.",
	SensitivityInsightsTitle:    "Conclusiones clave",
	SensitivityMostCommon:       "Resultado más frecuente",
	SensitivityWinShare:         "Gana en %d de %d escenarios (%.0f%%)",
	SensitivityDeltaTitle:       "Diferencia final por combinación de tasas",
	SensitivityDeltaNote:        "Positivo favorece conservar, negativo favorece vender.",

	PresetsMarketTitle:       "Preajustes de rentabilidad del mercado",
	PresetsAppreciationTitle: "Preajustes de apreciación",

	ReportGeneratedAt: "Generado el %s",
	ReportDisclaimer:  "Las cifras son proyecciones, no asesoramiento financiero.",
}

var stringTables = map[string]StringTable{
	LangEnglish: englishStrings,
	LangSpanish: spanishStrings,
}

// StringsFor returns the string table for a language key, falling back to
// English for anything unknown.
func StringsFor(lang string) StringTable {
	if st, ok := stringTables[lang]; ok {
		return st
	}
	return englishStrings
}

// VerdictString renders a verdict in this table's language.
func (st StringTable) VerdictString(v Verdict) string {
	switch v {
	case VerdictHoldWins:
		return st.VerdictHoldWins
	case VerdictSellWins:
		return st.VerdictSellWins
	default:
		return st.VerdictTie
	}
}

// matchSupportedLanguage maps any BCP 47 value onto one of the supported
// language keys, so "es-MX" and "es_ES" both land on "es". The bool reports
// whether the value matched at all.
func matchSupportedLanguage(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	parsed, err := language.Parse(normalizeLocaleName(raw))
	if err != nil {
		return "", false
	}
	_, index, confidence := languageMatcher.Match(parsed)
	if confidence == language.No {
		return "", false
	}
	return supportedLanguageKeys[index], true
}

// normalizeLocaleName turns POSIX locale names like "es_ES.UTF-8" into BCP 47
// form ("es-ES") so the matcher can read values straight from the environment.
func normalizeLocaleName(raw string) string {
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	return strings.ReplaceAll(raw, "_", "-")
}

// ResolveLanguage determines the display language for a request: the lang
// query parameter wins, then the preference cookie, then Accept-Language,
// then the supplied fallback. The bool indicates whether the choice came from
// the query parameter and should be persisted as a cookie.
func ResolveLanguage(r *http.Request, fallback string) (string, bool) {
	if r == nil {
		return fallback, false
	}

	if raw := r.URL.Query().Get(langParam); raw != "" {
		if lang, ok := matchSupportedLanguage(raw); ok {
			return lang, true
		}
	}

	if cookie, err := r.Cookie(langCookieName); err == nil {
		if lang, ok := matchSupportedLanguage(cookie.Value); ok {
			return lang, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			_, index, confidence := languageMatcher.Match(tags...)
			if confidence != language.No {
				return supportedLanguageKeys[index], false
			}
		}
	}

	return fallback, false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, lang string) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     langCookieName,
		Value:    lang,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// DetectLocaleLanguage picks a display language from the process environment,
// checking the usual locale variables in precedence order.
func DetectLocaleLanguage() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		raw := strings.TrimSpace(os.Getenv(name))
		if raw == "" {
			continue
		}
		// The portable "C" locale means untranslated output.
		if raw == "C" || raw == "POSIX" || strings.HasPrefix(raw, "C.") {
			return LangEnglish
		}
		if lang, ok := matchSupportedLanguage(raw); ok {
			return lang
		}
	}
	return LangEnglish
}

func printerFor(lang string) *message.Printer {
	if lang == LangSpanish {
		return message.NewPrinter(language.Spanish)
	}
	return message.NewPrinter(language.English)
}

// MoneyString formats a dollar amount with the grouping and decimal marks of
// the given language ("$42,000.00" in English, "$42.000,00" in Spanish).
func MoneyString(lang string, v float64) string {
	if v < 0 {
		return "-" + printerFor(lang).Sprintf("$%.2f", -v)
	}
	return printerFor(lang).Sprintf("$%.2f", v)
}

// PercentString formats a decimal rate as a localized percentage.
func PercentString(lang string, rate float64) string {
	return printerFor(lang).Sprintf("%.2f%%", rate*100)
}
