package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

func main() {
	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Rent or Sell - Property Hold vs Sell Calculator

Compares two strategies for a property you already own: sell it today and
invest the proceeds, or keep it, rent it out, and reinvest the rental surplus.
The projection compounds both strategies year by year and reports which one
ends ahead over the chosen horizon.

MODES:
  DESKTOP (default)
    Opens the calculator in an embedded browser window. Falls back to the
    console when no display is available.

  WEB (-web)
    Serves the same calculator over HTTP and opens it in your browser.
    Scenario state lives in the URL fragment, so links can be shared and
    bookmarked.

  CONSOLE (-console or any output flag)
    Prints the projection table and verdict to the terminal. Flags like
    -csv, -pdf, -html and -sensitivity compose for scripting.

Usage:
  %s [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %s                           Desktop window
  %s -web                      Web server mode (external browser)
  %s -web -addr :8080          Web server on a specific port
  %s -console                  Interactive console menu
  %s -details                  Projection table with every year printed
  %s -sensitivity              Verdict matrix across rate combinations
  %s -csv projection.csv       Write the projection to a CSV file
  %s -pdf report.pdf           Write the PDF report
  %s -lang es                  Spanish output
  %s -state "horizonYears=20&marketReturnRate=0.08"
                               Replay a scenario shared from the web UI

Configuration:
  Edit config.yaml to customize the scenario. The file is created on the
  first interactive run; see default-config.yaml for all options.

  Key settings:
    scenario.horizon_years:    Projection length in years
    sale.proceeds:             Net cash if you sell today
    sale.market_return:        Annual return on invested proceeds (7%% or 0.07)
    property.value:            Current property value
    property.appreciation:     Annual property appreciation rate
    rental.annual_rent:        Gross annual rent income
    rental.reinvestment_rate:  Return on reinvested rental surplus
    display.language:          en or es

Environment:
  RENTORSELL_ADDR         Web server address (default localhost:8080)
  RENTORSELL_EXPORT_DIR   Directory for UI exports (default exports)
  RENTORSELL_LANG         Display language override
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	// Command line flags
	configFile := flag.String("config", "config.yaml", "Path to YAML configuration file")
	stateFlag := flag.String("state", "", "Replay a scenario state shared from the web UI (URL fragment form)")
	langFlag := flag.String("lang", "", "Display language: en or es (overrides config and locale)")
	showDetails := flag.Bool("details", false, "Print every year of the projection table (long horizons are trimmed otherwise)")
	csvPath := flag.String("csv", "", "Write the projection as CSV to this path")
	pdfPath := flag.String("pdf", "", "Write the PDF report to this path")
	htmlPath := flag.String("html", "", "Write a self-contained HTML report to this path and open it")
	runSensitivity := flag.Bool("sensitivity", false, "Run sensitivity analysis across market/appreciation rates")
	showPresets := flag.Bool("presets", false, "List market return and appreciation presets")
	runInteractive := flag.Bool("interactive", false, "Build the scenario interactively and save it to -config")
	consoleMode := flag.Bool("console", false, "Use console interface instead of GUI (default is GUI)")
	webMode := flag.Bool("web", false, "Start web server mode (opens external browser)")
	uiMode := flag.Bool("ui", false, "Start embedded browser mode (webview window)")
	webAddr := flag.String("addr", "", "Web server address (default from RENTORSELL_ADDR, else localhost:8080)")
	flag.Parse()

	// Embedded browser mode
	if *uiMode {
		err := runEmbeddedUI(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Embedded UI error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Web server mode (external browser)
	if *webMode {
		config, err := LoadConfig(*configFile)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		serverCfg, err := LoadServerConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading server config: %v\n", err)
			os.Exit(1)
		}
		addr := *webAddr
		if addr == "" {
			addr = serverCfg.Addr
		}
		server := NewWebServer(config, serverCfg, addr)
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Web server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	opts := consoleOptions{
		configFile:  *configFile,
		state:       *stateFlag,
		lang:        *langFlag,
		details:     *showDetails,
		csvPath:     *csvPath,
		pdfPath:     *pdfPath,
		htmlPath:    *htmlPath,
		sensitivity: *runSensitivity,
		presets:     *showPresets,
		interactive: *runInteractive,
	}

	// Determine if we should run in console mode:
	// - Explicit -console flag, OR
	// - Any output/mode flags set (for automation/scripting)
	useConsole := *consoleMode || opts.anyModeSet() || opts.lang != ""

	if useConsole {
		runConsoleMode(opts)
		return
	}

	// Default: GUI mode
	err := runGUI(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "GUI error: %v\n", err)
		// Fall back to console mode if GUI fails
		fmt.Println("Falling back to console mode...")
		runConsoleMode(opts)
	}
}

// consoleOptions collects everything the console mode needs from the flags
type consoleOptions struct {
	configFile  string
	state       string
	lang        string
	details     bool
	csvPath     string
	pdfPath     string
	htmlPath    string
	sensitivity bool
	presets     bool
	interactive bool
}

// anyModeSet reports whether any flag already picked a console mode, in
// which case the interactive menu is skipped.
func (o consoleOptions) anyModeSet() bool {
	return o.details || o.sensitivity || o.presets || o.interactive ||
		o.csvPath != "" || o.pdfPath != "" || o.htmlPath != "" || o.state != ""
}

// runConsoleMode runs the application in console/terminal mode
func runConsoleMode(opts consoleOptions) {
	// Load configuration
	config, err := LoadConfig(opts.configFile)
	configMissing := os.IsNotExist(err)

	if err != nil && !configMissing {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// If no specific mode flags set, ask user which mode they want
	if !opts.anyModeSet() {
		switch promptForModeInitial(configMissing) {
		case "projection":
			// Default mode, continue
		case "details":
			opts.details = true
		case "sensitivity":
			opts.sensitivity = true
		case "html":
			opts.htmlPath = fmt.Sprintf("rent-or-sell-report_%s.html", time.Now().Format("2006-01-02_1504"))
		case "presets":
			opts.presets = true
		case "quit":
			fmt.Println("Goodbye!")
			return
		}
	}

	// Preset listing needs no scenario, so it skips the builder
	if opts.presets {
		PrintPresets(resolveConsoleLanguage(opts, config))
		return
	}

	// Build a scenario interactively when asked to, or when none exists
	if opts.interactive || configMissing {
		builder := NewInteractiveScenarioBuilder()
		config = builder.BuildScenarioConfig()
		if err := SaveConfig(config, opts.configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not save config: %v\n", err)
		} else {
			fmt.Printf("\nConfiguration saved to %s\n", opts.configFile)
			fmt.Println("You can edit this file to adjust settings for future runs.")
			fmt.Println()
		}
	}

	a := DefaultAssumptions()
	if config != nil {
		a = config.Assumptions()
	}

	lang := resolveConsoleLanguage(opts, config)
	if opts.state != "" {
		a, lang = DecodeFragment(opts.state, a, lang)
		// An explicit -lang still wins over the fragment's language
		if l, ok := matchSupportedLanguage(opts.lang); ok {
			lang = l
		}
	}

	st := StringsFor(lang)
	outcomes := RunProjection(a)

	PrintHeader(st)
	PrintAssumptions(a, lang)
	PrintProjectionTable(outcomes, lang, opts.details)
	PrintVerdict(a, outcomes, lang)

	fmt.Println()
	fmt.Printf("Replay this scenario: %s -state %q\n", os.Args[0], EncodeFragment(a, lang))

	// Write CSV export if requested
	if opts.csvPath != "" {
		data, err := ProjectionCSV(outcomes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building CSV: %v\n", err)
		} else if err := os.WriteFile(opts.csvPath, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
		} else {
			fmt.Printf("Projection CSV written to %s\n", opts.csvPath)
		}
	}

	// Write PDF report if requested
	if opts.pdfPath != "" {
		data, err := GenerateProjectionPDFReport(a, outcomes, lang)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating PDF: %v\n", err)
		} else if err := os.WriteFile(opts.pdfPath, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing PDF: %v\n", err)
		} else {
			fmt.Printf("PDF report written to %s\n", opts.pdfPath)
		}
	}

	// Generate HTML report if requested
	if opts.htmlPath != "" {
		if err := GenerateHTMLReport(a, outcomes, lang, opts.htmlPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating HTML report: %v\n", err)
		} else {
			fmt.Printf("HTML report written to %s\n", opts.htmlPath)
			openBrowser(opts.htmlPath)
		}
	}

	// Run sensitivity analysis if requested
	if opts.sensitivity {
		var sensCfg SensitivityConfig
		if config != nil {
			sensCfg = config.Sensitivity
		}
		analysis := RunSensitivityAnalysis(a, sensCfg)
		PrintSensitivityMatrix(analysis, lang)

		reportPath, err := GenerateSensitivityReport(analysis, lang)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating sensitivity report: %v\n", err)
		} else {
			fmt.Printf("\nGenerated report: %s\n", reportPath)
			openBrowser(reportPath)
		}
	}
}

// resolveConsoleLanguage picks the display language: explicit flag, then the
// config file, then the RENTORSELL_LANG environment override, then locale.
func resolveConsoleLanguage(opts consoleOptions, config *Config) string {
	if lang, ok := matchSupportedLanguage(opts.lang); ok {
		return lang
	}
	if config != nil {
		if lang, ok := matchSupportedLanguage(config.Display.Language); ok {
			return lang
		}
	}
	if serverCfg, err := LoadServerConfig(); err == nil {
		if lang, ok := matchSupportedLanguage(serverCfg.Language); ok {
			return lang
		}
	}
	return DetectLocaleLanguage()
}

// promptForModeInitial asks the user which console mode to run
func promptForModeInitial(configMissing bool) string {
	fmt.Println()
	printBoxHeader("RENT OR SELL - PROPERTY CALCULATOR")
	fmt.Println()

	if configMissing {
		fmt.Println("No configuration file found. The chosen mode starts with a few setup questions.")
		fmt.Println()
	}

	fmt.Println("Select mode:")
	fmt.Println()
	fmt.Println("    1) Projection          - Year-by-year table and verdict")
	fmt.Println("    2) Detailed projection - Prints every year, not just milestones")
	fmt.Println("    3) Sensitivity matrix  - Verdicts across market/appreciation rates")
	fmt.Println("    4) HTML report         - Self-contained report opened in the browser")
	fmt.Println("    5) Presets             - List market return and appreciation presets")
	fmt.Println()
	fmt.Println("    q) Quit")
	fmt.Println()
	fmt.Print("Enter choice (1-5 or q): ")

	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "projection"
	}

	switch strings.TrimSpace(strings.ToLower(input)) {
	case "1", "":
		return "projection"
	case "2":
		return "details"
	case "3":
		return "sensitivity"
	case "4":
		return "html"
	case "5":
		return "presets"
	case "q", "quit", "exit":
		return "quit"
	default:
		fmt.Println("Invalid choice, running the projection.")
		return "projection"
	}
}

// openBrowser opens a file or URL in the default browser
func openBrowser(target string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "linux":
		cmd = exec.Command("xdg-open", target)
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", target)
	default:
		fmt.Fprintf(os.Stderr, "Cannot open browser on %s\n", runtime.GOOS)
		return
	}

	err := cmd.Start()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening browser: %v\n", err)
	}
}
