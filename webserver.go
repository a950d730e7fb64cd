package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// WebServer serves the interactive calculator UI and its JSON API
type WebServer struct {
	config *Config
	server ServerConfig
	addr   string
}

// NewWebServer creates a new web server instance
func NewWebServer(config *Config, server ServerConfig, addr string) *WebServer {
	return &WebServer{
		config: config,
		server: server,
		addr:   addr,
	}
}

// fallbackLanguage is the language used when the request itself carries no
// usable hint: server config, then YAML config, then the process locale.
func (ws *WebServer) fallbackLanguage() string {
	if lang, ok := matchSupportedLanguage(ws.server.Language); ok {
		return lang
	}
	if ws.config != nil {
		if lang, ok := matchSupportedLanguage(ws.config.Display.Language); ok {
			return lang
		}
	}
	return DetectLocaleLanguage()
}

// defaultAssumptions are the values the UI starts from and the fallbacks for
// partial query strings.
func (ws *WebServer) defaultAssumptions() Assumptions {
	if ws.config != nil {
		return ws.config.Assumptions()
	}
	return DefaultAssumptions()
}

func (ws *WebServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", ws.handleIndex)
	mux.HandleFunc("/api/config", ws.handleGetConfig)
	mux.HandleFunc("/api/project", ws.handleProject)
	mux.HandleFunc("/api/project/sensitivity", ws.handleSensitivityGrid)
	mux.HandleFunc("/export/csv", ws.handleDownloadCSV)
	mux.HandleFunc("/api/export-csv", ws.handleExportCSV)
	mux.HandleFunc("/api/export-pdf", ws.handleExportPDF)
	mux.HandleFunc("/api/open-folder", ws.handleOpenFolder)
	return mux
}

// Start starts the web server and opens the browser
func (ws *WebServer) Start() error {
	mux := ws.routes()

	listener, err := net.Listen("tcp", ws.addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	actualAddr := listener.Addr().String()
	url := fmt.Sprintf("http://%s", actualAddr)
	if strings.HasPrefix(ws.addr, ":") || strings.HasPrefix(ws.addr, "0.0.0.0:") {
		_, port, _ := net.SplitHostPort(actualAddr)
		url = fmt.Sprintf("http://localhost:%s", port)
	}

	log.Printf("Starting web server on %s", actualAddr)
	log.Printf("Opening %s in your browser...", url)

	go openBrowser(url)

	return http.Serve(listener, mux)
}

// StartForEmbedded starts the server on an ephemeral localhost port for the
// desktop window. It returns the URL to load and a cleanup function.
func (ws *WebServer) StartForEmbedded() (string, func(), error) {
	mux := ws.routes()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("failed to start embedded server: %w", err)
	}

	url := fmt.Sprintf("http://%s", listener.Addr().String())
	server := &http.Server{Handler: mux}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Embedded server error: %v", err)
		}
	}()

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}

	return url, cleanup, nil
}

// handleIndex serves the main UI page
func (ws *WebServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	// An explicit ?lang= sticks for future visits.
	if lang, explicit := ResolveLanguage(r, ws.fallbackLanguage()); explicit {
		SetLanguageCookie(w, lang)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, webUIHTML)
}

// APIPreset is the wire form of a market or appreciation preset
type APIPreset struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Region string  `json:"region,omitempty"`
	Rate   float64 `json:"rate"`
}

// APIConfigResponse carries the server-side defaults the UI starts from
type APIConfigResponse struct {
	Assumptions         Assumptions       `json:"assumptions"`
	Sensitivity         SensitivityConfig `json:"sensitivity"`
	Language            string            `json:"language"`
	MarketPresets       []APIPreset       `json:"market_presets"`
	AppreciationPresets []APIPreset       `json:"appreciation_presets"`
}

// handleGetConfig returns resolved defaults, presets and the display language
func (ws *WebServer) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	lang, _ := ResolveLanguage(r, ws.fallbackLanguage())

	resp := APIConfigResponse{
		Assumptions: ws.defaultAssumptions(),
		Language:    lang,
	}
	if ws.config != nil {
		resp.Sensitivity = ws.config.Sensitivity
	}

	byRegion := GetMarketPresetsByRegion()
	for _, region := range presetRegionOrder {
		for _, p := range byRegion[region] {
			resp.MarketPresets = append(resp.MarketPresets, APIPreset{
				ID:     p.ID,
				Name:   p.Name,
				Region: p.Region,
				Rate:   p.AnnualReturn,
			})
		}
	}
	for _, p := range AppreciationPresets {
		resp.AppreciationPresets = append(resp.AppreciationPresets, APIPreset{
			ID:   p.ID,
			Name: p.Name,
			Rate: p.AnnualRate,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// APIProjectionRequest represents a projection request from the UI
type APIProjectionRequest struct {
	Assumptions Assumptions `json:"assumptions"`
}

// APIProjectionResponse carries the full projection plus the derived summary
type APIProjectionResponse struct {
	Success            bool            `json:"success"`
	Error              string          `json:"error,omitempty"`
	Years              []YearlyOutcome `json:"years"`
	Verdict            string          `json:"verdict,omitempty"`
	FinalDelta         float64         `json:"final_delta"`
	NetCashFlow        float64         `json:"net_cash_flow"`
	BreakEvenYear      int             `json:"break_even_year"`
	BreakEvenRate      float64         `json:"break_even_rate"`
	BreakEvenRateFound bool            `json:"break_even_rate_found"`
}

// handleProject runs the projection for the posted assumptions
func (ws *WebServer) handleProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APIProjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error())
		return
	}

	outcomes := RunProjection(req.Assumptions)
	if outcomes == nil {
		outcomes = []YearlyOutcome{}
	}

	resp := APIProjectionResponse{
		Success:       true,
		Years:         outcomes,
		Verdict:       Classify(outcomes).Key(),
		FinalDelta:    finalDelta(outcomes),
		NetCashFlow:   req.Assumptions.NetAnnualCashFlow(),
		BreakEvenYear: BreakEvenYear(outcomes),
	}
	resp.BreakEvenRate, resp.BreakEvenRateFound = BreakEvenAppreciationRate(req.Assumptions)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// APISensitivityRequest represents a sensitivity grid request
type APISensitivityRequest struct {
	Assumptions Assumptions       `json:"assumptions"`
	Grid        SensitivityConfig `json:"grid"`
}

// APISensitivityCell is one rate combination in the wire grid
type APISensitivityCell struct {
	MarketReturn  float64 `json:"market_return"`
	Appreciation  float64 `json:"appreciation"`
	Verdict       string  `json:"verdict"`
	FinalDelta    float64 `json:"final_delta"`
	BreakEvenYear int     `json:"break_even_year"`
}

// APISensitivityResponse carries the verdict matrix
type APISensitivityResponse struct {
	Success           bool                   `json:"success"`
	Error             string                 `json:"error,omitempty"`
	MarketReturnRates []float64              `json:"market_return_rates"`
	AppreciationRates []float64              `json:"appreciation_rates"`
	Grid              [][]APISensitivityCell `json:"grid"`
}

// handleSensitivityGrid runs projections across a rate grid
func (ws *WebServer) handleSensitivityGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req APISensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error())
		return
	}

	analysis := RunSensitivityAnalysis(req.Assumptions, req.Grid)

	grid := make([][]APISensitivityCell, len(analysis.Cells))
	for mi, row := range analysis.Cells {
		grid[mi] = make([]APISensitivityCell, len(row))
		for ai, cell := range row {
			grid[mi][ai] = APISensitivityCell{
				MarketReturn:  cell.MarketReturn,
				Appreciation:  cell.Appreciation,
				Verdict:       cell.Verdict.Key(),
				FinalDelta:    cell.FinalDelta,
				BreakEvenYear: cell.BreakEvenYear,
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(APISensitivityResponse{
		Success:           true,
		MarketReturnRates: analysis.MarketReturnRates,
		AppreciationRates: analysis.AppreciationRates,
		Grid:              grid,
	})
}

// handleDownloadCSV streams the projection as a browser download. The
// assumptions arrive in the query string using the fragment codec, so the
// UI can link to it with the state it already has.
func (ws *WebServer) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	a, _ := DecodeFragment(r.URL.RawQuery, ws.defaultAssumptions(), ws.fallbackLanguage())
	data, err := ProjectionCSV(RunProjection(a))
	if err != nil {
		http.Error(w, "Failed to build CSV: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvDownloadFilename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// CSVExportRequest represents a request to save a CSV into the export dir
type CSVExportRequest struct {
	Assumptions Assumptions `json:"assumptions"`
	Filename    string      `json:"filename,omitempty"`
}

// CSVExportResponse represents the response from CSV export
type CSVExportResponse struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path"`
	Message  string `json:"message"`
}

// handleExportCSV saves the projection CSV to the export directory
func (ws *WebServer) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CSVExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error())
		return
	}

	data, err := ProjectionCSV(RunProjection(req.Assumptions))
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(CSVExportResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to build CSV: %v", err),
		})
		return
	}

	filename := req.Filename
	if filename == "" {
		filename = exportCSVFilename(time.Now())
	}

	absPath, err := ws.saveExport(filename, data)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(CSVExportResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	log.Printf("CSV export saved to %s", absPath)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CSVExportResponse{
		Success:  true,
		FilePath: absPath,
		Message:  fmt.Sprintf("CSV saved to %s", filename),
	})
}

// PDFExportRequest represents a request to save a PDF report
type PDFExportRequest struct {
	Assumptions Assumptions `json:"assumptions"`
	Lang        string      `json:"lang,omitempty"`
}

// PDFExportResponse represents the response from PDF export
type PDFExportResponse struct {
	Success  bool   `json:"success"`
	FilePath string `json:"file_path,omitempty"`
	Message  string `json:"message"`
}

// handleExportPDF renders the PDF report and saves it to the export directory
func (ws *WebServer) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PDFExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error())
		return
	}

	lang, ok := matchSupportedLanguage(req.Lang)
	if !ok {
		lang, _ = ResolveLanguage(r, ws.fallbackLanguage())
	}

	pdfBytes, err := GenerateProjectionPDFReport(req.Assumptions, RunProjection(req.Assumptions), lang)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(PDFExportResponse{
			Success: false,
			Message: fmt.Sprintf("Failed to generate PDF: %v", err),
		})
		return
	}

	filename := exportPDFFilename(time.Now())
	absPath, err := ws.saveExport(filename, pdfBytes)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(PDFExportResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	log.Printf("PDF report saved to %s", absPath)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PDFExportResponse{
		Success:  true,
		FilePath: absPath,
		Message:  fmt.Sprintf("PDF saved to %s", filename),
	})
}

// saveExport writes a file into the export directory and returns its
// absolute path.
func (ws *WebServer) saveExport(filename string, data []byte) (string, error) {
	exportDir := ws.server.ExportDir
	if exportDir == "" {
		exportDir = "exports"
	}
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	filePath := filepath.Join(exportDir, filename)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		absPath = filePath
	}
	return absPath, nil
}

// OpenFolderRequest represents a request to open a folder in the file manager
type OpenFolderRequest struct {
	FilePath string `json:"file_path"`
}

// handleOpenFolder opens the folder containing an exported file
func (ws *WebServer) handleOpenFolder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req OpenFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "Invalid request body: "+err.Error())
		return
	}

	dir := ws.server.ExportDir
	if req.FilePath != "" {
		dir = filepath.Dir(req.FilePath)
	}
	if dir == "" {
		dir = "exports"
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", dir)
	case "windows":
		cmd = exec.Command("explorer", dir)
	default:
		cmd = exec.Command("xdg-open", dir)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := cmd.Start(); err != nil {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": fmt.Sprintf("Failed to open folder: %v", err),
		})
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Folder opened",
	})
}

// sendJSONError sends a JSON error response
func sendJSONError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(APIProjectionResponse{
		Success: false,
		Error:   message,
		Years:   []YearlyOutcome{},
	})
}

// webUIHTML is the embedded web interface HTML
const webUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Rent or Sell?</title>
    <link rel="icon" href="data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 100 100'%3E%3Cpath d='M50 10 8 48h12v40h24V62h12v26h24V48h12z' fill='%232563eb'/%3E%3C/svg%3E">
    <style>
        :root {
            --primary: #2563eb;
            --primary-dark: #1d4ed8;
            --success: #16a34a;
            --warning: #ea580c;
            --danger: #dc2626;
            --bg: #f1f5f9;
            --bg-darker: #e2e8f0;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.5;
        }
        .header {
            background: linear-gradient(135deg, var(--primary) 0%, var(--primary-dark) 100%);
            color: white;
            padding: 1.25rem 2rem;
            display: flex;
            justify-content: space-between;
            align-items: center;
            flex-wrap: wrap;
            gap: 0.75rem;
        }
        .header h1 { font-size: 1.5rem; font-weight: 600; }
        .header p { opacity: 0.9; font-size: 0.875rem; }
        .lang-switch { display: flex; gap: 0.25rem; }
        .lang-btn {
            background: rgba(255, 255, 255, 0.15);
            border: 1px solid rgba(255, 255, 255, 0.4);
            color: white;
            padding: 0.35rem 0.75rem;
            border-radius: 6px;
            cursor: pointer;
            font-size: 0.8rem;
            font-weight: 600;
        }
        .lang-btn.active { background: white; color: var(--primary); }
        .config-toggle {
            position: fixed;
            top: 0.75rem;
            left: 0.75rem;
            z-index: 100;
            background: rgba(255, 255, 255, 0.15);
            border: 1px solid rgba(255, 255, 255, 0.4);
            color: white;
            padding: 0.35rem 0.6rem;
            border-radius: 6px;
            cursor: pointer;
            font-size: 1rem;
            display: none;
        }
        .container {
            display: grid;
            grid-template-columns: 400px 1fr;
            gap: 1.5rem;
            padding: 1.5rem 2rem;
            max-width: 1500px;
            margin: 0 auto;
            align-items: start;
        }
        .config-panel.collapsed { display: none; }
        .card {
            background: var(--card-bg);
            border-radius: 12px;
            padding: 1.25rem;
            margin-bottom: 1rem;
            box-shadow: 0 1px 3px rgba(0, 0, 0, 0.1);
        }
        .card h2 {
            font-size: 0.95rem;
            font-weight: 600;
            margin-bottom: 0.75rem;
            color: var(--text);
        }
        .form-group { margin-bottom: 0.75rem; }
        .form-group label {
            display: block;
            font-size: 0.7rem;
            font-weight: 600;
            text-transform: uppercase;
            color: var(--text-muted);
            margin-bottom: 0.25rem;
        }
        .form-group input, .form-group select {
            width: 100%;
            padding: 0.5rem;
            border: 1px solid var(--border);
            border-radius: 6px;
            font-size: 0.875rem;
        }
        .form-group input:focus, .form-group select:focus {
            outline: none;
            border-color: var(--primary);
        }
        .form-row { display: grid; grid-template-columns: 1fr 1fr; gap: 0.75rem; }
        .form-hint { font-size: 0.65rem; color: var(--text-muted); margin-top: 0.15rem; }
        .cash-flow-line {
            display: flex;
            justify-content: space-between;
            padding: 0.5rem 0.6rem;
            background: var(--bg);
            border-radius: 6px;
            font-size: 0.8rem;
            margin-top: 0.25rem;
        }
        .cash-flow-line .value { font-weight: 600; }
        .btn {
            display: block;
            width: 100%;
            padding: 0.6rem;
            border: 1px solid var(--border);
            border-radius: 6px;
            background: var(--card-bg);
            color: var(--text);
            font-size: 0.85rem;
            font-weight: 600;
            cursor: pointer;
            margin-bottom: 0.5rem;
        }
        .btn:hover { border-color: var(--primary); color: var(--primary); }
        .btn-primary {
            background: var(--primary);
            border-color: var(--primary);
            color: white;
        }
        .btn-primary:hover { background: var(--primary-dark); color: white; }
        .share-status {
            display: block;
            text-align: center;
            font-size: 0.75rem;
            color: var(--success);
            min-height: 1rem;
        }
        .summary-bar {
            display: flex;
            flex-wrap: wrap;
            gap: 1.25rem;
            background: var(--card-bg);
            border-radius: 12px;
            padding: 0.9rem 1.25rem;
            margin-bottom: 1rem;
            box-shadow: 0 1px 3px rgba(0, 0, 0, 0.1);
            align-items: center;
        }
        .summary-item { display: flex; flex-direction: column; }
        .summary-item .label {
            font-size: 0.65rem;
            text-transform: uppercase;
            color: var(--text-muted);
            font-weight: 600;
        }
        .summary-item .value { font-size: 1rem; font-weight: 700; }
        .verdict-banner {
            border-radius: 8px;
            padding: 0.9rem 1.1rem;
            margin-bottom: 1rem;
            font-weight: 600;
        }
        .verdict-banner .detail {
            display: block;
            font-weight: 400;
            font-size: 0.8rem;
            color: var(--text-muted);
            margin-top: 0.25rem;
        }
        .verdict-hold { background: #dcfce7; color: #166534; }
        .verdict-sell { background: #dbeafe; color: #1e40af; }
        .verdict-tie { background: #fef9c3; color: #854d0e; }
        .chart-wrap { width: 100%; overflow-x: auto; margin-bottom: 1rem; }
        .chart-wrap svg { width: 100%; height: auto; min-width: 480px; }
        .chart-legend {
            display: flex;
            gap: 1.25rem;
            font-size: 0.75rem;
            color: var(--text-muted);
            margin-bottom: 0.5rem;
        }
        .legend-item { display: flex; align-items: center; gap: 0.35rem; }
        .legend-swatch { width: 1rem; height: 0.3rem; border-radius: 2px; }
        .projection-table {
            width: 100%;
            border-collapse: collapse;
            font-size: 0.8rem;
        }
        .projection-table th, .projection-table td {
            padding: 0.5rem 0.6rem;
            text-align: right;
            border-bottom: 1px solid var(--border);
            white-space: nowrap;
        }
        .projection-table th {
            background: var(--bg);
            font-weight: 600;
            font-size: 0.7rem;
            text-transform: uppercase;
            color: var(--text-muted);
        }
        .projection-table th:first-child, .projection-table td:first-child { text-align: left; }
        .projection-table tr:hover { background: rgba(37, 99, 235, 0.04); }
        .projection-table .final-row td { font-weight: 700; background: var(--bg); }
        .negative { color: var(--danger); }
        .positive { color: var(--success); }
        .loading {
            display: none;
            text-align: center;
            padding: 2rem;
            color: var(--text-muted);
        }
        .loading.show { display: block; }
        .spinner {
            width: 40px;
            height: 40px;
            border: 3px solid var(--border);
            border-top-color: var(--primary);
            border-radius: 50%;
            animation: spin 1s linear infinite;
            margin: 0 auto 1rem;
        }
        @keyframes spin { to { transform: rotate(360deg); } }
        .sensitivity-grid { display: grid; gap: 2px; font-size: 0.7rem; }
        .sensitivity-header {
            padding: 0.35rem 0.25rem;
            text-align: center;
            font-weight: 600;
            color: var(--text-muted);
        }
        .sensitivity-cell {
            padding: 0.4rem 0.25rem;
            text-align: center;
            border-radius: 3px;
            cursor: pointer;
            transition: transform 0.1s;
            font-weight: 600;
        }
        .sensitivity-cell:hover { transform: scale(1.1); }
        .sensitivity-legend {
            display: flex;
            flex-wrap: wrap;
            gap: 0.75rem;
            margin-top: 0.6rem;
            font-size: 0.75rem;
        }
        .sensitivity-legend .legend-color { width: 1rem; height: 1rem; border-radius: 2px; }
        .sensitivity-hint { font-size: 0.75rem; color: var(--text-muted); margin-bottom: 0.5rem; }
        .error-text { color: var(--danger); }
        @media (max-width: 900px) {
            .container { grid-template-columns: 1fr; padding: 1rem; }
            .config-toggle { display: block; }
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1 data-i18n="title">Rent or Sell?</h1>
            <p data-i18n="subtitle">Compare selling your property against holding it and renting it out</p>
        </div>
        <div class="lang-switch">
            <button class="lang-btn active" id="lang-en" onclick="setLanguage('en')">EN</button>
            <button class="lang-btn" id="lang-es" onclick="setLanguage('es')">ES</button>
        </div>
    </div>

    <button class="config-toggle" id="config-toggle" onclick="toggleConfigPanel()">&#9776;</button>

    <div class="container">
        <!-- Left Column - Assumptions -->
        <div class="config-panel" id="config-panel">
            <div class="card">
                <h2 data-i18n="secSale">Sell &amp; Invest</h2>
                <div class="form-group">
                    <label data-i18n="labelProceeds">Net sale proceeds</label>
                    <input type="text" id="proceeds" value="300000">
                    <div class="form-hint" data-i18n="hintMoney">Accepts 300000, 300k or 1.5m</div>
                </div>
                <div class="form-group">
                    <label data-i18n="labelMarketReturn">Market return rate (%)</label>
                    <input type="number" id="market-return" value="7" step="0.1">
                </div>
                <div class="form-group">
                    <label data-i18n="presetMarketTitle">Market return presets</label>
                    <select id="market-preset">
                        <option value="" data-i18n="presetManual">Manual entry</option>
                    </select>
                </div>
            </div>

            <div class="card">
                <h2 data-i18n="secProperty">Hold &amp; Rent</h2>
                <div class="form-group">
                    <label data-i18n="labelPropertyValue">Property value</label>
                    <input type="text" id="property-value" value="800000">
                </div>
                <div class="form-group">
                    <label data-i18n="labelAppreciation">Property appreciation rate (%)</label>
                    <input type="number" id="appreciation" value="3" step="0.1">
                </div>
                <div class="form-group">
                    <label data-i18n="presetAppreciationTitle">Appreciation presets</label>
                    <select id="appreciation-preset">
                        <option value="" data-i18n="presetManual">Manual entry</option>
                    </select>
                </div>
            </div>

            <div class="card">
                <h2 data-i18n="secCashFlow">Rental Cash Flow</h2>
                <div class="form-row">
                    <div class="form-group">
                        <label data-i18n="labelRent">Annual rent income</label>
                        <input type="text" id="annual-rent" value="42000">
                    </div>
                    <div class="form-group">
                        <label data-i18n="labelMaintenance">Annual maintenance cost</label>
                        <input type="text" id="maintenance" value="2500">
                    </div>
                </div>
                <div class="form-row">
                    <div class="form-group">
                        <label data-i18n="labelHOA">Annual HOA fees</label>
                        <input type="text" id="hoa" value="3600">
                    </div>
                    <div class="form-group">
                        <label data-i18n="labelOther">Other annual costs</label>
                        <input type="text" id="other-costs" value="0">
                    </div>
                </div>
                <div class="form-group">
                    <label data-i18n="labelReinvestment">Cash reinvestment rate (%)</label>
                    <input type="number" id="reinvestment" value="7" step="0.1">
                </div>
                <div class="cash-flow-line">
                    <span data-i18n="labelNetCashFlow">Net annual cash flow</span>
                    <span class="value" id="net-cash-flow">$35,900.00</span>
                </div>
            </div>

            <div class="card">
                <h2 data-i18n="secProjection">Projection</h2>
                <div class="form-group">
                    <label data-i18n="labelHorizon">Projection horizon (years)</label>
                    <input type="number" id="horizon" value="15" min="0" step="1">
                </div>
            </div>

            <div class="card">
                <h2 data-i18n="secSensitivity">Sensitivity Analysis</h2>
                <div class="form-row">
                    <div class="form-group">
                        <label data-i18n="sensMarketMin">Market min (%)</label>
                        <input type="number" id="sens-market-min" value="3" step="1">
                    </div>
                    <div class="form-group">
                        <label data-i18n="sensMarketMax">Market max (%)</label>
                        <input type="number" id="sens-market-max" value="11" step="1">
                    </div>
                </div>
                <div class="form-row">
                    <div class="form-group">
                        <label data-i18n="sensApprMin">Appreciation min (%)</label>
                        <input type="number" id="sens-appr-min" value="0" step="1">
                    </div>
                    <div class="form-group">
                        <label data-i18n="sensApprMax">Appreciation max (%)</label>
                        <input type="number" id="sens-appr-max" value="6" step="1">
                    </div>
                </div>
                <div class="form-group">
                    <label data-i18n="sensStep">Step (%)</label>
                    <input type="number" id="sens-step" value="1" step="0.5" min="0.5">
                </div>
                <button class="btn" id="run-sensitivity-btn" data-i18n="btnRunSensitivity" onclick="runSensitivityGrid()">Run sensitivity grid</button>
            </div>

            <div class="card">
                <button class="btn btn-primary" id="share-btn" data-i18n="btnShare" onclick="copyShareLink()">Copy share link</button>
                <span class="share-status" id="share-status"></span>
                <button class="btn" id="download-csv-btn" data-i18n="btnDownloadCsv" onclick="downloadCSV()">Download CSV</button>
                <button class="btn" id="save-csv-btn" data-i18n="btnSaveCsv" onclick="saveCSV()">Save CSV to exports</button>
                <button class="btn" id="save-pdf-btn" data-i18n="btnSavePdf" onclick="savePDF()">Save PDF report</button>
            </div>
        </div>

        <!-- Right Column - Results -->
        <div class="results-panel">
            <div class="summary-bar">
                <div class="summary-item">
                    <span class="label" data-i18n="summaryVerdict">Verdict</span>
                    <span class="value" id="summary-verdict">-</span>
                </div>
                <div class="summary-item">
                    <span class="label" data-i18n="summaryFinalDelta">Final Delta</span>
                    <span class="value" id="summary-delta">-</span>
                </div>
                <div class="summary-item">
                    <span class="label" data-i18n="summaryBreakEven">Break-even</span>
                    <span class="value" id="summary-breakeven">-</span>
                </div>
                <div class="summary-item">
                    <span class="label" data-i18n="summaryHorizon">Horizon</span>
                    <span class="value" id="summary-horizon">-</span>
                </div>
            </div>

            <div class="card">
                <div id="verdict-banner" class="verdict-banner verdict-tie" style="display:none;"></div>
                <h2 data-i18n="secChart">Year-by-Year Projection</h2>
                <div class="chart-legend">
                    <div class="legend-item"><span class="legend-swatch" style="background:#2563eb;"></span><span data-i18n="chartSell">Sell &amp; Invest</span></div>
                    <div class="legend-item"><span class="legend-swatch" style="background:#16a34a;"></span><span data-i18n="chartHold">Hold &amp; Rent</span></div>
                </div>
                <div class="chart-wrap" id="chart-wrap"></div>
                <div class="loading" id="loading">
                    <div class="spinner"></div>
                    <p data-i18n="loading">Computing projection...</p>
                </div>
                <div id="table-wrap"></div>
            </div>

            <div class="card" id="sensitivity-card" style="display:none;">
                <h2 data-i18n="secSensitivity">Sensitivity Analysis</h2>
                <div class="sensitivity-hint" data-i18n="sensAxes">Rows: market return. Columns: appreciation.</div>
                <div id="sensitivity-content"></div>
                <div class="sensitivity-hint" data-i18n="sensHint" style="margin-top:0.5rem;">Click any cell to load that rate combination.</div>
            </div>
        </div>
    </div>

    <script>
        // Fixed-shape string tables, one per supported language.
        var STRINGS = {
            en: {
                title: 'Rent or Sell?',
                subtitle: 'Compare selling your property against holding it and renting it out',
                secSale: 'Sell & Invest',
                secProperty: 'Hold & Rent',
                secCashFlow: 'Rental Cash Flow',
                secProjection: 'Projection',
                secSensitivity: 'Sensitivity Analysis',
                secChart: 'Year-by-Year Projection',
                labelHorizon: 'Projection horizon (years)',
                labelMarketReturn: 'Market return rate (%)',
                labelAppreciation: 'Property appreciation rate (%)',
                labelReinvestment: 'Cash reinvestment rate (%)',
                labelProceeds: 'Net sale proceeds',
                labelPropertyValue: 'Property value',
                labelRent: 'Annual rent income',
                labelMaintenance: 'Annual maintenance cost',
                labelHOA: 'Annual HOA fees',
                labelOther: 'Other annual costs',
                labelNetCashFlow: 'Net annual cash flow',
                hintMoney: 'Accepts 300000, 300k or 1.5m',
                presetMarketTitle: 'Market return presets',
                presetAppreciationTitle: 'Appreciation presets',
                presetManual: 'Manual entry',
                headerYear: 'Year',
                headerSell: 'Sell & Invest',
                headerProperty: 'Property',
                headerCash: 'Cash',
                headerHoldNet: 'Hold Net',
                headerDelta: 'Delta',
                verdictHold: 'Hold & Rent Wins',
                verdictSell: 'Sell & Invest Wins',
                verdictTie: 'Tie',
                finalDelta: 'Final advantage of holding: %s',
                breakEvenYear: 'Holding pulls ahead in year %d',
                noBreakEven: 'Holding never pulls ahead within the horizon',
                breakEvenRate: 'Break-even appreciation rate: %s',
                noBreakEvenRate: 'No break-even appreciation rate in the searched range',
                chartSell: 'Sell & Invest',
                chartHold: 'Hold & Rent',
                summaryVerdict: 'Verdict',
                summaryFinalDelta: 'Final Delta',
                summaryBreakEven: 'Break-even',
                summaryHorizon: 'Horizon',
                yearsSuffix: 'years',
                never: 'Never',
                btnShare: 'Copy share link',
                statusCopied: 'Link copied',
                statusCopyFailed: 'Copy failed',
                btnDownloadCsv: 'Download CSV',
                btnSaveCsv: 'Save CSV to exports',
                btnSavePdf: 'Save PDF report',
                btnRunSensitivity: 'Run sensitivity grid',
                csvSaved: 'CSV Exported Successfully',
                pdfSaved: 'PDF Report Generated',
                exportFailed: 'Export failed: ',
                openFolder: 'Open Folder',
                dismiss: 'Dismiss',
                loading: 'Computing projection...',
                errorPrefix: 'Error: ',
                sensMarketMin: 'Market min (%)',
                sensMarketMax: 'Market max (%)',
                sensApprMin: 'Appreciation min (%)',
                sensApprMax: 'Appreciation max (%)',
                sensStep: 'Step (%)',
                sensAxes: 'Rows: market return. Columns: appreciation.',
                sensHint: 'Click any cell to load that rate combination.'
            },
            es: {
                title: '¿Alquilar o Vender?',
                subtitle: 'Compara vender tu propiedad frente a conservarla y alquilarla',
                secSale: 'Vender e invertir',
                secProperty: 'Mantener y alquilar',
                secCashFlow: 'Flujo de caja del alquiler',
                secProjection: 'Proyección',
                secSensitivity: 'Análisis de sensibilidad',
                secChart: 'Proyección año a año',
                labelHorizon: 'Horizonte de proyección (años)',
                labelMarketReturn: 'Rentabilidad del mercado (%)',
                labelAppreciation: 'Tasa de apreciación del inmueble (%)',
                labelReinvestment: 'Tasa de reinversión del efectivo (%)',
                labelProceeds: 'Ingresos netos de la venta',
                labelPropertyValue: 'Valor del inmueble',
                labelRent: 'Ingresos anuales por alquiler',
                labelMaintenance: 'Coste anual de mantenimiento',
                labelHOA: 'Cuotas anuales de comunidad',
                labelOther: 'Otros costes anuales',
                labelNetCashFlow: 'Flujo de caja neto anual',
                hintMoney: 'Acepta 300000, 300k o 1.5m',
                presetMarketTitle: 'Preajustes de rentabilidad del mercado',
                presetAppreciationTitle: 'Preajustes de apreciación',
                presetManual: 'Entrada manual',
                headerYear: 'Año',
                headerSell: 'Vender e invertir',
                headerProperty: 'Inmueble',
                headerCash: 'Efectivo',
                headerHoldNet: 'Neto de conservar',
                headerDelta: 'Diferencia',
                verdictHold: 'Gana mantener y alquilar',
                verdictSell: 'Gana vender e invertir',
                verdictTie: 'Empate',
                finalDelta: 'Ventaja final de conservar: %s',
                breakEvenYear: 'Conservar toma la delantera en el año %d',
                noBreakEven: 'Conservar nunca toma la delantera dentro del horizonte',
                breakEvenRate: 'Tasa de apreciación de equilibrio: %s',
                noBreakEvenRate: 'Sin tasa de apreciación de equilibrio en el rango analizado',
                chartSell: 'Vender e invertir',
                chartHold: 'Mantener y alquilar',
                summaryVerdict: 'Veredicto',
                summaryFinalDelta: 'Diferencia final',
                summaryBreakEven: 'Punto de equilibrio',
                summaryHorizon: 'Horizonte',
                yearsSuffix: 'años',
                never: 'Nunca',
                btnShare: 'Copiar enlace',
                statusCopied: 'Enlace copiado',
                statusCopyFailed: 'No se pudo copiar',
                btnDownloadCsv: 'Descargar CSV',
                btnSaveCsv: 'Guardar CSV en exports',
                btnSavePdf: 'Guardar informe PDF',
                btnRunSensitivity: 'Ejecutar matriz de sensibilidad',
                csvSaved: 'CSV exportado correctamente',
                pdfSaved: 'Informe PDF generado',
                exportFailed: 'Error al exportar: ',
                openFolder: 'Abrir carpeta',
                dismiss: 'Cerrar',
                loading: 'Calculando la proyección...',
                errorPrefix: 'Error: ',
                sensMarketMin: 'Mercado mín (%)',
                sensMarketMax: 'Mercado máx (%)',
                sensApprMin: 'Apreciación mín (%)',
                sensApprMax: 'Apreciación máx (%)',
                sensStep: 'Paso (%)',
                sensAxes: 'Filas: rentabilidad del mercado. Columnas: apreciación.',
                sensHint: 'Haz clic en cualquier celda para cargar esa combinación de tasas.'
            }
        };

        // Documented defaults; /api/config may replace them with the
        // server's config file values before the first render.
        var DEFAULTS = {
            horizonYears: 15,
            marketReturnRate: 0.07,
            appreciationRate: 0.03,
            reinvestmentRate: 0.07,
            saleProceeds: 300000,
            propertyValue: 800000,
            annualRent: 42000,
            maintenanceCost: 2500,
            hoaCost: 3600,
            otherCosts: 0
        };

        // Form field wiring. Order matters: it is the canonical fragment
        // key order, kept in lockstep with the server-side codec.
        var FIELDS = [
            { id: 'horizon', key: 'horizonYears', kind: 'int' },
            { id: 'market-return', key: 'marketReturnRate', kind: 'rate' },
            { id: 'appreciation', key: 'appreciationRate', kind: 'rate' },
            { id: 'reinvestment', key: 'reinvestmentRate', kind: 'rate' },
            { id: 'proceeds', key: 'saleProceeds', kind: 'money' },
            { id: 'property-value', key: 'propertyValue', kind: 'money' },
            { id: 'annual-rent', key: 'annualRent', kind: 'money' },
            { id: 'maintenance', key: 'maintenanceCost', kind: 'money' },
            { id: 'hoa', key: 'hoaCost', kind: 'money' },
            { id: 'other-costs', key: 'otherCosts', kind: 'money' }
        ];

        var VERDICT_COLORS = { hold: '#c8e6c9', sell: '#bbdefb', tie: '#fff9c4' };

        var state = Object.assign({}, DEFAULTS, { lang: 'en' });
        var lastResult = null;
        var lastSensitivity = null;
        var lastExportPath = '';
        var projectionTimer = null;
        var statusTimer = null;

        function t() { return STRINGS[state.lang] || STRINGS.en; }

        // fmt substitutes the single %s or %d placeholder.
        function fmt(tpl, val) {
            return tpl.replace('%s', val).replace('%d', val);
        }

        function moneyFormatter() {
            var locale = state.lang === 'es' ? 'es-ES' : 'en-US';
            return new Intl.NumberFormat(locale, { style: 'currency', currency: 'USD' });
        }

        function fmtMoney(val) {
            return moneyFormatter().format(val);
        }

        function fmtMoneyCompact(val) {
            var sign = val < 0 ? '-' : '';
            var abs = Math.abs(val);
            if (abs >= 1000000) return sign + '$' + (abs / 1000000).toFixed(1) + 'm';
            if (abs >= 1000) return sign + '$' + Math.round(abs / 1000) + 'k';
            return sign + '$' + Math.round(abs);
        }

        function fmtPercent(rate) {
            return (rate * 100).toFixed(2).replace(/\.?0+$/, '') + '%';
        }

        // Parse money input (handles $, commas, k and m suffixes).
        function parseMoney(val) {
            if (val === null || val === undefined) return NaN;
            val = val.toString().toLowerCase().replace(/[$,\s]/g, '');
            if (val === '') return NaN;
            if (val.endsWith('m')) return parseFloat(val) * 1000000;
            if (val.endsWith('k')) return parseFloat(val) * 1000;
            return parseFloat(val);
        }

        // State updates go through a single reducer: patch in, fresh state
        // out, nothing else mutates the assumptions.
        function reduce(prev, patch) {
            return Object.assign({}, prev, patch);
        }

        function applyPatch(patch) {
            state = reduce(state, patch);
            syncFragment();
            renderCashFlowLine();
            scheduleProjection();
        }

        // ---- Fragment codec (mirror of the server-side one) ----

        function encodeState(s) {
            var parts = [];
            FIELDS.forEach(function (f) {
                parts.push(f.key + '=' + String(s[f.key]));
            });
            parts.push('lang=' + s.lang);
            return parts.join('&');
        }

        function normalizeLang(raw) {
            if (!raw) return null;
            var primary = raw.toLowerCase().split(/[-_]/)[0];
            if (primary === 'en' || primary === 'es') return primary;
            return null;
        }

        function decodeState(hash, defaults, defaultLang) {
            var params = new URLSearchParams((hash || '').replace(/^#/, ''));
            var next = Object.assign({}, defaults);
            FIELDS.forEach(function (f) {
                var raw = params.get(f.key);
                if (raw === null || raw === '') return;
                var val = f.kind === 'int' ? parseInt(raw, 10) : parseFloat(raw);
                if (isNaN(val) || !isFinite(val)) return;
                next[f.key] = val;
            });
            next.lang = normalizeLang(params.get('lang')) || defaultLang;
            return next;
        }

        function syncFragment() {
            history.replaceState(null, '', '#' + encodeState(state));
        }

        function toRequestAssumptions(s) {
            return {
                horizon_years: s.horizonYears,
                market_return_rate: s.marketReturnRate,
                appreciation_rate: s.appreciationRate,
                reinvestment_rate: s.reinvestmentRate,
                sale_proceeds: s.saleProceeds,
                property_value: s.propertyValue,
                annual_rent: s.annualRent,
                maintenance_cost: s.maintenanceCost,
                hoa_cost: s.hoaCost,
                other_costs: s.otherCosts
            };
        }

        // ---- Language ----

        function applyStrings() {
            var table = t();
            document.querySelectorAll('[data-i18n]').forEach(function (el) {
                var key = el.getAttribute('data-i18n');
                if (table[key]) el.textContent = table[key];
            });
            document.documentElement.lang = state.lang;
            document.title = table.title;
            document.getElementById('lang-en').classList.toggle('active', state.lang === 'en');
            document.getElementById('lang-es').classList.toggle('active', state.lang === 'es');
        }

        function setLanguage(lang) {
            if (lang !== 'en' && lang !== 'es') return;
            state = reduce(state, { lang: lang });
            document.cookie = 'ros_lang=' + lang + '; path=/; max-age=31536000; samesite=lax';
            syncFragment();
            applyStrings();
            renderCashFlowLine();
            if (lastResult) renderResults(lastResult);
            if (lastSensitivity) renderSensitivityGrid(lastSensitivity);
        }

        // ---- Form ----

        function setFormFromState() {
            FIELDS.forEach(function (f) {
                var input = document.getElementById(f.id);
                if (f.kind === 'rate') {
                    input.value = (state[f.key] * 100).toFixed(2).replace(/\.?0+$/, '');
                } else {
                    input.value = String(state[f.key]);
                }
            });
            renderCashFlowLine();
        }

        function renderCashFlowLine() {
            var net = state.annualRent - state.maintenanceCost - state.hoaCost - state.otherCosts;
            var el = document.getElementById('net-cash-flow');
            el.textContent = fmtMoney(net);
            el.className = net < 0 ? 'value negative' : 'value';
        }

        function wireInputs() {
            FIELDS.forEach(function (f) {
                document.getElementById(f.id).addEventListener('input', function () {
                    var patch = {};
                    if (f.kind === 'int') {
                        var n = parseInt(this.value, 10);
                        if (isNaN(n)) return; // keep the prior value
                        patch[f.key] = n;
                    } else if (f.kind === 'rate') {
                        var r = parseFloat(this.value);
                        if (isNaN(r) || !isFinite(r)) return;
                        patch[f.key] = r / 100;
                        if (f.key === 'marketReturnRate') document.getElementById('market-preset').value = '';
                        if (f.key === 'appreciationRate') document.getElementById('appreciation-preset').value = '';
                    } else {
                        var m = parseMoney(this.value);
                        if (isNaN(m) || !isFinite(m)) return;
                        patch[f.key] = m;
                    }
                    applyPatch(patch);
                });
            });

            document.getElementById('market-preset').addEventListener('change', function () {
                var rate = parseFloat(this.selectedOptions[0].dataset.rate);
                if (isNaN(rate)) return;
                document.getElementById('market-return').value = (rate * 100).toFixed(2).replace(/\.?0+$/, '');
                applyPatch({ marketReturnRate: rate });
            });
            document.getElementById('appreciation-preset').addEventListener('change', function () {
                var rate = parseFloat(this.selectedOptions[0].dataset.rate);
                if (isNaN(rate)) return;
                document.getElementById('appreciation').value = (rate * 100).toFixed(2).replace(/\.?0+$/, '');
                applyPatch({ appreciationRate: rate });
            });
        }

        function fillPresets(cfg) {
            var marketSel = document.getElementById('market-preset');
            var groups = {};
            (cfg.market_presets || []).forEach(function (p) {
                var region = p.region || '';
                if (!groups[region]) {
                    groups[region] = document.createElement('optgroup');
                    groups[region].label = region;
                    marketSel.appendChild(groups[region]);
                }
                var opt = document.createElement('option');
                opt.value = p.id;
                opt.textContent = p.name + ' (' + (p.rate * 100).toFixed(1) + '%)';
                opt.dataset.rate = p.rate;
                groups[region].appendChild(opt);
            });

            var apprSel = document.getElementById('appreciation-preset');
            (cfg.appreciation_presets || []).forEach(function (p) {
                var opt = document.createElement('option');
                opt.value = p.id;
                opt.textContent = p.name + ' (' + (p.rate * 100).toFixed(1) + '%)';
                opt.dataset.rate = p.rate;
                apprSel.appendChild(opt);
            });
        }

        function fillSensitivityBounds(sens) {
            if (!sens) return;
            if (sens.market_return_min || sens.market_return_max) {
                document.getElementById('sens-market-min').value = (sens.market_return_min * 100).toFixed(0);
                document.getElementById('sens-market-max').value = (sens.market_return_max * 100).toFixed(0);
            }
            if (sens.appreciation_min || sens.appreciation_max) {
                document.getElementById('sens-appr-min').value = (sens.appreciation_min * 100).toFixed(0);
                document.getElementById('sens-appr-max').value = (sens.appreciation_max * 100).toFixed(0);
            }
            if (sens.step_size) {
                document.getElementById('sens-step').value = (sens.step_size * 100).toFixed(1).replace(/\.0$/, '');
            }
        }

        // ---- Projection ----

        function scheduleProjection() {
            clearTimeout(projectionTimer);
            projectionTimer = setTimeout(runProjection, 250);
        }

        async function runProjection() {
            var loading = document.getElementById('loading');
            loading.classList.add('show');

            try {
                var res = await fetch('/api/project', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({ assumptions: toRequestAssumptions(state) })
                });
                var data = await res.json();
                loading.classList.remove('show');

                if (!data.success) {
                    document.getElementById('table-wrap').innerHTML =
                        '<p class="error-text">' + t().errorPrefix + data.error + '</p>';
                    return;
                }
                lastResult = data;
                renderResults(data);
            } catch (err) {
                loading.classList.remove('show');
                document.getElementById('table-wrap').innerHTML =
                    '<p class="error-text">' + t().errorPrefix + err.message + '</p>';
            }
        }

        function verdictText(key) {
            if (key === 'hold') return t().verdictHold;
            if (key === 'sell') return t().verdictSell;
            return t().verdictTie;
        }

        function renderResults(data) {
            renderSummaryBar(data);
            renderVerdictBanner(data);
            renderChart(data.years);
            renderTable(data.years);
        }

        function renderSummaryBar(data) {
            document.getElementById('summary-verdict').textContent = verdictText(data.verdict);
            var deltaEl = document.getElementById('summary-delta');
            deltaEl.textContent = fmtMoney(data.final_delta);
            deltaEl.className = data.final_delta < 0 ? 'value negative' : 'value positive';
            document.getElementById('summary-breakeven').textContent =
                data.break_even_year > 0 ? String(data.break_even_year) : t().never;
            document.getElementById('summary-horizon').textContent =
                state.horizonYears + ' ' + t().yearsSuffix;
        }

        function renderVerdictBanner(data) {
            var banner = document.getElementById('verdict-banner');
            if (!data.years || data.years.length === 0) {
                banner.style.display = 'none';
                return;
            }
            banner.style.display = 'block';
            banner.className = 'verdict-banner verdict-' + data.verdict;

            var details = [fmt(t().finalDelta, fmtMoney(data.final_delta))];
            details.push(data.break_even_year > 0
                ? fmt(t().breakEvenYear, data.break_even_year)
                : t().noBreakEven);
            details.push(data.break_even_rate_found
                ? fmt(t().breakEvenRate, fmtPercent(data.break_even_rate))
                : t().noBreakEvenRate);

            banner.textContent = '';
            var title = document.createElement('span');
            title.textContent = verdictText(data.verdict);
            banner.appendChild(title);
            details.forEach(function (line) {
                var span = document.createElement('span');
                span.className = 'detail';
                span.textContent = line;
                banner.appendChild(span);
            });
        }

        // Inline SVG chart: two polylines over a shared money scale.
        function renderChart(years) {
            var wrap = document.getElementById('chart-wrap');
            if (!years || years.length === 0) {
                wrap.innerHTML = '';
                return;
            }

            var W = 900, H = 360, left = 70, right = 20, top = 20, bottom = 40;
            var plotW = W - left - right, plotH = H - top - bottom;

            var minV = Infinity, maxV = -Infinity;
            years.forEach(function (y) {
                minV = Math.min(minV, y.sell_strategy_value, y.hold_net_value);
                maxV = Math.max(maxV, y.sell_strategy_value, y.hold_net_value);
            });
            if (maxV === minV) maxV = minV + 1;
            var pad = (maxV - minV) * 0.05;
            minV -= pad;
            maxV += pad;

            function xAt(i) {
                if (years.length === 1) return left + plotW / 2;
                return left + plotW * i / (years.length - 1);
            }
            function yAt(v) {
                return top + plotH * (1 - (v - minV) / (maxV - minV));
            }

            var svg = '<svg viewBox="0 0 ' + W + ' ' + H + '" xmlns="http://www.w3.org/2000/svg">';

            for (var g = 0; g <= 4; g++) {
                var gv = minV + (maxV - minV) * g / 4;
                var gy = yAt(gv);
                svg += '<line x1="' + left + '" y1="' + gy + '" x2="' + (W - right) + '" y2="' + gy + '" stroke="#e2e8f0" stroke-width="1"/>';
                svg += '<text x="' + (left - 6) + '" y="' + (gy + 4) + '" text-anchor="end" font-size="11" fill="#64748b">' + fmtMoneyCompact(gv) + '</text>';
            }

            var labelStep = years.length > 20 ? Math.ceil(years.length / 10) : 1;
            years.forEach(function (y, i) {
                if (i % labelStep !== 0 && i !== years.length - 1) return;
                svg += '<text x="' + xAt(i) + '" y="' + (H - bottom + 18) + '" text-anchor="middle" font-size="11" fill="#64748b">' + y.year + '</text>';
            });

            var sellPts = years.map(function (y, i) { return xAt(i) + ',' + yAt(y.sell_strategy_value); }).join(' ');
            var holdPts = years.map(function (y, i) { return xAt(i) + ',' + yAt(y.hold_net_value); }).join(' ');
            svg += '<polyline points="' + sellPts + '" fill="none" stroke="#2563eb" stroke-width="2.5"/>';
            svg += '<polyline points="' + holdPts + '" fill="none" stroke="#16a34a" stroke-width="2.5"/>';
            svg += '</svg>';

            wrap.innerHTML = svg;
        }

        function renderTable(years) {
            var wrap = document.getElementById('table-wrap');
            if (!years || years.length === 0) {
                wrap.innerHTML = '';
                return;
            }
            var table = t();
            var html = '<table class="projection-table"><thead><tr>';
            html += '<th>' + table.headerYear + '</th>';
            html += '<th>' + table.headerSell + '</th>';
            html += '<th>' + table.headerProperty + '</th>';
            html += '<th>' + table.headerCash + '</th>';
            html += '<th>' + table.headerHoldNet + '</th>';
            html += '<th>' + table.headerDelta + '</th>';
            html += '</tr></thead><tbody>';

            years.forEach(function (y, i) {
                var rowClass = i === years.length - 1 ? ' class="final-row"' : '';
                var deltaClass = y.delta < 0 ? 'negative' : 'positive';
                html += '<tr' + rowClass + '>';
                html += '<td>' + y.year + '</td>';
                html += '<td>' + fmtMoney(y.sell_strategy_value) + '</td>';
                html += '<td>' + fmtMoney(y.hold_property_value) + '</td>';
                html += '<td>' + fmtMoney(y.hold_cash_value) + '</td>';
                html += '<td>' + fmtMoney(y.hold_net_value) + '</td>';
                html += '<td class="' + deltaClass + '">' + fmtMoney(y.delta) + '</td>';
                html += '</tr>';
            });

            html += '</tbody></table>';
            wrap.innerHTML = html;
        }

        // ---- Sensitivity ----

        async function runSensitivityGrid() {
            var btn = document.getElementById('run-sensitivity-btn');
            btn.disabled = true;
            try {
                var grid = {
                    market_return_min: parseFloat(document.getElementById('sens-market-min').value) / 100 || 0,
                    market_return_max: parseFloat(document.getElementById('sens-market-max').value) / 100 || 0,
                    appreciation_min: parseFloat(document.getElementById('sens-appr-min').value) / 100 || 0,
                    appreciation_max: parseFloat(document.getElementById('sens-appr-max').value) / 100 || 0,
                    step_size: parseFloat(document.getElementById('sens-step').value) / 100 || 0.01
                };
                var res = await fetch('/api/project/sensitivity', {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({ assumptions: toRequestAssumptions(state), grid: grid })
                });
                var data = await res.json();
                btn.disabled = false;
                if (!data.success) {
                    document.getElementById('sensitivity-content').innerHTML =
                        '<p class="error-text">' + t().errorPrefix + data.error + '</p>';
                    document.getElementById('sensitivity-card').style.display = 'block';
                    return;
                }
                lastSensitivity = data;
                renderSensitivityGrid(data);
            } catch (err) {
                btn.disabled = false;
                document.getElementById('sensitivity-content').innerHTML =
                    '<p class="error-text">' + t().errorPrefix + err.message + '</p>';
                document.getElementById('sensitivity-card').style.display = 'block';
            }
        }

        function renderSensitivityGrid(data) {
            document.getElementById('sensitivity-card').style.display = 'block';
            var content = document.getElementById('sensitivity-content');

            var html = '<div class="sensitivity-grid" style="grid-template-columns: auto repeat(' + data.appreciation_rates.length + ', 1fr);">';
            html += '<div class="sensitivity-header"></div>';
            data.appreciation_rates.forEach(function (rate) {
                html += '<div class="sensitivity-header">' + (rate * 100).toFixed(0) + '%</div>';
            });

            data.market_return_rates.forEach(function (marketRate, mi) {
                html += '<div class="sensitivity-header">' + (marketRate * 100).toFixed(0) + '%</div>';
                data.grid[mi].forEach(function (cell) {
                    var color = VERDICT_COLORS[cell.verdict] || '#eceff1';
                    var title = verdictText(cell.verdict) + ' (' + fmtMoneyCompact(cell.final_delta) + ')';
                    html += '<div class="sensitivity-cell" style="background:' + color + ';"' +
                        ' onclick="loadSensitivityCell(' + cell.market_return + ',' + cell.appreciation + ')"' +
                        ' title="' + title + '">' + fmtMoneyCompact(cell.final_delta) + '</div>';
                });
            });
            html += '</div>';

            html += '<div class="sensitivity-legend">';
            ['hold', 'sell', 'tie'].forEach(function (key) {
                html += '<div class="legend-item"><span class="legend-color" style="background:' + VERDICT_COLORS[key] + ';"></span>' + verdictText(key) + '</div>';
            });
            html += '</div>';

            content.innerHTML = html;
        }

        // The grid compounds the rental surplus at the market rate, so
        // loading a cell sets all three rates.
        function loadSensitivityCell(marketRate, apprRate) {
            document.getElementById('market-return').value = (marketRate * 100).toFixed(1);
            document.getElementById('appreciation').value = (apprRate * 100).toFixed(1);
            document.getElementById('reinvestment').value = (marketRate * 100).toFixed(1);
            document.getElementById('market-preset').value = '';
            document.getElementById('appreciation-preset').value = '';
            applyPatch({ marketReturnRate: marketRate, appreciationRate: apprRate, reinvestmentRate: marketRate });
        }

        // ---- Share & export ----

        function setShareStatus(msg, isError) {
            var status = document.getElementById('share-status');
            status.textContent = msg;
            status.style.color = isError ? 'var(--danger)' : 'var(--success)';
            clearTimeout(statusTimer);
            statusTimer = setTimeout(function () { status.textContent = ''; }, 2000);
        }

        function copyShareLink() {
            var url = location.origin + location.pathname + '#' + encodeState(state);
            navigator.clipboard.writeText(url).then(function () {
                setShareStatus(t().statusCopied, false);
            }).catch(function () {
                setShareStatus(t().statusCopyFailed, true);
            });
        }

        function downloadCSV() {
            window.location.href = '/export/csv?' + encodeState(state);
        }

        function saveCSV() {
            fetch('/api/export-csv', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify({ assumptions: toRequestAssumptions(state) })
            })
            .then(function (res) { return res.json(); })
            .then(function (data) {
                if (data.success) {
                    showExportNotification(t().csvSaved, data.file_path);
                } else {
                    alert(t().exportFailed + data.message);
                }
            })
            .catch(function (err) {
                alert(t().exportFailed + err.message);
            });
        }

        function savePDF() {
            fetch('/api/export-pdf', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify({ assumptions: toRequestAssumptions(state), lang: state.lang })
            })
            .then(function (res) { return res.json(); })
            .then(function (data) {
                if (data.success) {
                    showExportNotification(t().pdfSaved, data.file_path);
                } else {
                    alert(t().exportFailed + data.message);
                }
            })
            .catch(function (err) {
                alert(t().exportFailed + err.message);
            });
        }

        function showExportNotification(title, filePath) {
            lastExportPath = filePath;

            var existing = document.getElementById('export-notification');
            if (existing) existing.remove();

            var notification = document.createElement('div');
            notification.id = 'export-notification';
            notification.style.cssText = 'position:fixed;bottom:20px;right:20px;background:#065f46;color:white;padding:16px 20px;border-radius:8px;box-shadow:0 4px 12px rgba(0,0,0,0.3);z-index:10000;max-width:500px;font-size:14px;';
            notification.innerHTML = '<div style="display:flex;align-items:flex-start;gap:12px;">' +
                '<div style="flex:1;">' +
                '<div style="font-weight:600;margin-bottom:4px;">' + title + '</div>' +
                '<div style="font-size:12px;opacity:0.9;word-break:break-all;">' + filePath + '</div>' +
                '</div>' +
                '<button onclick="this.parentElement.parentElement.remove()" style="background:none;border:none;color:white;font-size:18px;cursor:pointer;padding:0;line-height:1;">&times;</button>' +
                '</div>' +
                '<div style="margin-top:12px;display:flex;gap:8px;">' +
                '<button onclick="openExportFolder()" style="background:white;color:#065f46;border:none;padding:8px 16px;border-radius:4px;cursor:pointer;font-weight:500;">' + t().openFolder + '</button>' +
                '<button onclick="this.parentElement.parentElement.remove()" style="background:transparent;color:white;border:1px solid rgba(255,255,255,0.5);padding:8px 16px;border-radius:4px;cursor:pointer;">' + t().dismiss + '</button>' +
                '</div>';
            document.body.appendChild(notification);

            setTimeout(function () {
                var notif = document.getElementById('export-notification');
                if (notif) notif.remove();
            }, 15000);
        }

        function openExportFolder() {
            if (!lastExportPath) return;
            fetch('/api/open-folder', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify({ file_path: lastExportPath })
            })
            .then(function (res) { return res.json(); })
            .then(function (data) {
                if (!data.success) alert(data.message);
            })
            .catch(function (err) {
                alert(err.message);
            });
        }

        function toggleConfigPanel() {
            document.getElementById('config-panel').classList.toggle('collapsed');
        }

        // ---- Init ----

        function assumptionsFromResponse(a) {
            if (!a) return DEFAULTS;
            return {
                horizonYears: a.horizon_years,
                marketReturnRate: a.market_return_rate,
                appreciationRate: a.appreciation_rate,
                reinvestmentRate: a.reinvestment_rate,
                saleProceeds: a.sale_proceeds,
                propertyValue: a.property_value,
                annualRent: a.annual_rent,
                maintenanceCost: a.maintenance_cost,
                hoaCost: a.hoa_cost,
                otherCosts: a.other_costs
            };
        }

        async function loadConfig() {
            var defaults = DEFAULTS;
            var serverLang = '';
            try {
                var res = await fetch('/api/config');
                var cfg = await res.json();
                defaults = assumptionsFromResponse(cfg.assumptions);
                serverLang = cfg.language || '';
                fillPresets(cfg);
                fillSensitivityBounds(cfg.sensitivity);
            } catch (err) {
                console.log('Could not load config:', err);
            }

            var defaultLang = normalizeLang(serverLang) || normalizeLang(navigator.language) || 'en';
            state = decodeState(location.hash, Object.assign({}, defaults, { lang: defaultLang }), defaultLang);
            setFormFromState();
            applyStrings();
            syncFragment();
            runProjection();
        }

        window.addEventListener('hashchange', function () {
            state = decodeState(location.hash, state, state.lang);
            setFormFromState();
            applyStrings();
            runProjection();
        });

        wireInputs();
        loadConfig();
    </script>
</body>
</html>
`
