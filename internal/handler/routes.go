package handler

import "net/http"

// RegisterRoutes mounts the API on mux (Go 1.22+ method patterns)
func RegisterRoutes(mux *http.ServeMux, exportHandler *ExportHandler, reportHandler *ReportHandler) {
	// Health check
	mux.HandleFunc("GET /health", HealthCheck)

	// Export routes
	mux.HandleFunc("GET /api/export/profiles", exportHandler.ListProfiles)
	mux.HandleFunc("POST /api/export/{format}", exportHandler.Export)

	// Report routes
	mux.HandleFunc("POST /api/reports/generate", reportHandler.GenerateWeekly)
	mux.HandleFunc("POST /api/reports/all-entries", reportHandler.GenerateAllEntries)
	mux.HandleFunc("POST /api/reports/weeks", reportHandler.ListWeeks)
}
