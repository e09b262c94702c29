package handler

import (
	"log/slog"
	"net/http"

	"trackthething/internal/domain/models"
	reportSvc "trackthething/internal/domain/services/report"
	"trackthething/internal/httputil"
)

// ReportHandler handles report generation requests
type ReportHandler struct {
	reportService reportSvc.ReportService
	maxBodyBytes  int64
	logger        *slog.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService reportSvc.ReportService, maxBodyBytes int64, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		maxBodyBytes:  maxBodyBytes,
		logger:        logger,
	}
}

// WeeksResponse wraps the available weeks
type WeeksResponse struct {
	Weeks []models.Week `json:"weeks"`
}

// GenerateWeekly builds the weekly report for the week containing ?date=
// POST /api/reports/generate
func (h *ReportHandler) GenerateWeekly(w http.ResponseWriter, r *http.Request) {
	var req reportSvc.ReportRequest
	if err := httputil.ParseJSON(w, r, &req, h.maxBodyBytes); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	report, err := h.reportService.Weekly(r.Context(), r.URL.Query().Get("date"), req.Entries)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}

// GenerateAllEntries builds a report of every submitted entry
// POST /api/reports/all-entries
func (h *ReportHandler) GenerateAllEntries(w http.ResponseWriter, r *http.Request) {
	var req reportSvc.ReportRequest
	if err := httputil.ParseJSON(w, r, &req, h.maxBodyBytes); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	report, err := h.reportService.AllEntries(r.Context(), req.Entries)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}

// ListWeeks returns the weeks that contain report-flagged entries
// POST /api/reports/weeks
func (h *ReportHandler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	var req reportSvc.ReportRequest
	if err := httputil.ParseJSON(w, r, &req, h.maxBodyBytes); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	weeks, err := h.reportService.Weeks(r.Context(), req.Entries)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, WeeksResponse{Weeks: weeks})
}
