package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"trackthething/internal/domain/models"
	exportSvc "trackthething/internal/domain/services/export"
	"trackthething/internal/httputil"
	"trackthething/internal/profiles"
)

// ExportHandler handles single-entry export requests
type ExportHandler struct {
	exportService exportSvc.ExportService
	profiles      *profiles.Registry
	maxBodyBytes  int64
	logger        *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService exportSvc.ExportService, profileRegistry *profiles.Registry, maxBodyBytes int64, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		profiles:      profileRegistry,
		maxBodyBytes:  maxBodyBytes,
		logger:        logger,
	}
}

// ProfilesResponse lists the available Markdown profiles and export formats
type ProfilesResponse struct {
	Formats  []models.Format    `json:"formats"`
	Profiles []profiles.Profile `json:"profiles"`
}

// ListProfiles returns the Markdown profiles
// GET /api/export/profiles
func (h *ExportHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, ProfilesResponse{
		Formats:  h.exportService.Formats(),
		Profiles: h.profiles.List(),
	})
}

// Export converts one entry
// POST /api/export/{format}
// Query: download=1 returns the text as a file attachment
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := models.Format(r.PathValue("format"))

	var req exportSvc.ExportRequest
	if err := httputil.ParseJSON(w, r, &req, h.maxBodyBytes); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	result, err := h.exportService.Export(r.Context(), format, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if download, _ := strconv.ParseBool(r.URL.Query().Get("download")); download {
		contentType, ext := downloadType(result.Format)
		httputil.RespondText(w, http.StatusOK, contentType, downloadName(req.Title)+ext, result.Text)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

func downloadType(format models.Format) (contentType, ext string) {
	switch format {
	case models.FormatMarkdown:
		return "text/markdown", ".md"
	case models.FormatJira:
		return "text/plain", ".jira.txt"
	default:
		return "text/plain", ".txt"
	}
}

// downloadName turns an entry title into a safe file name stem
func downloadName(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
		if b.Len() >= 64 {
			break
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		return "entry"
	}
	return name
}
