package export

import (
	"context"

	"trackthething/internal/domain/models"
)

// ExportService validates export requests and routes them to converters
type ExportService interface {
	// Export converts a single entry into the requested format
	Export(ctx context.Context, format models.Format, req *ExportRequest) (*models.ConversionResult, error)

	// Formats returns the registered export formats
	Formats() []models.Format
}

// ExportRequest represents a single-entry export request
type ExportRequest struct {
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	ContentType models.ContentType `json:"content_type"`
	Profile     string             `json:"profile,omitempty"` // Markdown profile name (markdown format only)
}
