package export

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"trackthething/internal/config"
	"trackthething/internal/domain"
	"trackthething/internal/domain/models"
	exportSvc "trackthething/internal/domain/services/export"
	"trackthething/internal/service/export/converter"
)

// profileConverter is implemented by converters that accept a per-request
// Markdown profile
type profileConverter interface {
	ConvertWithProfile(ctx context.Context, doc *models.Document, profile string) (*models.ConversionResult, error)
}

// exportService implements the ExportService interface
type exportService struct {
	registry *converter.ConverterRegistry
	profiles converter.ProfileLookup
	logger   *slog.Logger
}

// NewExportService creates a new export service. profiles may be nil, in
// which case a non-empty profile name is rejected.
func NewExportService(
	registry *converter.ConverterRegistry,
	profiles converter.ProfileLookup,
	logger *slog.Logger,
) exportSvc.ExportService {
	return &exportService{
		registry: registry,
		profiles: profiles,
		logger:   logger,
	}
}

// Export converts a single entry into the requested format
func (s *exportService) Export(ctx context.Context, format models.Format, req *exportSvc.ExportRequest) (*models.ConversionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conv := s.registry.GetConverter(format)
	if conv == nil {
		return nil, &domain.UnsupportedFormatError{Format: string(format)}
	}

	if err := s.validateExportRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	doc := &models.Document{
		Title:       req.Title,
		Content:     req.Content,
		ContentType: req.ContentType,
	}
	if doc.ContentType == "" {
		doc.ContentType = models.ContentTypeRichText
	}

	var (
		result *models.ConversionResult
		err    error
	)
	if pc, ok := conv.(profileConverter); ok && req.Profile != "" {
		result, err = pc.ConvertWithProfile(ctx, doc, req.Profile)
	} else {
		result, err = conv.Convert(ctx, doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%s conversion: %w", conv.Name(), err)
	}

	s.logger.Debug("entry exported",
		"format", result.Format,
		"content_type", doc.ContentType,
		"profile", req.Profile,
		"bytes_in", len(req.Content),
		"bytes_out", len(result.Text),
		"word_count", result.WordCount,
	)

	return result, nil
}

// Formats returns the registered export formats
func (s *exportService) Formats() []models.Format {
	return s.registry.Formats()
}

func (s *exportService) validateExportRequest(req *exportSvc.ExportRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Length(0, config.MaxTitleLength),
		),
		validation.Field(&req.Content,
			validation.By(maxBytes(config.MaxContentLength)),
		),
		validation.Field(&req.ContentType,
			validation.In(models.ContentTypeRichText, models.ContentTypeCode, models.ContentTypeMarkdown),
		),
		validation.Field(&req.Profile,
			validation.By(s.validateProfile),
		),
	)
}

// validateProfile accepts an empty name (default profile) or a known profile
func (s *exportService) validateProfile(value interface{}) error {
	name, _ := value.(string)
	if name == "" {
		return nil
	}
	if s.profiles == nil {
		return fmt.Errorf("unknown profile %q", name)
	}
	if _, ok := s.profiles.Options(name); !ok {
		return fmt.Errorf("unknown profile %q", name)
	}
	return nil
}

// maxBytes limits a string by byte length rather than rune count
func maxBytes(limit int) validation.RuleFunc {
	return func(value interface{}) error {
		str, _ := value.(string)
		if len(str) > limit {
			return fmt.Errorf("must be at most %d bytes", limit)
		}
		return nil
	}
}
