package service

import (
	"fmt"
	"log/slog"

	"trackthething/internal/config"
	exportSvc "trackthething/internal/domain/services/export"
	reportSvc "trackthething/internal/domain/services/report"
	"trackthething/internal/profiles"
	"trackthething/internal/service/export"
	"trackthething/internal/service/export/converter"
	"trackthething/internal/service/report"
)

// Services holds the export and report services plus the registries
// callers list from
type Services struct {
	Export   exportSvc.ExportService
	Report   reportSvc.ReportService
	Profiles *profiles.Registry
}

// SetupServices wires converters, profiles and services from cfg.
// clock may be nil (time.Now).
func SetupServices(cfg *config.Config, clock reportSvc.Clock, logger *slog.Logger) (*Services, error) {
	profileRegistry, err := profiles.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load markdown profiles: %w", err)
	}
	if cfg.ProfilesFile != "" {
		if err := profileRegistry.LoadFile(cfg.ProfilesFile); err != nil {
			return nil, err
		}
		logger.Info("markdown profiles loaded", "file", cfg.ProfilesFile)
	}
	if !profileRegistry.Has(cfg.DefaultMarkdownProfile) {
		return nil, fmt.Errorf("DEFAULT_MARKDOWN_PROFILE %q is not a known profile", cfg.DefaultMarkdownProfile)
	}

	// Markdown-typed entries are rendered to HTML before the jira/text rules
	source := converter.NewSourceRenderer()
	markdown := converter.NewMarkdownConverter(converter.NewMarkdownEngine(), profileRegistry, cfg.DefaultMarkdownProfile)
	text := converter.NewTextConverter(source)

	registry := converter.NewConverterRegistry(
		converter.NewJiraConverter(source),
		markdown,
		text,
	)

	logger.Debug("converter registry initialized", "formats", registry.Formats())

	return &Services{
		Export:   export.NewExportService(registry, profileRegistry, logger),
		Report:   report.NewReportService(markdown, text, cfg.Location, clock, logger),
		Profiles: profileRegistry,
	}, nil
}
