package converter

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"trackthething/internal/domain"
	"trackthething/internal/domain/models"
	exportSvc "trackthething/internal/domain/services/export"
)

// ConverterRegistry manages export converters keyed by output format.
//
// Thread-safe for concurrent access.
type ConverterRegistry struct {
	mu         sync.RWMutex
	converters map[models.Format]exportSvc.Converter
}

// NewConverterRegistry creates a registry with the given converters registered
func NewConverterRegistry(converters ...exportSvc.Converter) *ConverterRegistry {
	registry := &ConverterRegistry{
		converters: make(map[models.Format]exportSvc.Converter),
	}
	for _, c := range converters {
		registry.Register(c)
	}
	return registry
}

// NewDefaultRegistry registers the jira, markdown and text converters
func NewDefaultRegistry(engine exportSvc.MarkdownEngine, source exportSvc.SourceRenderer, profiles ProfileLookup, defaultProfile string) *ConverterRegistry {
	return NewConverterRegistry(
		NewJiraConverter(source),
		NewMarkdownConverter(engine, profiles, defaultProfile),
		NewTextConverter(source),
	)
}

// Register adds a converter, replacing any converter for the same format.
// Format names are normalized to lowercase.
func (r *ConverterRegistry) Register(converter exportSvc.Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[normalizeFormat(converter.Format())] = converter
}

// GetConverter returns the converter for format, or nil.
// Lookup is case-insensitive.
func (r *ConverterRegistry) GetConverter(format models.Format) exportSvc.Converter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.converters[normalizeFormat(format)]
}

// Convert selects the converter for format and runs it.
// Returns an UnsupportedFormatError when none is registered.
func (r *ConverterRegistry) Convert(ctx context.Context, format models.Format, doc *models.Document) (*models.ConversionResult, error) {
	converter := r.GetConverter(format)
	if converter == nil {
		return nil, &domain.UnsupportedFormatError{Format: string(format)}
	}

	result, err := converter.Convert(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s conversion: %w", converter.Name(), err)
	}
	return result, nil
}

// Formats returns all registered formats, sorted
func (r *ConverterRegistry) Formats() []models.Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]models.Format, 0, len(r.converters))
	for f := range r.converters {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

func normalizeFormat(f models.Format) models.Format {
	return models.Format(strings.ToLower(strings.TrimSpace(string(f))))
}
