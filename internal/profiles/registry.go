package profiles

import (
	"embed"
	"fmt"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"trackthething/internal/domain"
	"trackthething/internal/domain/models"
)

//go:embed config/*.yaml
var configFiles embed.FS

const embeddedFile = "config/profiles.yaml"

// Registry holds the Markdown export profiles
type Registry struct {
	profiles map[string]*Profile
	order    []string
	mu       sync.RWMutex
}

// NewRegistry creates a profile registry from the embedded YAML file
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile(embeddedFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", embeddedFile, err)
	}

	r := &Registry{profiles: make(map[string]*Profile)}
	if err := r.load(embeddedFile, data); err != nil {
		return nil, err
	}
	return r, nil
}

// LoadFile merges profiles from a YAML file on disk. Profiles with an
// existing name replace the embedded definition.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return r.load(path, data)
}

func (r *Registry) load(name string, data []byte) error {
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}

	for _, p := range file.Profiles {
		if err := validateOptions(p.Options); err != nil {
			return fmt.Errorf("profile %q in %s: %w", p.Name, name, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range file.Profiles {
		p := file.Profiles[i]
		if _, exists := r.profiles[p.Name]; !exists {
			r.order = append(r.order, p.Name)
		}
		r.profiles[p.Name] = &p
	}
	return nil
}

// Get returns the profile with the given name
func (r *Registry) Get(name string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: markdown profile %q", domain.ErrNotFound, name)
	}
	return p, nil
}

// Options returns the engine options for the named profile
func (r *Registry) Options(name string) (models.MarkdownOptions, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[name]
	if !ok {
		return models.MarkdownOptions{}, false
	}
	return p.Options, true
}

// Has reports whether a profile exists
func (r *Registry) Has(name string) bool {
	_, ok := r.Options(name)
	return ok
}

// List returns all profiles in definition order
func (r *Registry) List() []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Profile, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.profiles[name])
	}
	return out
}

func validateOptions(opts models.MarkdownOptions) error {
	switch opts.HeadingStyle {
	case "atx", "setext":
	default:
		return fmt.Errorf("invalid heading_style %q", opts.HeadingStyle)
	}
	switch opts.CodeBlockStyle {
	case "fenced", "indented":
	default:
		return fmt.Errorf("invalid code_block_style %q", opts.CodeBlockStyle)
	}
	switch opts.BulletListMarker {
	case "-", "*", "+":
	default:
		return fmt.Errorf("invalid bullet_list_marker %q", opts.BulletListMarker)
	}
	// Empty delimiters and fence fall back to the engine defaults
	switch opts.EmDelimiter {
	case "", "*", "_":
	default:
		return fmt.Errorf("invalid em_delimiter %q", opts.EmDelimiter)
	}
	switch opts.StrongDelimiter {
	case "", "**", "__":
	default:
		return fmt.Errorf("invalid strong_delimiter %q", opts.StrongDelimiter)
	}
	switch opts.Fence {
	case "", "```", "~~~":
	default:
		return fmt.Errorf("invalid fence %q", opts.Fence)
	}
	for _, name := range opts.Plugins {
		if !slices.Contains(models.MarkdownPlugins(), name) {
			return fmt.Errorf("unknown plugin %q", name)
		}
	}
	return nil
}
