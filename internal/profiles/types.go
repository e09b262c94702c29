package profiles

import (
	"gopkg.in/yaml.v3"

	"trackthething/internal/domain/models"
)

// Profile is a named html-to-markdown option set
type Profile struct {
	// Profile name (set during YAML unmarshaling)
	Name string `yaml:"-" json:"name"`

	DisplayName string                 `yaml:"display_name" json:"display_name"`
	Description string                 `yaml:"description" json:"description"`
	Options     models.MarkdownOptions `yaml:"options" json:"options"`
}

// profileFile is the top-level layout of profiles.yaml
type profileFile struct {
	Profiles []Profile `yaml:"-"` // Ordered slice, populated by custom unmarshaler
}

// UnmarshalYAML keeps profiles in file order so listings are stable
func (f *profileFile) UnmarshalYAML(node *yaml.Node) error {
	var m struct {
		Profiles map[string]Profile `yaml:"profiles"`
	}
	if err := node.Decode(&m); err != nil {
		return err
	}

	for i := 0; i < len(node.Content); i += 2 {
		if node.Content[i].Value != "profiles" {
			continue
		}
		profilesNode := node.Content[i+1]
		// profilesNode.Content alternates: key, value, key, value...
		for j := 0; j < len(profilesNode.Content); j += 2 {
			name := profilesNode.Content[j].Value
			if p, ok := m.Profiles[name]; ok {
				p.Name = name
				f.Profiles = append(f.Profiles, p)
			}
		}
		break
	}

	return nil
}
