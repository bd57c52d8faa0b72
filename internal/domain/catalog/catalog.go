package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed popular_companions.yaml
var defaultCatalog []byte

const defaultColor = "#E5E5E5"

// Starter is a suggested companion shown to users who own few of their own.
type Starter struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Subject  string `yaml:"subject" json:"subject"`
	Topic    string `yaml:"topic" json:"topic"`
	Duration int    `yaml:"duration" json:"duration"`
}

// Catalog holds the starter companions in display order and the subject palette.
type Catalog struct {
	SubjectColors map[string]string `yaml:"subject_colors"`
	Popular       []Starter         `yaml:"popular"`
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		data = raw
	}
	return Parse(data)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i, s := range c.Popular {
		if s.ID == "" || s.Name == "" {
			return nil, fmt.Errorf("catalog entry %d: id and name are required", i)
		}
	}
	if c.SubjectColors == nil {
		c.SubjectColors = map[string]string{}
	}
	return &c, nil
}

// Color returns the display color of a subject.
func (c *Catalog) Color(subject string) string {
	if color, ok := c.SubjectColors[subject]; ok {
		return color
	}
	return defaultColor
}
