package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
)

// fixtureFile is the on-disk layout of a catalog.
type fixtureFile struct {
	Grades     []fixtureGrade      `yaml:"grades"`
	Books      []fixtureBook       `yaml:"books"`
	Hadiths    []hadith.Record     `yaml:"hadiths"`
	Expansions map[string][]string `yaml:"expansions"`
}

type fixtureBook struct {
	hadith.Book `yaml:",inline"`
	Chapters    []hadith.Chapter `yaml:"chapters"`
}

type fixtureGrade struct {
	ID          int     `yaml:"id"`
	EnglishText string  `yaml:"en_text"`
	BengaliText *string `yaml:"bn_text"`
}

// Load reads and validates a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fixtures %s: %w", path, err)
	}
	return c, nil
}

// Parse builds a Catalog from YAML.
func Parse(data []byte) (*Catalog, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return build(f)
}
