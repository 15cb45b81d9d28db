package integrations

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"
)

// Framework is a framework integration entry; it only links to documentation.
type Framework struct {
	Name     string `yaml:"name"`
	Slug     string `yaml:"slug"`
	Image    string `yaml:"image"`
	DocsLink string `yaml:"docsLink"`
}

//go:embed frameworks.yaml
var frameworksYAML []byte

var (
	frameworksOnce sync.Once
	frameworks     []Framework
	frameworksErr  error
)

// FrameworkCatalog returns the static framework catalog in display order.
func FrameworkCatalog() ([]Framework, error) {
	frameworksOnce.Do(func() {
		frameworks, frameworksErr = ParseFrameworks(frameworksYAML)
	})
	if frameworksErr != nil {
		return nil, frameworksErr
	}
	out := make([]Framework, len(frameworks))
	copy(out, frameworks)
	return out, nil
}

// ParseFrameworks decodes a YAML framework list. Every entry needs a name and docs link.
func ParseFrameworks(data []byte) ([]Framework, error) {
	var list []Framework
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing framework catalog: %w", err)
	}
	for i, f := range list {
		if f.Name == "" || f.DocsLink == "" {
			return nil, fmt.Errorf("framework catalog entry %d: name and docsLink are required", i)
		}
	}
	return list, nil
}
