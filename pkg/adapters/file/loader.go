// Package file loads a menu graph document from disk. The document is YAML
// with two top-level sections: "app" holds free-form application parameters
// decoded over the defaults, "menus" holds the graph keyed by menu id.
package file

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/akwaba/ussdflow/pkg/domain"
)

type document struct {
	App   map[string]any          `yaml:"app"`
	Menus map[string]*domain.Menu `yaml:"menus"`
}

// Decode parses a serialized graph document. Unknown app params are
// tolerated so an app section can carry deployment-specific extras; known
// params are type-coerced over domain.DefaultConfig.
func Decode(raw []byte) (domain.Graph, domain.Config, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, domain.Config{}, fmt.Errorf("failed to parse graph document: %w", err)
	}

	cfg := domain.DefaultConfig()
	if len(doc.App) > 0 {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, domain.Config{}, err
		}
		if err := dec.Decode(doc.App); err != nil {
			return nil, domain.Config{}, fmt.Errorf("invalid app params: %w", err)
		}
	}

	graph := make(domain.Graph, len(doc.Menus))
	for id, menu := range doc.Menus {
		if menu == nil {
			menu = &domain.Menu{}
		}
		graph[id] = menu
	}
	return graph, cfg, nil
}

// Load reads and decodes the graph document at path.
func Load(path string) (domain.Graph, domain.Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.Config{}, fmt.Errorf("failed to read graph file: %w", err)
	}
	graph, cfg, err := Decode(raw)
	if err != nil {
		return nil, domain.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return graph, cfg, nil
}
