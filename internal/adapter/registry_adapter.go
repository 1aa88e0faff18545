package adapter

import (
	"fmt"

	"gopkg.in/yaml.v3"
	m "schemalens.dev/pkg/schemalens/internal/model"
)

// registryVersion is the only registry document version understood.
const registryVersion = 1

// DecodeRegistry parses a registry document.
func DecodeRegistry(data []byte) (m.Registry, error) {
	var registry m.Registry

	if err := yaml.Unmarshal(data, &registry); err != nil {
		return m.Registry{}, fmt.Errorf("decode registry: %w", err)
	}

	if registry.Version != registryVersion {
		return m.Registry{}, fmt.Errorf("unsupported registry version %d (want %d)",
			registry.Version, registryVersion)
	}

	return registry, nil
}
