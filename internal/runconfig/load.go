package runconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a YAML run configuration file.
func Load(path string) (*Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run configuration: %w", err)
	}

	var raw Raw
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse run configuration: %w", err)
	}

	for i, entry := range raw.Metrics {
		if entry.Id == "" {
			return nil, fmt.Errorf("run configuration entry %d has no id", i)
		}
	}

	return &raw, nil
}
