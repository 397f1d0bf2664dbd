// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest maps fixture names to their expected checksum in hex.
type Manifest struct {
	Checksums map[string]string `yaml:"checksums"`
}

// LoadManifest reads a YAML manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	return &m, nil
}

// Save writes the manifest to path.
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
