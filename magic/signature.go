// SPDX-License-Identifier: EPL-2.0

package magic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Signature is a user supplied magic number. Magic may contain "?"
// wildcards, each matching any single byte.
type Signature struct {
	Offset      int    `yaml:"offset"`
	Magic       string `yaml:"magic"`
	Description string `yaml:"description"`
}

type signatureFile struct {
	Signatures []Signature `yaml:"signatures"`
}

func (s Signature) validate() error {
	if s.Magic == "" || s.Description == "" {
		return fmt.Errorf("%w: %+v", ErrBadSignature, s)
	}
	if s.Offset < 0 || s.Offset+len(s.Magic) > headSize {
		return fmt.Errorf("%w: offset %d, length %d", ErrSignatureRange, s.Offset, len(s.Magic))
	}

	return nil
}

// match reports whether the signature matches head.
func (s Signature) match(head []byte) bool {
	end := s.Offset + len(s.Magic)
	if end > len(head) {
		return false
	}

	b := head[s.Offset:end]
	for i := range len(s.Magic) {
		if s.Magic[i] != b[i] && s.Magic[i] != '?' {
			return false
		}
	}

	return true
}

func loadSignatures(path string) ([]Signature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signature file: %w", err)
	}

	var f signatureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse signature file %s: %w", path, err)
	}

	for _, s := range f.Signatures {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("signature file %s: %w", path, err)
		}
	}

	return f.Signatures, nil
}
