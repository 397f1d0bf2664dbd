// SPDX-License-Identifier: EPL-2.0

package audsum

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audsum/audio"
	"github.com/ik5/audsum/magic"
)

// Describer produces a free-text description of a file's content.
// *magic.Database implements it.
type Describer interface {
	File(path string) (string, error)
}

// Classifier maps files to audio.Filetype by content sniffing. It is safe
// for concurrent use.
type Classifier struct {
	db      Describer
	initErr error
}

// NewClassifier opens a magic database with opts. A failure is not
// returned here; it is reported as KindClassificationUnavailable by every
// Classify call, so a broken signature file does not prevent constructing
// an Engine.
func NewClassifier(opts ...magic.Option) *Classifier {
	db, err := magic.Open(opts...)
	if err != nil {
		return &Classifier{initErr: err}
	}

	return &Classifier{db: db}
}

// NewClassifierWith classifies using descriptions from d.
func NewClassifierWith(d Describer) *Classifier {
	return &Classifier{db: d}
}

// Classify returns the Filetype of the file at path.
func (c *Classifier) Classify(path string) (audio.Filetype, error) {
	ft, _, err := c.Describe(path)
	return ft, err
}

// Describe is Classify that also returns the description it matched on.
func (c *Classifier) Describe(path string) (audio.Filetype, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, "", &CheckError{Kind: KindFileAccess, Path: path, Err: err}
	}
	f.Close()

	if c.initErr != nil {
		return 0, "", &CheckError{Kind: KindClassificationUnavailable, Path: path, Err: c.initErr}
	}

	desc, err := c.db.File(path)
	if err != nil {
		return 0, "", &CheckError{Kind: KindFileAccess, Path: path, Err: err}
	}

	ft, ok := ClassifyDescription(desc)
	if !ok {
		ext := filepath.Ext(path)
		return 0, desc, &CheckError{
			Kind:      KindUnsupportedFiletype,
			Path:      path,
			Extension: ext,
			Err:       fmt.Errorf("extension %q, content %q", ext, desc),
		}
	}

	return ft, desc, nil
}

// ClassifyDescription applies the matching rules to a description. The
// first rule that matches wins:
//
//	"FLAC"           → FLAC
//	"MPEG" and "III" → MP3
//	"Vorbis"         → Vorbis
//	"Opus"           → Opus
//	"WAVE"           → WAV
func ClassifyDescription(desc string) (audio.Filetype, bool) {
	switch {
	case strings.Contains(desc, "FLAC"):
		return audio.FLAC, true
	case strings.Contains(desc, "MPEG") && strings.Contains(desc, "III"):
		return audio.MP3, true
	case strings.Contains(desc, "Vorbis"):
		return audio.Vorbis, true
	case strings.Contains(desc, "Opus"):
		return audio.Opus, true
	case strings.Contains(desc, "WAVE"):
		return audio.WAV, true
	default:
		return 0, false
	}
}
