// SPDX-License-Identifier: EPL-2.0

package magic

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dhowden/tag"
	"github.com/ik5/audsum/internal/mpeg"
)

// headSize is how much of a file is inspected, apart from what follows a
// leading ID3v2 tag.
const headSize = 4096

// Database describes file contents. It is immutable once opened and safe
// for concurrent use.
type Database struct {
	signatures []Signature
}

type options struct {
	files      []string
	signatures []Signature
}

// Option configures Open.
type Option func(*options)

// WithSignatureFile adds the signatures of a YAML file:
//
//	signatures:
//	  - offset: 0
//	    magic: "MThd"
//	    description: "Standard MIDI data"
func WithSignatureFile(path string) Option {
	return func(o *options) {
		o.files = append(o.files, path)
	}
}

// WithSignatures adds signatures directly.
func WithSignatures(sigs ...Signature) Option {
	return func(o *options) {
		o.signatures = append(o.signatures, sigs...)
	}
}

// Open builds a database from the built-in audio signatures plus any
// configured extras. Extra signatures are consulted after the built-ins,
// in the order given.
func Open(opts ...Option) (*Database, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	db := &Database{}
	for _, path := range o.files {
		sigs, err := loadSignatures(path)
		if err != nil {
			return nil, err
		}
		db.signatures = append(db.signatures, sigs...)
	}

	for _, s := range o.signatures {
		if err := s.validate(); err != nil {
			return nil, err
		}
	}
	db.signatures = append(db.signatures, o.signatures...)

	return db, nil
}

// File describes the contents of the file at path.
func (db *Database) File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "directory", nil
	}

	return db.Describe(f)
}

// Describe returns a file(1) style description of the content of r. Only
// read errors are reported; content that matches nothing is "data".
func (db *Database) Describe(r io.ReadSeeker) (string, error) {
	head, err := readAt(r, 0, headSize)
	if err != nil {
		return "", err
	}

	if len(head) == 0 {
		return "empty", nil
	}

	desc, err := describe(r, head)
	if err != nil || desc != "" {
		return desc, err
	}

	for _, s := range db.signatures {
		if s.match(head) {
			return s.Description, nil
		}
	}

	if desc, ok := describeText(head); ok {
		return desc, nil
	}

	return "data", nil
}

func describe(r io.ReadSeeker, head []byte) (string, error) {
	switch {
	case hasPrefix(head, "fLaC"):
		return describeFLAC(head), nil
	case hasPrefix(head, "OggS"):
		return describeOgg(head), nil
	case isWAVE(head):
		return describeWAVE(r), nil
	case mpeg.ID3v2Size(head) > 0:
		return describeID3(r, head)
	}

	if desc, ok := describeMPEG(head); ok {
		return desc, nil
	}

	return "", nil
}

// describeID3 names the tag version and describes what follows the tag.
func describeID3(r io.ReadSeeker, head []byte) (string, error) {
	version := fmt.Sprintf("2.%d.%d", head[3], head[4])
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	if format, _, err := tag.Identify(r); err == nil {
		switch format {
		case tag.ID3v2_2:
			version = "2.2.0"
		case tag.ID3v2_3:
			version = "2.3.0"
		case tag.ID3v2_4:
			version = "2.4.0"
		}
	}
	desc := "Audio file with ID3 version " + version

	// Some encoders write more than one tag back to back.
	off := int64(0)
	for range 8 {
		b, err := readAt(r, off, mpeg.ID3v2HeaderSize)
		if err != nil {
			return "", err
		}
		n := mpeg.ID3v2Size(b)
		if n == 0 {
			break
		}
		off += int64(n)
	}

	body, err := readAt(r, off, 2*mpeg.MaxFrameSize)
	if err != nil {
		return "", err
	}

	var inner string
	switch {
	case hasPrefix(body, "fLaC"):
		inner = describeFLAC(body)
	default:
		inner, _ = describeMPEG(body)
	}
	if inner != "" {
		desc += ", contains: " + inner
	}

	return desc, nil
}

// readAt reads up to n bytes at off. A short read at end of input is not an
// error.
func readAt(r io.ReadSeeker, off int64, n int) ([]byte, error) {
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return nil, err
	}

	b := make([]byte, n)
	m, err := io.ReadFull(r, b)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}

	return b[:m], nil
}
