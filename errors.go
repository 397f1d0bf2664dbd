// SPDX-License-Identifier: EPL-2.0

package audsum

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the ways a checksum computation can fail.
type ErrorKind int

const (
	// KindFileAccess means the path does not exist or cannot be opened.
	KindFileAccess ErrorKind = iota + 1
	// KindClassificationUnavailable means the sniffing backend failed to
	// initialize.
	KindClassificationUnavailable
	// KindUnsupportedFiletype means the content is not a decodable audio
	// container.
	KindUnsupportedFiletype
	// KindCodec means the decoder rejected the data.
	KindCodec
	// KindIO means reading the file failed mid-way.
	KindIO
)

// Sentinels matching each kind through errors.Is.
var (
	ErrFileAccess                = errors.New("file access")
	ErrClassificationUnavailable = errors.New("classification unavailable")
	ErrUnsupportedFiletype       = errors.New("unsupported filetype")
	ErrCodec                     = errors.New("codec error")
	ErrIO                        = errors.New("i/o error")
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindFileAccess:
		return "file access"
	case KindClassificationUnavailable:
		return "classification unavailable"
	case KindUnsupportedFiletype:
		return "unsupported filetype"
	case KindCodec:
		return "codec"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindFileAccess:
		return ErrFileAccess
	case KindClassificationUnavailable:
		return ErrClassificationUnavailable
	case KindUnsupportedFiletype:
		return ErrUnsupportedFiletype
	case KindCodec:
		return ErrCodec
	case KindIO:
		return ErrIO
	default:
		return nil
	}
}

// CheckError is returned for every failed checksum computation.
type CheckError struct {
	Kind ErrorKind
	Path string
	// Codec names the container whose decoder was involved, if any.
	Codec string
	// Extension of the path, set for KindUnsupportedFiletype.
	Extension string
	Err       error
}

func (e *CheckError) Error() string {
	s := fmt.Sprintf("[%v] %s", e.Kind, e.Path)
	if e.Codec != "" {
		s += " (" + e.Codec + ")"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}

	return s
}

func (e *CheckError) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel of e's kind.
func (e *CheckError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// KindOf returns the kind of err, or 0 if err is not a *CheckError.
func KindOf(err error) ErrorKind {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce.Kind
	}

	return 0
}
