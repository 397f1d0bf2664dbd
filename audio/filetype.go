// SPDX-License-Identifier: EPL-2.0

package audio

// Filetype is the closed set of audio container kinds the classifier
// recognizes.
type Filetype int

const (
	WAV Filetype = iota + 1
	FLAC
	MP3
	Vorbis
	Opus
)

// Filetypes lists every recognized Filetype in declaration order.
var Filetypes = []Filetype{WAV, FLAC, MP3, Vorbis, Opus}

// String returns the display name.
func (f Filetype) String() string {
	switch f {
	case WAV:
		return "Wave"
	case FLAC:
		return "FLAC"
	case MP3:
		return "MP3"
	case Vorbis:
		return "Vorbis"
	case Opus:
		return "Opus"
	default:
		return "unknown"
	}
}

// Extension returns the canonical file extension, including the dot.
func (f Filetype) Extension() string {
	switch f {
	case WAV:
		return ".wav"
	case FLAC:
		return ".flac"
	case MP3:
		return ".mp3"
	case Vorbis:
		return ".ogg"
	case Opus:
		return ".opus"
	default:
		return ""
	}
}
