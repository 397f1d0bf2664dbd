// SPDX-License-Identifier: EPL-2.0

package magic

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/go-audio/wav"
	"github.com/ik5/audsum/internal/mpeg"
)

func channelsText(n int) string {
	switch n {
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return strconv.Itoa(n) + " channels"
	}
}

func rateText(hz int) string {
	return strconv.FormatFloat(float64(hz)/1000, 'g', -1, 64) + " kHz"
}

// describeFLAC expects b to start with the fLaC marker.
func describeFLAC(b []byte) string {
	const desc = "FLAC audio bitstream data"

	// The STREAMINFO block must come first; its body starts at byte 8.
	if len(b) < 26 || b[4]&0x7f != 0 {
		return desc
	}

	rate := int(b[18])<<12 | int(b[19])<<4 | int(b[20])>>4
	channels := int(b[20]>>1&0x7) + 1
	bps := int(b[20]&0x1)<<4 | int(b[21]>>4) + 1
	samples := uint64(b[21]&0xf)<<32 | uint64(binary.BigEndian.Uint32(b[22:26]))

	s := fmt.Sprintf("%s, %d bit, %s", desc, bps, channelsText(channels))
	if rate > 0 {
		s += ", " + rateText(rate)
	}
	if samples > 0 {
		s += fmt.Sprintf(", %d samples", samples)
	}

	return s
}

// describeMPEG reports an MPEG audio frame at the start of b. When b holds
// more than one frame the following header must belong to the same stream.
func describeMPEG(b []byte) (string, bool) {
	h, err := mpeg.ParseHeader(b)
	if err != nil {
		return "", false
	}

	size := h.FrameSize()
	if size < mpeg.HeaderSize || size > mpeg.MaxFrameSize {
		return "", false
	}
	if len(b) >= size+mpeg.HeaderSize {
		nh, err := mpeg.ParseHeader(b[size:])
		if err != nil || !nh.SameStream(h) {
			return "", false
		}
	}

	return h.String(), true
}

// describeOgg inspects the first packet of the first page.
func describeOgg(b []byte) string {
	const desc = "Ogg data"

	if len(b) < 27 {
		return desc
	}
	start := 27 + int(b[26])
	if len(b) <= start {
		return desc
	}
	p := b[start:]

	switch {
	case len(p) >= 30 && p[0] == 0x01 && string(p[1:7]) == "vorbis":
		channels := int(p[11])
		rate := binary.LittleEndian.Uint32(p[12:16])
		s := fmt.Sprintf("%s, Vorbis audio, %s, %d Hz", desc, channelsText(channels), rate)
		if nominal := int32(binary.LittleEndian.Uint32(p[20:24])); nominal > 0 {
			s += fmt.Sprintf(", ~%d bps", nominal)
		}
		return s

	case len(p) >= 19 && string(p[:8]) == "OpusHead":
		rate := binary.LittleEndian.Uint32(p[12:16])
		return fmt.Sprintf("%s, Opus audio, version 0.%d, %s, %d Hz (Input Sample Rate)",
			desc, p[8], channelsText(int(p[9])), rate)

	case len(p) >= 5 && p[0] == 0x7f && string(p[1:5]) == "FLAC":
		return desc + ", FLAC audio"

	case len(p) >= 8 && string(p[:8]) == "Speex   ":
		return desc + ", Speex audio"
	}

	return desc
}

var wavFormats = map[uint16]string{
	1:    "Microsoft PCM",
	3:    "IEEE Float",
	6:    "ITU G.711 A-law",
	7:    "ITU G.711 mu-law",
	0x55: "MPEG Layer 3",
}

// describeWAVE reads the fmt chunk of a RIFF/WAVE file starting at offset 0.
func describeWAVE(r io.ReadSeeker) string {
	const desc = "RIFF (little-endian) data, WAVE audio"

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return desc
	}

	d := wav.NewDecoder(r)
	d.ReadInfo()
	if d.Err() != nil || d.NumChans == 0 {
		return desc
	}

	format, ok := wavFormats[d.WavAudioFormat]
	if !ok {
		format = fmt.Sprintf("format 0x%x", d.WavAudioFormat)
	}

	return fmt.Sprintf("%s, %s, %d bit, %s %d Hz",
		desc, format, d.BitDepth, channelsText(int(d.NumChans)), d.SampleRate)
}

// describeText recognizes plain text the way file(1) names it.
func describeText(b []byte) (string, bool) {
	ascii := true
	for _, c := range b {
		switch {
		case c == '\t', c == '\n', c == '\r', c == '\f', c == '\v':
		case c < 0x20, c == 0x7f:
			return "", false
		case c >= 0x80:
			ascii = false
		}
	}

	if ascii {
		return "ASCII text", true
	}
	if utf8.Valid(trimRune(b)) {
		return "Unicode text, UTF-8 text", true
	}

	return "", false
}

// trimRune drops a multi-byte sequence cut off at the end of the head.
func trimRune(b []byte) []byte {
	for i := 0; i < utf8.UTFMax && i < len(b); i++ {
		if utf8.RuneStart(b[len(b)-1-i]) {
			if !utf8.FullRune(b[len(b)-1-i:]) {
				return b[:len(b)-1-i]
			}
			break
		}
	}

	return b
}

func isWAVE(b []byte) bool {
	return len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WAVE"
}

func hasPrefix(b []byte, p string) bool {
	return bytes.HasPrefix(b, []byte(p))
}
