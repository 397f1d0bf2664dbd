// SPDX-License-Identifier: EPL-2.0

package mpeg

import (
	"bytes"
	"encoding/binary"
)

const (
	// ID3v2HeaderSize is the size of an ID3v2 header (and footer).
	ID3v2HeaderSize = 10
	// ID3v1Size is the fixed size of an ID3v1 tag.
	ID3v1Size = 128
	// APEFooterSize is the size of an APEv2 header or footer.
	APEFooterSize = 32
)

// ID3v2Size returns the full size of the ID3v2 tag starting at b, header and
// optional footer included, or 0 if b does not start with a tag header.
func ID3v2Size(b []byte) int {
	if len(b) < ID3v2HeaderSize || string(b[:3]) != "ID3" {
		return 0
	}
	if b[3] == 0xff || b[4] == 0xff {
		return 0
	}

	// Syncsafe integer: 7 significant bits per byte.
	for _, c := range b[6:10] {
		if c&0x80 != 0 {
			return 0
		}
	}
	size := int(b[6])<<21 | int(b[7])<<14 | int(b[8])<<7 | int(b[9])

	size += ID3v2HeaderSize
	if b[5]&0x10 != 0 {
		size += ID3v2HeaderSize
	}

	return size
}

// APESize returns the number of bytes to skip for an APEv2 header or footer
// at the start of b, or 0 if there is none. For a header the whole tag is
// skipped; for a footer only the footer itself, since its items have
// already been passed.
func APESize(b []byte) int {
	if len(b) < APEFooterSize || string(b[:8]) != "APETAGEX" {
		return 0
	}

	size := int(binary.LittleEndian.Uint32(b[12:16]))
	flags := binary.LittleEndian.Uint32(b[20:24])
	if flags&(1<<29) != 0 {
		return APEFooterSize + size
	}

	return APEFooterSize
}

// IsID3v1 reports whether b starts with an ID3v1 tag marker.
func IsID3v1(b []byte) bool {
	return len(b) >= 3 && string(b[:3]) == "TAG"
}

var infoTags = [][]byte{[]byte("Xing"), []byte("Info")}

// IsInfoFrame reports whether frame, a complete layer III frame, carries a
// Xing, Info or VBRI metadata header instead of audio.
func IsInfoFrame(h Header, frame []byte) bool {
	off := HeaderSize + h.SideInfoSize()
	if h.Protected {
		off += 2
	}

	if len(frame) >= off+4 {
		for _, t := range infoTags {
			if bytes.Equal(frame[off:off+4], t) {
				return true
			}
		}
	}

	// VBRI sits at a fixed offset after 32 bytes regardless of mode.
	const vbriOff = HeaderSize + 32
	return len(frame) >= vbriOff+4 && string(frame[vbriOff:vbriOff+4]) == "VBRI"
}
