// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
	"errors"
	"io"
)

var oggCRCTable = func() (t [256]uint32) {
	for i := range t {
		r := uint32(i) << 24
		for range 8 {
			if r&0x80000000 != 0 {
				r = r<<1 ^ 0x04c11db7
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}
	return t
}()

func oggCRC(b []byte) uint32 {
	var crc uint32
	for _, c := range b {
		crc = crc<<8 ^ oggCRCTable[byte(crc>>24)^c]
	}

	return crc
}

// WriteOggPage writes packet as a single beginning-of-stream Ogg page.
func WriteOggPage(w io.Writer, serial uint32, packet []byte) error {
	if len(packet) >= 255 {
		return errors.New("audiotest: packet too large for one segment")
	}

	page := make([]byte, 27, 28+len(packet))
	copy(page, "OggS")
	page[5] = 0x02 // beginning of stream
	binary.LittleEndian.PutUint32(page[14:], serial)
	page[26] = 1
	page = append(page, byte(len(packet)))
	page = append(page, packet...)

	binary.LittleEndian.PutUint32(page[22:], oggCRC(page))

	_, err := w.Write(page)
	return err
}

// VorbisIdent returns a Vorbis identification header packet.
func VorbisIdent(channels, sampleRate int) []byte {
	p := make([]byte, 30)
	p[0] = 0x01
	copy(p[1:], "vorbis")
	p[11] = byte(channels)
	binary.LittleEndian.PutUint32(p[12:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(p[20:], 128000) // nominal bitrate
	p[28] = 0xb8                                   // block sizes 256 and 2048
	p[29] = 0x01                                   // framing

	return p
}

// OpusHead returns an Opus identification header packet.
func OpusHead(channels, sampleRate int) []byte {
	p := make([]byte, 19)
	copy(p, "OpusHead")
	p[8] = 1
	p[9] = byte(channels)
	binary.LittleEndian.PutUint16(p[10:], 312)
	binary.LittleEndian.PutUint32(p[12:], uint32(sampleRate))

	return p
}

// WriteVorbisHead writes the first page of an Ogg Vorbis file. It is enough
// for content sniffing but not for decoding.
func WriteVorbisHead(w io.Writer, channels, sampleRate int) error {
	return WriteOggPage(w, 0x5eed, VorbisIdent(channels, sampleRate))
}

// WriteOpusHead writes the first page of an Ogg Opus file.
func WriteOpusHead(w io.Writer, channels, sampleRate int) error {
	return WriteOggPage(w, 0x0905, OpusHead(channels, sampleRate))
}
