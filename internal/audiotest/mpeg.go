// SPDX-License-Identifier: EPL-2.0

package audiotest

import "bytes"

// MP3FrameSize is the length of the frames built by MP3Frame: MPEG-1 layer
// III, 128 kbps, 44.1 kHz, no padding.
const MP3FrameSize = 417

// MP3Frame returns a silent MPEG-1 layer III frame. Its side information
// and main data are all zero, so it decodes to digital silence.
func MP3Frame(mono bool) []byte {
	f := make([]byte, MP3FrameSize)
	copy(f, []byte{0xff, 0xfb, 0x90, 0x00})
	if mono {
		f[3] = 0xc0
	}

	return f
}

// XingFrame returns a frame that carries an Info header instead of audio,
// as written by LAME at the start of a file.
func XingFrame(mono bool) []byte {
	f := MP3Frame(mono)

	off := 4 + 32
	if mono {
		off = 4 + 17
	}
	copy(f[off:], "Info")
	// Flags: frame count present.
	f[off+7] = 0x01

	return f
}

// ID3v2Tag returns an ID3v2.3 tag with one TIT2 frame holding title,
// followed by pad zero bytes.
func ID3v2Tag(title string, pad int) []byte {
	var body bytes.Buffer
	body.WriteString("TIT2")
	n := len(title) + 1
	body.Write([]byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n), 0, 0})
	body.WriteByte(0) // ISO-8859-1
	body.WriteString(title)
	body.Write(make([]byte, pad))

	size := body.Len()
	tag := []byte{'I', 'D', '3', 3, 0, 0,
		byte(size >> 21 & 0x7f), byte(size >> 14 & 0x7f), byte(size >> 7 & 0x7f), byte(size & 0x7f)}

	return append(tag, body.Bytes()...)
}

// ID3v1Tag returns a 128 byte ID3v1 tag.
func ID3v1Tag(title string) []byte {
	tag := make([]byte, 128)
	copy(tag, "TAG")
	copy(tag[3:33], title)

	return tag
}

// MP3Stream concatenates frames silent frames.
func MP3Stream(frames int, mono bool) []byte {
	return bytes.Repeat(MP3Frame(mono), frames)
}
