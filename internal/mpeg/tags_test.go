// SPDX-License-Identifier: EPL-2.0

package mpeg

import (
	"encoding/binary"
	"testing"
)

func TestID3v2Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []byte
		want int
	}{
		{"not a tag", []byte("RIFF\x00\x00\x00\x00WAVE"), 0},
		{"short", []byte("ID3"), 0},
		{"empty tag", []byte("ID3\x03\x00\x00\x00\x00\x00\x00"), 10},
		{"syncsafe size", []byte("ID3\x04\x00\x00\x00\x00\x02\x01"), 267},
		{"footer", []byte("ID3\x04\x00\x10\x00\x00\x00\x0a"), 30},
		{"invalid syncsafe", []byte("ID3\x03\x00\x00\x00\x00\x80\x00"), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ID3v2Size(tt.in); got != tt.want {
				t.Errorf("ID3v2Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAPESize(t *testing.T) {
	t.Parallel()

	footer := make([]byte, APEFooterSize)
	copy(footer, "APETAGEX")
	binary.LittleEndian.PutUint32(footer[12:], 100)

	if got := APESize(footer); got != APEFooterSize {
		t.Errorf("APESize(footer) = %d, want %d", got, APEFooterSize)
	}

	header := append([]byte(nil), footer...)
	binary.LittleEndian.PutUint32(header[20:], 1<<29)

	if got := APESize(header); got != APEFooterSize+100 {
		t.Errorf("APESize(header) = %d, want %d", got, APEFooterSize+100)
	}

	if got := APESize([]byte("APETAG")); got != 0 {
		t.Errorf("APESize(short) = %d, want 0", got)
	}
}

func TestIsInfoFrame(t *testing.T) {
	t.Parallel()

	h, err := ParseHeader([]byte{0xff, 0xfb, 0x90, 0x00})
	if err != nil {
		t.Fatalf("ParseHeader() error = %v", err)
	}

	frame := make([]byte, h.FrameSize())
	copy(frame, []byte{0xff, 0xfb, 0x90, 0x00})

	if IsInfoFrame(h, frame) {
		t.Error("IsInfoFrame() = true for a silent audio frame")
	}

	xing := append([]byte(nil), frame...)
	copy(xing[HeaderSize+32:], "Xing")
	if !IsInfoFrame(h, xing) {
		t.Error("IsInfoFrame() = false for a Xing frame")
	}

	info := append([]byte(nil), frame...)
	copy(info[HeaderSize+32:], "Info")
	if !IsInfoFrame(h, info) {
		t.Error("IsInfoFrame() = false for an Info frame")
	}

	vbri := append([]byte(nil), frame...)
	copy(vbri[HeaderSize+32:], "VBRI")
	if !IsInfoFrame(h, vbri) {
		t.Error("IsInfoFrame() = false for a VBRI frame")
	}
}
