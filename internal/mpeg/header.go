// SPDX-License-Identifier: EPL-2.0

// Package mpeg parses MPEG audio frame headers and the tag blocks that are
// commonly found around MPEG audio streams.
package mpeg

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the size of an MPEG audio frame header.
const HeaderSize = 4

// MaxFrameSize bounds the length of any layer I-III frame.
const MaxFrameSize = 2881

var (
	ErrNoSync          = errors.New("no frame sync")
	ErrReservedVersion = errors.New("reserved MPEG version")
	ErrReservedLayer   = errors.New("reserved layer")
	ErrBadBitrate      = errors.New("free-format or invalid bitrate")
	ErrBadSampleRate   = errors.New("reserved sample rate")
	ErrBadEmphasis     = errors.New("reserved emphasis")
)

type Version int

const (
	Version2_5 Version = iota
	versionReserved
	Version2
	Version1
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "v1"
	case Version2:
		return "v2"
	case Version2_5:
		return "v2.5"
	default:
		return "reserved"
	}
}

type Layer int

const (
	layerReserved Layer = iota
	Layer3
	Layer2
	Layer1
)

func (l Layer) String() string {
	switch l {
	case Layer1:
		return "layer I"
	case Layer2:
		return "layer II"
	case Layer3:
		return "layer III"
	default:
		return "reserved"
	}
}

type ChannelMode int

const (
	Stereo ChannelMode = iota
	JointStereo
	DualChannel
	Mono
)

func (m ChannelMode) String() string {
	switch m {
	case Stereo:
		return "Stereo"
	case JointStereo:
		return "JntStereo"
	case DualChannel:
		return "2x Monaural"
	case Mono:
		return "Monaural"
	default:
		return "unknown"
	}
}

// Channels returns 1 for Mono and 2 for every other mode.
func (m ChannelMode) Channels() int {
	if m == Mono {
		return 1
	}

	return 2
}

// kbps, indexed by [version is v1][layer][bitrate index].
var bitrates = [2][4][16]int{
	{ // v2, v2.5
		{},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
	},
	{ // v1
		{},
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0},
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0},
	},
}

var sampleRates = [4][3]int{
	Version2_5: {11025, 12000, 8000},
	Version2:   {22050, 24000, 16000},
	Version1:   {44100, 48000, 32000},
}

// Header is a decoded MPEG audio frame header.
type Header struct {
	Version     Version
	Layer       Layer
	Protected   bool // a 16-bit CRC follows the header
	Bitrate     int  // kbps
	SampleRate  int  // Hz
	Padding     bool
	ChannelMode ChannelMode
}

// ParseHeader decodes the 4-byte header at the start of b.
func ParseHeader(b []byte) (Header, error) {
	var h Header
	if len(b) < HeaderSize {
		return h, ErrNoSync
	}

	v := binary.BigEndian.Uint32(b)
	if v>>21 != 0x7ff {
		return h, ErrNoSync
	}

	h.Version = Version((v >> 19) & 0x3)
	if h.Version == versionReserved {
		return h, ErrReservedVersion
	}

	h.Layer = Layer((v >> 17) & 0x3)
	if h.Layer == layerReserved {
		return h, ErrReservedLayer
	}

	h.Protected = (v>>16)&0x1 == 0

	v1 := 0
	if h.Version == Version1 {
		v1 = 1
	}
	h.Bitrate = bitrates[v1][h.Layer][(v>>12)&0xf]
	if h.Bitrate == 0 {
		return h, ErrBadBitrate
	}

	sr := (v >> 10) & 0x3
	if sr == 3 {
		return h, ErrBadSampleRate
	}
	h.SampleRate = sampleRates[h.Version][sr]

	h.Padding = (v>>9)&0x1 == 1
	h.ChannelMode = ChannelMode((v >> 6) & 0x3)

	if v&0x3 == 2 {
		return h, ErrBadEmphasis
	}

	return h, nil
}

// SamplesPerFrame returns the number of samples per channel in one frame.
func (h Header) SamplesPerFrame() int {
	switch {
	case h.Layer == Layer1:
		return 384
	case h.Layer == Layer3 && h.Version != Version1:
		return 576
	default:
		return 1152
	}
}

// FrameSize returns the length of the whole frame, header included.
func (h Header) FrameSize() int {
	pad := 0
	if h.Padding {
		pad = 1
	}

	if h.Layer == Layer1 {
		return (12*h.Bitrate*1000/h.SampleRate + pad) * 4
	}

	coef := 144
	if h.Layer == Layer3 && h.Version != Version1 {
		coef = 72
	}

	return coef*h.Bitrate*1000/h.SampleRate + pad
}

// SideInfoSize returns the size of the layer III side information.
func (h Header) SideInfoSize() int {
	mono := h.ChannelMode == Mono
	switch {
	case h.Version == Version1 && mono:
		return 17
	case h.Version == Version1:
		return 32
	case mono:
		return 9
	default:
		return 17
	}
}

// SameStream reports whether o could belong to the same stream as h.
func (h Header) SameStream(o Header) bool {
	return h.Version == o.Version && h.Layer == o.Layer && h.SampleRate == o.SampleRate
}

// String renders the header the way file(1) describes MPEG audio.
func (h Header) String() string {
	rate := fmt.Sprintf("%d kHz", h.SampleRate/1000)
	if h.SampleRate%1000 != 0 {
		rate = fmt.Sprintf("%g kHz", float64(h.SampleRate)/1000)
	}

	return fmt.Sprintf("MPEG ADTS, %s, %s, %d kbps, %s, %s",
		h.Layer, h.Version, h.Bitrate, rate, h.ChannelMode)
}
