// SPDX-License-Identifier: EPL-2.0

// Package magic describes file contents by sniffing, in the manner of
// file(1).
//
// Descriptions are free text. Built-in signatures cover the audio
// containers the checksum engine cares about:
//
//	FLAC audio bitstream data, 16 bit, stereo, 44.1 kHz, 1000 samples
//	Audio file with ID3 version 2.3.0, contains: MPEG ADTS, layer III, v1, 128 kbps, 44.1 kHz, JntStereo
//	Ogg data, Vorbis audio, stereo, 44100 Hz, ~128000 bps
//	Ogg data, Opus audio, version 0.1, stereo, 48000 Hz (Input Sample Rate)
//	RIFF (little-endian) data, WAVE audio, Microsoft PCM, 16 bit, mono 8000 Hz
//
// Anything else is checked against extra signatures loaded from YAML,
// then falls back to "ASCII text", "empty" or "data".
//
// ID3 tag versions are identified with github.com/dhowden/tag and WAVE
// format chunks are read with github.com/go-audio/wav.
//
//	db, err := magic.Open(magic.WithSignatureFile("extra.yaml"))
//	if err != nil {
//	    return err
//	}
//	desc, err := db.File("song.mp3")
package magic
