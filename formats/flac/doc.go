// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC stream decoding for the checksum engine.
//
// This package uses github.com/mewkiz/flac to parse FLAC frames. The channel
// count comes from the STREAMINFO block and is known before the first frame
// is read.
//
// # Decoding FLAC Files
//
//	decoder := flac.Decoder{}
//	file, _ := os.Open("audio.flac")
//	stream, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer stream.Close()
//
//	blk, err := stream.Next()
//
// # Output Format
//
// Each Block is one FLAC frame:
//   - Layout: audio.Planar, channel c occupies Samples[c*Duration:(c+1)*Duration]
//   - Width: 4 (samples are hashed as 32-bit little-endian regardless of the
//     stream's bits per sample)
//   - Duration: the frame's block size, which may vary from frame to frame
//
// Stereo decorrelation (left/side, mid/side) is undone by the parser, so
// every run holds the plain samples of its channel.
//
// # Errors
//
// Any frame that fails to parse, including CRC mismatches, ends the stream
// with an error. There is no frame skipping for FLAC.
package flac
