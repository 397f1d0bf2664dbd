// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding for the checksum engine.
//
// This package uses github.com/jfreymuth/oggvorbis to decode Ogg Vorbis
// files. The channel count comes from the Vorbis identification header.
//
// # Decoding Vorbis Files
//
//	decoder := vorbis.Decoder{}
//	file, _ := os.Open("audio.ogg")
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
// The decoder produces float samples. Each read is converted to signed
// 16-bit PCM with utils.Float32ToInt16 (scale 32768, clamped, truncated)
// so the hashed representation matches what a 16-bit Vorbis decoder would
// hand out:
//   - Layout: audio.Interleaved, stride = channel count
//   - Width: 2
//   - Duration: samples per channel in this read
//
// # Limitations
//
//   - Chained Ogg streams with differing channel counts are not supported
//   - Ogg streams carrying Opus or FLAC are rejected by the decoder
package vorbis
