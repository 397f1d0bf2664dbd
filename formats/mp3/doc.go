// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MPEG-1/2 layer III decoding for the checksum engine.
//
// This package uses github.com/hajimehoshi/go-mp3 for the actual decoding.
// A frame scanner sits in front of it and passes only whole audio frames
// through.
//
// # Decoding MP3 Files
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("audio.mp3")
//	stream, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer stream.Close()
//
//	blk, err := stream.Next()
//
// # What Gets Skipped
//
// The scanner drops, without reporting an error:
//   - ID3v2 tags anywhere in the file, ID3v1 and APEv2 tags
//   - a leading Xing, Info or VBRI frame, which carries no audio
//   - bytes that do not parse as a layer III frame header
//   - a truncated frame at the end of the file
//
// A candidate frame found after lost sync is only accepted when it is
// followed by another frame of the same stream, a tag or the end of input.
//
// Frames go-mp3 fails to decode are skipped as well and decoding resumes
// with the next frame. Errors returned by the underlying reader are never
// skipped.
//
// # Output Format
//
// go-mp3 always produces 16-bit interleaved stereo and duplicates mono
// into both outputs. The channel count is taken from the mode of the first
// frame go-mp3 decodes (mono → 1, any other mode → 2); for mono streams the
// duplicate is discarded.
//   - Layout: audio.Interleaved
//   - Width: 4 (16-bit values widened to int32)
//   - Duration: 1152 samples per MPEG-1 frame, 576 for MPEG-2
//
// # Limitations
//
//   - MPEG-2.5 and layers I/II are not decoded
//   - A stream changing channel mode mid-way keeps the first frame's count
package mp3
