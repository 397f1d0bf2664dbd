// SPDX-License-Identifier: EPL-2.0

// Package audsum computes content checksums of audio files.
//
// A checksum identifies the decoded audio, not the file: retagging an MP3,
// re-encoding a FLAC file with different block sizes or stripping
// metadata leaves it unchanged, while changing a single sample changes it.
//
// # Supported Formats
//
// Files are classified by content, never by extension:
//   - FLAC via formats/flac
//   - MP3 (MPEG-1/2 layer III) via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Wave and Opus files are recognized but rejected with
// ErrUnsupportedFiletype.
//
// # Quick Start
//
//	sum, err := audsum.ComputeChecksum("song.flac")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sum) // 128 lowercase hex characters
//
// # How It Works
//
// Every channel gets its own BLAKE2b-512 accumulator. Decoded samples are
// serialized as little-endian integers (32-bit for FLAC and MP3, 16-bit
// for Vorbis) and absorbed channel by channel, block by block. The final
// checksum is the XOR of the per-channel digests.
//
// Because each channel is hashed as one continuous stream, how a decoder
// cuts the audio into blocks does not matter. Because XOR is commutative,
// channel order does not matter either, and two identical channels cancel
// out. Result.ChannelDigests and Result.StrictEqual are available when that
// is not acceptable.
//
// # Errors
//
// Every failure is a *CheckError carrying the path, the codec when known
// and the cause. Its kind can be tested with errors.Is:
//
//	_, err := audsum.ComputeChecksum(path)
//	switch {
//	case errors.Is(err, audsum.ErrUnsupportedFiletype):
//	    // not audio
//	case errors.Is(err, audsum.ErrCodec):
//	    // corrupt, or misclassified
//	}
//
// MP3 frames the decoder cannot parse are skipped rather than reported;
// any other decode error fails the file.
//
// # Engines
//
// For concurrent use, logging or extra magic signatures build an Engine:
//
//	engine := audsum.New(
//	    audsum.WithClassifier(audsum.NewClassifier(magic.WithSignatureFile("extra.yaml"))),
//	    audsum.WithLogger(logger),
//	)
//	res, err := engine.Compute(path)
package audsum
