// SPDX-License-Identifier: EPL-2.0

// Package audio provides the contracts shared by the format decoders and the
// checksum engine.
//
// This package contains:
//   - Filetype, the closed set of recognized containers
//   - Block, one unit of decoded PCM
//   - Stream and Decoder interfaces implemented by formats/*
//   - Registry for looking up a Decoder by Filetype
//
// # Streams and Blocks
//
// A Stream yields Blocks until it returns io.EOF:
//
//	stream, err := flac.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//
//	for {
//	    blk, err := stream.Next()
//	    if err == io.EOF {
//	        break // Normal end of stream
//	    }
//	    if err != nil {
//	        return err // Decode error, fatal for this stream
//	    }
//	    left := blk.Channel(0, nil)
//	    _ = left
//	}
//
// The channel count reported by Channels never changes for the lifetime of
// a stream, and every Block carries exactly that many channels.
//
// # Sample Layout
//
// Decoders keep their native arrangement. FLAC frames arrive Planar, one
// run of Duration samples per channel. MP3 and Vorbis arrive Interleaved.
// Block.Channel hides the difference.
//
// Samples are carried as int32 regardless of the codec. Block.Width names
// the canonical byte width the samples are serialized at when hashed: 4 for
// FLAC and MP3, 2 for Vorbis.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register(audio.FLAC, flac.Decoder{})
//	decoder, ok := registry.Get(audio.FLAC)
//
// The registry is safe for concurrent use.
package audio
