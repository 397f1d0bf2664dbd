// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV16 writes interleaved 16-bit PCM as a WAVE file.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []int) error {
	enc := wav.NewEncoder(w, sampleRate, 16, channels, 1)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}

	return enc.Close()
}
