package audio

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/kbukum/scribe/errors"
)

// Clip is a decoded mono recording.
type Clip struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// ReadWAV decodes a PCM WAV stream, down-mixing all channels to mono and
// normalizing by the source bit depth.
func ReadWAV(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.Encoding("not a valid wav file", nil)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, errors.Encoding("decode wav", err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels <= 0 {
		return nil, errors.Encoding("wav has no audio format", nil)
	}

	depth := buf.SourceBitDepth
	if depth <= 0 {
		depth = int(dec.BitDepth)
	}
	if depth <= 0 || depth > 32 {
		return nil, errors.Encoding(fmt.Sprintf("unsupported bit depth %d", depth), nil)
	}
	scale := float64(int64(1) << (depth - 1))
	var offset float64
	if depth == 8 {
		// 8-bit WAV is unsigned.
		offset = scale
	}
	channels := buf.Format.NumChannels

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := range frames {
		var sum float64
		for c := range channels {
			sum += float64(buf.Data[i*channels+c]) - offset
		}
		samples[i] = sum / float64(channels) / scale
	}
	return &Clip{Samples: samples, SampleRate: buf.Format.SampleRate}, nil
}
