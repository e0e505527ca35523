package audio

import (
	"fmt"
	"math"

	"github.com/kbukum/scribe/errors"
)

// BitsPerSample is the PCM depth used for encoded utterances.
const BitsPerSample = 16

const pcm16Max = 1<<(BitsPerSample-1) - 1

// Validate checks that samples form an encodable buffer: non-empty and
// free of NaN or infinite values.
func Validate(samples []float64) error {
	if len(samples) == 0 {
		return errors.Encoding("empty audio buffer", nil)
	}
	for i, s := range samples {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return errors.Encoding(fmt.Sprintf("sample %d is not finite", i), nil).
				WithDetail("index", i)
		}
	}
	return nil
}

// ToPCM16 converts normalized samples to signed 16-bit values, clamping to
// [-1, 1] and rounding to the nearest integer.
func ToPCM16(samples []float64) []int32 {
	out := make([]int32, len(samples))
	for i, s := range samples {
		out[i] = int32(math.Round(clamp(s) * pcm16Max))
	}
	return out
}

func clamp(s float64) float64 {
	switch {
	case s > 1:
		return 1
	case s < -1:
		return -1
	default:
		return s
	}
}
