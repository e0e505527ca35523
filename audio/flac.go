package audio

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
	"github.com/mewkiz/flac/meta"

	"github.com/kbukum/scribe/errors"
)

const (
	// FLACContentType is the MIME type of encoded utterances.
	FLACContentType = "audio/flac"

	// blockSize is the number of samples per FLAC frame.
	blockSize = 4096

	// minBlockSize is the smallest block size STREAMINFO may declare.
	minBlockSize = 16

	// blockSizeOffset locates STREAMINFO's min/max block size fields,
	// after the signature and the metadata block header.
	blockSizeOffset = 8
)

// EncodeFLAC encodes mono samples as a 16-bit FLAC stream at sampleRate.
// Frames use verbatim subframes, so encoding is lossless and deterministic.
func EncodeFLAC(samples []float64, sampleRate int) ([]byte, error) {
	if err := Validate(samples); err != nil {
		return nil, err
	}
	if sampleRate <= 0 || sampleRate > 655350 {
		return nil, errors.Encoding(fmt.Sprintf("invalid sample rate %d", sampleRate), nil)
	}

	pcm := ToPCM16(samples)
	info := &meta.StreamInfo{
		BlockSizeMin:  blockSize,
		BlockSizeMax:  blockSize,
		SampleRate:    uint32(sampleRate),
		NChannels:     1,
		BitsPerSample: BitsPerSample,
		NSamples:      uint64(len(pcm)),
	}

	out := &seekBuffer{}
	enc, err := flac.NewEncoder(out, info)
	if err != nil {
		return nil, errors.Encoding("create flac encoder", err)
	}

	for num, start := uint64(0), 0; start < len(pcm); num, start = num+1, start+blockSize {
		end := min(start+blockSize, len(pcm))
		block := pcm[start:end]
		f := &frame.Frame{
			Header: frame.Header{
				HasFixedBlockSize: true,
				BlockSize:         uint16(len(block)),
				SampleRate:        uint32(sampleRate),
				Channels:          frame.ChannelsMono,
				BitsPerSample:     BitsPerSample,
				Num:               num,
			},
			Subframes: []*frame.Subframe{{
				SubHeader: frame.SubHeader{Pred: frame.PredVerbatim},
				Samples:   block,
				NSamples:  len(block),
			}},
		}
		if err := enc.WriteFrame(f); err != nil {
			return nil, errors.Encoding(fmt.Sprintf("write frame %d", num), err)
		}
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Encoding("finish flac stream", err)
	}
	if err := patchBlockSizes(out, info); err != nil {
		return nil, errors.Encoding("finish flac stream", err)
	}
	return out.Bytes(), nil
}

// patchBlockSizes rewrites the block size range in STREAMINFO. The encoder
// records the smallest block it wrote, which counts the short final block.
// That block is exempt from the range, and the range must be at least 16.
func patchBlockSizes(out *seekBuffer, info *meta.StreamInfo) error {
	lo, hi := info.BlockSizeMin, info.BlockSizeMax
	if hi < minBlockSize {
		hi = minBlockSize
	}
	if lo < minBlockSize {
		lo = hi
	}
	if lo == info.BlockSizeMin && hi == info.BlockSizeMax {
		return nil
	}
	var field [4]byte
	binary.BigEndian.PutUint16(field[0:2], lo)
	binary.BigEndian.PutUint16(field[2:4], hi)
	if _, err := out.Seek(blockSizeOffset, io.SeekStart); err != nil {
		return err
	}
	if _, err := out.Write(field[:]); err != nil {
		return err
	}
	info.BlockSizeMin, info.BlockSizeMax = lo, hi
	return nil
}
