package audio

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/mewkiz/flac"

	"github.com/kbukum/scribe/errors"
)

func sine(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.8 * math.Sin(2*math.Pi*440*float64(i)/16000)
	}
	return out
}

func decodeFLAC(t *testing.T, data []byte) (*flac.Stream, []int32) {
	t.Helper()
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("flac.New: %v", err)
	}
	var got []int32
	for {
		f, err := stream.ParseNext()
		if err == io.EOF {
			return stream, got
		}
		if err != nil {
			t.Fatalf("ParseNext: %v", err)
		}
		got = append(got, f.Subframes[0].Samples...)
	}
}

func TestEncodeFLAC_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"single sample", 1},
		{"below minimum block", 15},
		{"minimum block", 16},
		{"one short frame", 4095},
		{"one full frame", 4096},
		{"one sample tail", 4097},
		{"two frames and one sample", 8193},
		{"short tail", 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := sine(tt.n)
			data, err := EncodeFLAC(samples, 16000)
			if err != nil {
				t.Fatalf("EncodeFLAC: %v", err)
			}
			if !bytes.HasPrefix(data, []byte("fLaC")) {
				t.Fatalf("missing FLAC signature: % x", data[:4])
			}

			stream, got := decodeFLAC(t, data)
			info := stream.Info
			if info.SampleRate != 16000 || info.NChannels != 1 || info.BitsPerSample != 16 {
				t.Errorf("unexpected stream info %+v", info)
			}
			if info.NSamples != uint64(tt.n) {
				t.Errorf("NSamples = %d, want %d", info.NSamples, tt.n)
			}
			if info.BlockSizeMin < 16 || info.BlockSizeMax < info.BlockSizeMin {
				t.Errorf("block size range = [%d, %d]", info.BlockSizeMin, info.BlockSizeMax)
			}

			want := ToPCM16(samples)
			if len(got) != len(want) {
				t.Fatalf("decoded %d samples, want %d", len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("sample %d = %d, want %d", i, got[i], want[i])
				}
			}
		})
	}
}

func TestEncodeFLAC_Deterministic(t *testing.T) {
	samples := sine(512)
	a, err := EncodeFLAC(samples, 16000)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodeFLAC(samples, 16000)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("encoding the same buffer twice produced different bytes")
	}
}

func TestEncodeFLAC_Errors(t *testing.T) {
	if _, err := EncodeFLAC(nil, 16000); !errors.IsEncoding(err) {
		t.Errorf("expected encoding error for empty buffer, got %v", err)
	}
	if _, err := EncodeFLAC([]float64{math.NaN()}, 16000); !errors.IsEncoding(err) {
		t.Errorf("expected encoding error for NaN, got %v", err)
	}
	if _, err := EncodeFLAC([]float64{0}, 0); !errors.IsEncoding(err) {
		t.Errorf("expected encoding error for zero sample rate, got %v", err)
	}
}
