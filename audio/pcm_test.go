package audio

import (
	"math"
	"testing"

	"github.com/kbukum/scribe/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		wantErr bool
	}{
		{"ok", []float64{0, 0.5, -0.5}, false},
		{"out of range is clamped later", []float64{1.5}, false},
		{"empty", nil, true},
		{"nan", []float64{0, math.NaN()}, true},
		{"inf", []float64{math.Inf(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.samples)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.IsEncoding(err) {
				t.Errorf("expected encoding error, got %v", err)
			}
		})
	}
}

func TestToPCM16(t *testing.T) {
	got := ToPCM16([]float64{0, 1, -1, 2, -3, 0.5})
	want := []int32{0, 32767, -32767, 32767, -32767, 16384}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSeekBuffer(t *testing.T) {
	b := &seekBuffer{}
	_, _ = b.Write([]byte("hello world"))
	if _, err := b.Seek(0, 0); err != nil {
		t.Fatal(err)
	}
	_, _ = b.Write([]byte("HELLO"))
	if string(b.Bytes()) != "HELLO world" {
		t.Errorf("unexpected contents %q", b.Bytes())
	}
	if _, err := b.Seek(-1, 0); err == nil {
		t.Error("expected error for negative position")
	}
}
