// Package audio converts utterance buffers between the host's float sample
// representation and the encodings the transcription service accepts.
//
// Buffers are mono and normalized to [-1, 1]. EncodeFLAC produces a 16-bit
// mono FLAC stream; ReadWAV loads a WAV file and down-mixes it to a mono
// float buffer for offline transcription.
package audio
