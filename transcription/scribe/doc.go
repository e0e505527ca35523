// Package scribe implements transcription.Provider for the ElevenLabs
// Scribe speech-to-text API.
//
// Each utterance is encoded as 16-bit mono FLAC and posted once to
// /v1/speech-to-text as a multipart form. The API key travels in the
// xi-api-key header. Failures map onto the errors package taxonomy:
// a missing key is a configuration error, non-2xx answers are
// transcription service errors carrying the upstream status, and
// transport failures are network errors.
package scribe
