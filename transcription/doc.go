// Package transcription defines the provider interface, request and response
// types and the phrase policy shared by speech-to-text backends.
//
// A backend turns one utterance (a buffer of mono float samples) into a
// Response. NormalizeResponse then applies the hallucination filter and
// folds the text into a Phrase, the lowercase word sequence handed to the
// voice-control host.
//
// # Backends
//
//   - transcription/scribe: ElevenLabs Scribe speech-to-text
//
// # Usage
//
//	mgr := transcription.NewManager(log)
//	mgr.Register(scribe.ProviderName, scribe.NewFactory(cfg, opts...))
//	_ = mgr.Initialize(scribe.ProviderName, nil)
//	p, _ := mgr.Get(ctx)
//	resp, err := p.Transcribe(ctx, transcription.Request{Samples: samples})
//	words := transcription.NormalizeResponse(resp, transcription.DefaultLanguage)
package transcription
