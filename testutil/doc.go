// Package testutil provides test components for code that talks to the
// transcription service.
//
// ScribeServer is an in-process fake of the ElevenLabs speech-to-text
// endpoint. It records every request it receives (form fields in order,
// the audio part and the credential header) and answers with scripted
// replies:
//
//	fake := testutil.NewScribeServer()
//	testutil.T(t).Setup(fake)
//	fake.Enqueue(testutil.ErrorReply(429, `{"detail":{"message":"rate limited"}}`))
//
//	client, _ := scribe.New(scribe.Config{Endpoint: fake.URL()})
//
// Like every TestComponent it can be Reset between cases and rolled back
// with Snapshot and Restore.
package testutil
