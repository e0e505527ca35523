// Package engine adapts the Scribe client to a voice-control host's speech
// engine interface.
//
// The host delivers one VAD-delimited utterance at a time through
// OnAudioFrame. The engine converts it, drops empty results and dispatches
// a "phrase" event for everything else. Grammar, vocabulary and microphone
// hooks are accepted and ignored: recognition is open-vocabulary and audio
// capture belongs to the host.
package engine
