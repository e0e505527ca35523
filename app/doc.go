// Package app wires the scribe engine from configuration and runs it.
//
// New builds every collaborator explicitly: the Scribe client through the
// transcription provider manager, the engine with its notifier and
// dispatcher, and, when enabled, the HTTP bridge. Run serves until a signal
// arrives; RunTask runs one finite job, such as transcribing a file, under
// the same lifecycle.
//
//	cfg, err := app.LoadConfig()
//	a, err := app.New(cfg)
//	err = a.Run(ctx)
package app
