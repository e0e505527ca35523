// Command scribe runs the ElevenLabs Scribe speech engine.
//
//	scribe serve [--config file] [--host 127.0.0.1] [--port 8765]
//	scribe transcribe [--language eng] [--raw] file.wav
//	scribe version [--json]
package main

import (
	"context"
	"os"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
