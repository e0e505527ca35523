// Package logger provides structured logging for the scribe engine
// using zerolog.
//
// It supports JSON and console output, log level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.WithComponent("scribe")
//	log.Info("utterance recognized", logger.Fields("words", 3))
package logger
