// Package server is the local HTTP bridge between an out-of-process host
// shim and the speech engine. It runs Gin behind h2c.
//
// Routes:
//
//	POST /v1/utterances  {"samples":[...],"ts":0,"pad":false} -> {"phrase":[...]}
//	POST /v1/mimic       {"phrase":[...]} -> 202
//	GET  /health         aggregated component health
//	GET  /ready          readiness probe
//	GET  /version        build information
//
// Failures are returned as errors.ErrorResponse with the status of the
// underlying AppError.
package server
