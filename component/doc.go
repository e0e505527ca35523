// Package component defines lifecycle-managed services and a registry that
// starts them in order and stops them in reverse.
//
// The bridge server and the fake transcription service used in tests are
// components; the app package registers them and drives their lifecycle.
package component
