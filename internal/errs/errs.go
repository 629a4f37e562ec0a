// Package errs defines the error shapes sent to HTTP clients.
//
// Every error that reaches the global error handler is turned into an
// HTTPError so clients always see the same JSON structure, optionally with
// field-level errors and an action hint such as a redirect.
package errs
