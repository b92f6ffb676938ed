// Package walkapi is an HTTP client for the walk service's REST API.
//
// It is the remote counterpart of the in-process service layer: the CLI
// uses it to drive walks on a running server instead of simulating them
// locally. The package owns the wire representation (unexported mirror
// structs of the server's JSON) and translates responses into its own
// exported view types, so callers never touch raw API payloads.
//
// Transport concerns (retries, circuit breaking, tracing) live in the
// parent clients package; this package adds path construction, decoding,
// and mapping of HTTP failures onto domain errors so callers can use
// domain.IsNotFound, domain.IsConflict and friends regardless of whether
// the walk lives in memory or behind a server.
package walkapi
