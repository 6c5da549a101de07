// Package errs provides the standardized error taxonomy for the matching
// engine. It implements a consistent pattern for error creation, formatting,
// and unwrapping that is used throughout the application.
//
// The taxonomy mirrors how failures are surfaced:
//   - ValidationError: malformed input, recovered locally, inline message
//   - ConflictError: state changed before the call landed, forces a refresh
//   - NotFoundError: stale identifier after deletion or expiry
//   - AuthorizationError: gate/ownership failure, redirects instead of inline display
//   - TransportError: realtime connection unavailable, degrades to polling
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is classifies against the sentinel
//
// Business-rule failures carried by these types are never auto-retried;
// only TransportError is retryable, and only at the transport layer.
package errs
