// Package api is the SnapFeed backend client.
//
// Every method issues exactly one HTTP request against the REST backend and
// either decodes the JSON response or returns an error. The client keeps no
// session state: callers pass the bearer token on each authenticated call.
//
// # Errors
//
// Non-2xx responses become *Error, which carries the status and the server's
// message and unwraps to a sentinel for the common cases:
//
//	401, 403       -> ErrUnauthorized
//	404            -> ErrNotFound
//	502, 503, 504  -> ErrUnavailable
//
// Transport failures (DNS, refused connections, timeouts) wrap ErrUnavailable.
// Use Message to get the text to show to a user.
package api
