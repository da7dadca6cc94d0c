// Package verifyapi exposes the login check over HTTP using a chi router.
//
// # Endpoints
//
//	POST /v1/verify    {"identity":"testuser","code":"123456","attribute":"..."}
//	GET  /health/live
//	GET  /health/ready
//
// /v1/verify answers:
//
//   - 204 when the code is accepted;
//   - 401 {"error":"verification failed"} for any rejected code;
//   - 429 {"error":"too many attempts"} while the identity or origin is throttled;
//   - 400, 413 or 415 for malformed requests.
//
// The origin used for throttling comes from pkg/clientip. Configure trusted
// proxy headers with WithClientIP, otherwise the socket address is used.
//
// Every response carries an X-Request-ID header and each request is logged
// with its status and duration.
//
// /health/ready runs the probes registered with WithReadinessCheck and, when
// WithStats is set, reports how many identities and origins the throttle
// tracks.
package verifyapi
