// Package pagination decodes Sentry's cursor pagination metadata.
//
// Sentry paginates list endpoints with an RFC5988-style link response
// header extended with two non-standard attributes: results (whether the
// relation actually has further data) and cursor (the opaque token to
// request it). A typical header:
//
//	<https://sentry.io/api/0/...&cursor=0:0:1>; rel="previous"; results="false"; cursor="0:0:1",
//	<https://sentry.io/api/0/...&cursor=0:100:0>; rel="next"; results="true"; cursor="0:100:0"
//
// ParseLinkHeader is a total function: segments that are malformed or
// irrelevant are dropped silently, and a missing or garbled header simply
// decodes to no links. Degrading pagination to "no more pages" is the
// intended failure mode, never an error.
package pagination
