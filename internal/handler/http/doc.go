// Package http implements the HTTP transport layer of the reference server.
//
// It exposes route wiring, request handlers, and middleware for the device
// registry and the session-bound document API. Cross-cutting concerns such as
// authentication, request tracing, access logging, and response compression
// are handled in this package before requests are delegated to the service
// layer.
package http
