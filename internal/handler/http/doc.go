// Package http implements the HTTP transport layer of the credential vault.
// It provides middleware, route handlers, and request/response utilities for
// the REST API. The three caller classes — interactive sessions, trusted
// servers, and the cron scheduler — are separated by middleware before any
// request reaches the service layer.
package http
