// Package api implements the JSON:API handlers for books and authors and
// the web routes of the OAuth authorization code flow. Handlers translate
// requests into service calls and service errors into faults, which the
// shared package renders as error documents.
package api
