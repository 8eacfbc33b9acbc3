// Package api contains the HTTP handlers of the focus API, the request models
// they validate, and the mapping from internal errors to safe HTTP responses.
package api
