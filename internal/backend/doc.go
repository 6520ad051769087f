// Package backend is the narrow surface a host UI calls. Each method maps to
// one profile operation, logs any failure, and returns a benign default
// (empty list, false, "" or no profile) instead of an error. Callers that need
// the underlying error kinds use Engine and Store directly.
package backend
