// Package server provides the HTTP server implementation for the Pell
// equation solver API.
package server

// ParamParseError represents a parameter parsing error with HTTP status.
type ParamParseError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e ParamParseError) Error() string {
	return e.Message
}
