// Package result defines the uniform envelope every domain service returns.
// Handlers translate a Result into an HTTP status and body; services never
// hand raw Go errors to the HTTP layer.
package result

import "net/http"

// Result is the outcome of a service operation.
type Result struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
}

// OK returns a successful 200 envelope.
func OK(message string, data interface{}) Result {
	return Result{Success: true, StatusCode: http.StatusOK, Message: message, Data: data}
}

// Created returns a successful 201 envelope.
func Created(message string, data interface{}) Result {
	return Result{Success: true, StatusCode: http.StatusCreated, Message: message, Data: data}
}

// Fail returns a failed envelope with the given status code.
func Fail(status int, message string) Result {
	return Result{Success: false, StatusCode: status, Message: message}
}

// Unauthorized reports whether r is a 401 failure.
func (r Result) Unauthorized() bool {
	return !r.Success && r.StatusCode == http.StatusUnauthorized
}
