// Package dto holds response bodies shared by every feature's handlers.
package dto

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OperationFailed is the generic message shown for unexpected faults.
const OperationFailed = "operation failed"
