package btvo

import (
	"fmt"
	"net/http"
)

// StatusCoder is implemented by errors that have an associated HTTP status code.
type StatusCoder interface {
	StatusCode() int
}

// ErrorResponse is the JSON error response body.
type ErrorResponse struct {
	Message string `json:"message"`
}

// NotFoundError indicates a requested resource was not found.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No such %s: %s", e.Resource, e.ID)
}

func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// InvalidParameterError indicates an invalid request parameter.
type InvalidParameterError struct {
	Message string
}

func (e *InvalidParameterError) Error() string {
	return e.Message
}

func (e *InvalidParameterError) StatusCode() int {
	return http.StatusBadRequest
}

// ConflictError indicates a conflicting request.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// ServerError indicates an internal server error.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

func (e *ServerError) StatusCode() int {
	return http.StatusInternalServerError
}
