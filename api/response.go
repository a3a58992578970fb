package api

import (
	"errors"
	"net/http"

	"budget/service"

	"github.com/gin-gonic/gin"
)

// Response is the success envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the failure envelope. Fields carries per-field validation
// messages when available.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

// NoContent writes a bodyless 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes a failure envelope with the given status.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// BadRequest writes a 400 failure.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 failure.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound writes a 404 failure.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict writes a 409 failure.
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError writes a 500 failure.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// RespondError maps a service error to its HTTP status. Unrecognized errors
// become a 500 whose detail is suppressed in release mode.
func RespondError(c *gin.Context, err error, fallback string) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  validationErr.Message,
			Fields: validationErr.Fields,
		})
		return
	}
	var notFoundErr *service.NotFoundError
	if errors.As(err, &notFoundErr) {
		NotFound(c, notFoundErr.Error())
		return
	}
	var unauthorizedErr *service.UnauthorizedError
	if errors.As(err, &unauthorizedErr) {
		Unauthorized(c, unauthorizedErr.Error())
		return
	}
	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		Conflict(c, conflictErr.Message)
		return
	}
	InternalError(c, SafeErrorMessage(err, fallback))
}
