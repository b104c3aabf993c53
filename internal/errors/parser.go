package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo is the client-facing view of an internal error.
type ErrorInfo struct {
	Status  int
	Code    string
	Message string
}

// ParseError turns an infrastructure error into a status, code and message
// without leaking driver details. context names the failed operation, e.g.
// "list products".
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: defaultMessage(context),
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    ResourceNotFound,
			Message: "Requested record was not found",
		}
	}

	errLower := strings.ToLower(err.Error())

	// postgres 23505 and sqlite UNIQUE failures
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    ResourceAlreadyExists,
			Message: "Record already exists",
		}
	}

	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Status:  http.StatusServiceUnavailable,
			Code:    InternalDatabaseError,
			Message: "Storage is unreachable. Please try again later",
		}
	}

	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: defaultMessage(context),
	}
}

func defaultMessage(context string) string {
	if context == "" {
		return "Something went wrong. Please try again later"
	}
	return "Failed to " + context + ". Please try again later"
}

// ParseAndRespond writes the parsed error as the response.
func ParseAndRespond(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, info.Status, info.Code, info.Message)
}
