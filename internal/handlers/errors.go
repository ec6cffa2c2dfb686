package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const internalErrorDetail = "Unexpected error occurred."

var titles = map[int]string{
	http.StatusBadRequest:          "Bad Request",
	http.StatusNotFound:            "Not Found",
	http.StatusConflict:            "Conflict",
	http.StatusUnprocessableEntity: "Unprocessable Entity",
	http.StatusTooManyRequests:     "Too Many Requests",
	http.StatusInternalServerError: "Internal Server Error",
}

// abortWithProblem writes a problem body and stops the handler chain.
func abortWithProblem(c *gin.Context, status int, code, detail string, meta map[string]any) {
	requestID, _ := middleware.GetRequestIDFromContext(c)
	c.AbortWithStatusJSON(status, dto.ProblemResponse{
		Status:    status,
		Title:     titles[status],
		Detail:    detail,
		Code:      code,
		Path:      c.Request.URL.Path,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
		Meta:      meta,
	})
}

// abortRateLimited adapts abortWithProblem to the rate limit middleware.
func abortRateLimited(c *gin.Context, status int, code, detail string) {
	abortWithProblem(c, status, code, detail, nil)
}

// respondError maps a service error to its HTTP status and problem body.
// Internal errors are logged with the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	status := appErr.Kind.HTTPStatus()

	if appErr.Kind == apperrors.KindInternal {
		middleware.GetLoggerFromContext(c).Error("Unhandled error",
			slog.String("code", appErr.Code),
			slog.String("error", err.Error()))
		abortWithProblem(c, status, apperrors.CodeInternal, internalErrorDetail, nil)
		return
	}

	abortWithProblem(c, status, appErr.Code, appErr.Message, appErr.Meta)
}

// respondBindError reports a request body or query that could not be bound.
func respondBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]any, len(validationErrs))
		messages := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fieldName(fe)] = fe.Tag()
			messages = append(messages, fieldName(fe)+": failed '"+fe.Tag()+"'")
		}
		abortWithProblem(c, http.StatusBadRequest, apperrors.CodeRequestValidation,
			strings.Join(messages, "; "), map[string]any{"fields": fields})
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		abortWithProblem(c, http.StatusBadRequest, apperrors.CodeMalformedRequest, "Malformed JSON request body.", nil)
		return
	}

	abortWithProblem(c, http.StatusBadRequest, apperrors.CodeMalformedRequest, err.Error(), nil)
}

// fieldName lower-cases the first letter of the Go field name to match the JSON body.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
