package webInterface

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"touristplaces/pkg/charts"
	"touristplaces/pkg/dataset"
	"touristplaces/pkg/planner"
	"touristplaces/pkg/trend"
)

type ErrorCode string

const (
	ErrorCodeInternalServerError ErrorCode = "internal_server_error"
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeInvalidFormat       ErrorCode = "invalid_format"
	ErrorCodeValidationFailed    ErrorCode = "validation_failed"
	ErrorCodeInvalidToken        ErrorCode = "invalid_token"
	ErrorCodeResourceNotFound    ErrorCode = "resource_not_found"
)

type APIError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    any       `json:"details,omitempty"`
	StatusCode int       `json:"-"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewAPIError(code ErrorCode, message string, details any, statusCode int) APIError {
	return APIError{
		Code:       code,
		Message:    message,
		Details:    details,
		StatusCode: statusCode,
	}
}

func invalidParam(name, value string) APIError {
	return NewAPIError(ErrorCodeInvalidFormat, fmt.Sprintf("Invalid '%s' value: %s", name, value), nil, http.StatusBadRequest)
}

// toAPIError maps domain errors onto their HTTP form.
func toAPIError(err error) APIError {
	var apiErr APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, dataset.ErrUnknownCity):
		return NewAPIError(ErrorCodeResourceNotFound, err.Error(), nil, http.StatusNotFound)
	case errors.Is(err, planner.ErrInvalidDays), errors.Is(err, dataset.ErrTooFewCities), errors.Is(err, trend.ErrHorizonTooLong):
		return NewAPIError(ErrorCodeBadRequest, err.Error(), nil, http.StatusBadRequest)
	case errors.Is(err, trend.ErrInsufficientData), errors.Is(err, charts.ErrNoData):
		return NewAPIError(ErrorCodeValidationFailed, err.Error(), nil, http.StatusUnprocessableEntity)
	default:
		return NewAPIError(ErrorCodeInternalServerError, "internal server error", nil, http.StatusInternalServerError)
	}
}

func (s *Server) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := toAPIError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	s.respondWithJSON(w, apiErr.StatusCode, apiErr)
}

func (s *Server) respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(payload); err != nil {
		s.log.Warn("encode response", zap.Error(err))
	}
}
