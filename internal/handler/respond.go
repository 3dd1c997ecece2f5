package handler

import (
	"encoding/json"
	"net/http"

	"blog-api/pkg/errors"
	"blog-api/pkg/logger"
)

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, payload interface{}, logger *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("Failed to encode response")
	}
}

// writeError writes a structured error response
func writeError(w http.ResponseWriter, appErr *errors.AppError, logger *logger.Logger) {
	logger.WithError(appErr).Warn("Request failed")

	response := map[string]interface{}{
		"success": false,
		"error": map[string]interface{}{
			"type":    string(appErr.Type),
			"message": appErr.Message,
		},
	}

	if appErr.Details != nil {
		response["error"].(map[string]interface{})["details"] = appErr.Details
	}

	writeJSON(w, appErr.StatusCode, response, logger)
}

// writeAppError maps any error to a structured response, wrapping unknown
// errors as internal
func writeAppError(w http.ResponseWriter, err error, logger *logger.Logger) {
	if appErr, ok := err.(*errors.AppError); ok {
		writeError(w, appErr, logger)
		return
	}
	writeError(w, errors.NewInternalError("Internal server error", err), logger)
}
