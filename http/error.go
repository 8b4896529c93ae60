package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fwojciec/docsite"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	docsite.ECONFLICT:       http.StatusConflict,
	docsite.EINVALID:        http.StatusBadRequest,
	docsite.ENOTFOUND:       http.StatusNotFound,
	docsite.ENOTIMPLEMENTED: http.StatusNotImplemented,
	docsite.EUNAVAILABLE:    http.StatusServiceUnavailable,
	docsite.EINTERNAL:       http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// FromErrorStatusCode returns the application error code for an HTTP status.
func FromErrorStatusCode(status int) string {
	if status == http.StatusTooManyRequests {
		return docsite.EUNAVAILABLE
	}
	for k, v := range codes {
		if v == status {
			return k
		}
	}
	return docsite.EINTERNAL
}

type errorResponse struct {
	Error string `json:"error"`
}

// Error writes err as a JSON error body. Internal errors are logged and
// their details hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := docsite.ErrorCode(err)
	if code == docsite.EINTERNAL {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeError(w, ErrorStatusCode(code), clientMessage(err))
}

// clientMessage returns the message of err that may be shown to clients.
func clientMessage(err error) string {
	if docsite.ErrorCode(err) == docsite.EINTERNAL {
		return "internal error"
	}
	return docsite.ErrorMessage(err)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
