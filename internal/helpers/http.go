package helpers

import (
	"encoding/json"
	"net/http"

	"github.com/isometry/token-monitor/internal/models"
)

type httpResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RespondHTTP writes response as a JSON message, attaching err when set. A zero status code means 200.
func RespondHTTP(response models.Response, err error, rw http.ResponseWriter) {
	hR := httpResponse{
		Message: response.Body,
	}
	if err != nil {
		hR.Error = err.Error()
	}

	respBody, _ := json.Marshal(hR)
	for k, v := range response.Headers {
		rw.Header().Set(k, v)
	}
	rw.WriteHeader(statusCode(response.StatusCode))
	_, _ = rw.Write(respBody)
}

// RespondJSON writes v encoded as JSON with the given status code.
func RespondJSON(rw http.ResponseWriter, statusCode int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		RespondHTTP(models.Response{StatusCode: http.StatusInternalServerError}, err, rw)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(statusCode)
	_, _ = rw.Write(body)
}

// RespondText writes body as plain text with the given status code.
func RespondText(rw http.ResponseWriter, statusCode int, body string) {
	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	rw.WriteHeader(statusCode)
	_, _ = rw.Write([]byte(body))
}

func statusCode(code int) int {
	if code == 0 {
		return http.StatusOK
	}
	return code
}
