package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"

	"github.com/iudanet/gamebackend/pkg/api"
)

const maxBodySize = 1 << 20 // 1 MiB, savegame payloads included

// decodeValues reads the request body into a flat value map. The game
// client posts form data (WWWForm), other clients send JSON objects;
// both collapse to the same url.Values view.
func decodeValues(r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodySize)

	contentType := r.Header.Get("Content-Type")
	mediaType := ""
	if contentType != "" {
		var err error
		mediaType, _, err = mime.ParseMediaType(contentType)
		if err != nil {
			return nil, fmt.Errorf("invalid content type: %w", err)
		}
	}

	switch mediaType {
	case "application/json":
		return decodeJSONValues(r)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodySize); err != nil {
			return nil, fmt.Errorf("failed to parse multipart form: %w", err)
		}
		return r.PostForm, nil
	default:
		// application/x-www-form-urlencoded and absent content types
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("failed to parse form: %w", err)
		}
		return r.PostForm, nil
	}
}

// decodeJSONValues flattens a JSON object into url.Values. Only
// scalar members are accepted; numbers keep their literal form so
// integer fields survive the round trip.
func decodeJSONValues(r *http.Request) (url.Values, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode JSON body: %w", err)
	}

	values := url.Values{}
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			values.Set(key, v)
		case json.Number:
			values.Set(key, v.String())
		case bool:
			values.Set(key, fmt.Sprintf("%t", v))
		case nil:
			values.Set(key, "")
		default:
			return nil, fmt.Errorf("field %q is not a scalar", key)
		}
	}

	return values, nil
}

// hasField reports whether the field was present in the request body,
// even with an empty value.
func hasField(values url.Values, key string) bool {
	_, ok := values[key]
	return ok
}

// sendJSON writes a JSON response
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError writes a JSON error response
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}
