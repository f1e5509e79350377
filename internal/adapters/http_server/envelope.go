package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// APIResponse wraps every response body the API writes.
type APIResponse struct {
	StatusCode    int      `json:"statusCode"`
	IsSuccess     bool     `json:"isSuccess"`
	ErrorMessages []string `json:"errorMessages"`
	Result        any      `json:"result"`
}

func envelope(status int, result any, msgs []string) APIResponse {
	if msgs == nil {
		msgs = []string{}
	}
	return APIResponse{
		StatusCode:    status,
		IsSuccess:     status >= 200 && status < 300,
		ErrorMessages: msgs,
		Result:        result,
	}
}

func writeEnvelope(w http.ResponseWriter, status int, result any, msgs []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope(status, result, msgs)); err != nil {
		log.Error().Err(err).Msg("write JSON envelope failed")
	}
}

func writeError(w http.ResponseWriter, status int, msgs ...string) {
	writeEnvelope(w, status, nil, msgs)
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable writes a 200 envelope with a weak ETag, or 304 when the client
// already holds that version.
func writeCacheable(w http.ResponseWriter, r *http.Request, result any) {
	etag, body := calcETagAndBody(envelope(http.StatusOK, result, nil))
	if body == nil {
		writeError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}
