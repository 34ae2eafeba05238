package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Response renders itself to the client.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Envelope is the body of every JSON response.
type Envelope struct {
	Code  string       `json:"code,omitempty"`
	Data  any          `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type jsonResponse struct {
	status int
	body   Envelope
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSON wraps data in the envelope with the given status.
func JSON(status int, code string, data any) Response {
	return jsonResponse{status: status, body: Envelope{Code: code, Data: data}}
}

// JSONError renders err using its HTTPError mapping.
func JSONError(err error) Response {
	he := toHTTPError(err)
	return jsonResponse{
		status: he.Status,
		body: Envelope{
			Code:  he.Key,
			Error: &ErrorDetail{Code: he.Key, Message: he.message(err)},
		},
	}
}

type emptyResponse struct {
	status int
}

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// NoContent responds 204 with no body.
func NoContent() Response {
	return emptyResponse{status: http.StatusNoContent}
}

type bodyResponse struct {
	body  []byte
	cache string
}

func (b bodyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	h := w.Header()
	h.Set("Content-Type", http.DetectContentType(b.body))
	h.Set("Content-Length", strconv.Itoa(len(b.body)))
	h.Set(CacheHeader, b.cache)
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(b.body)
	return err
}

// Body responds 200 with raw bytes and the cache outcome header.
func Body(body []byte, cache string) Response {
	return bodyResponse{body: body, cache: cache}
}
