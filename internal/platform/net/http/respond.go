// Package http provides helpers for writing JSON responses on the public wire.
// Success bodies are the caller's DTO verbatim; error bodies are {"error": msg}.
// The request id travels in the X-Request-ID header, never in the body.
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "joinlist/internal/platform/errors"
	pnet "joinlist/internal/platform/net"
)

// ErrorBody is the wire shape for every non-2xx response
type ErrorBody struct {
	Error string `json:"error"`
}

// internalMessage is what callers see when the real failure is not theirs to know
const internalMessage = "Something went wrong. Please try again."

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONStatus writes only a status with an empty object body
func JSONStatus(w stdhttp.ResponseWriter, status int) {
	JSON(w, status, map[string]any{})
}

// clientSafe reports whether an error code's message may be shown verbatim.
// Internal failures get a generic message so infrastructure details never leak.
func clientSafe(code perr.ErrorCode) bool {
	switch code {
	case perr.ErrorCodeValidation,
		perr.ErrorCodeJSON,
		perr.ErrorCodeChallengeFailed,
		perr.ErrorCodeTooManyRequests,
		perr.ErrorCodeNotConfigured,
		perr.ErrorCodeNotFound,
		perr.ErrorCodeDuplicate:
		return true
	}
	return false
}

// mirrorRequestID reflects the request id into the response headers
func mirrorRequestID(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if rid := pnet.RequestID(r.Context()); rid != "" {
		w.Header().Set("X-Request-ID", rid)
	}
}

// RespondOK writes data verbatim with a 200
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	mirrorRequestID(w, r)
	JSON(w, stdhttp.StatusOK, data)
}

// RespondError maps a project error onto the wire contract and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	mirrorRequestID(w, r)
	status := perr.HTTPStatus(err)
	msg := internalMessage
	if wr := perr.WireFrom(err); clientSafe(wr.Code) && wr.Message != "" {
		msg = wr.Message
	}
	JSON(w, status, ErrorBody{Error: msg})
}

//
// Return-style helpers for early returns in handlers
//

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	// optional headers if a handler wants to add any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	// allow header overrides
	if resp.Header != nil {
		for k, vv := range resp.Header {
			for _, v := range vv {
				w.Header().Add(k, v)
			}
		}
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	// If Body is an error, derive status from error before writing
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}

	mirrorRequestID(w, r)
	JSON(w, status, resp.Body)
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error returns a response that maps the error to status and wire body
func Error(err error) Response { return Response{Body: err} }
