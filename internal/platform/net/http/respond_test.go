package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "joinlist/internal/platform/errors"
	pnet "joinlist/internal/platform/net"
	phttp "joinlist/internal/platform/net/http"
)

// helper to build a request with a request_id in context
func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req = req.WithContext(pnet.WithRequest(req.Context(), rid, ""))
	return req
}

func TestJSONWritesStatusAndContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.JSON(rec, http.StatusTeapot, map[string]any{"k": "v"})
	if rec.Code != http.StatusTeapot {
		t.Fatalf("JSON status: expected 418, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct == "" {
		t.Fatalf("expected content-type set")
	}
}

func TestRespondOKFlatBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := reqWithReqID("POST", "/signup", "rid-1")
	phttp.RespondOK(rec, req, map[string]any{"message": "ok", "isReturning": false})

	if rec.Code != http.StatusOK {
		t.Fatalf("RespondOK code: %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") != "rid-1" {
		t.Fatalf("request id must be mirrored in header")
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "ok" {
		t.Fatalf("body must be the DTO verbatim: %v", body)
	}
	if _, enveloped := body["data"]; enveloped {
		t.Fatalf("body must not be enveloped: %v", body)
	}
}

func TestRespondErrorClientSafe(t *testing.T) {
	rec := httptest.NewRecorder()
	req := reqWithReqID("POST", "/signup", "rid-2")
	phttp.RespondError(rec, req, perr.TooManyRequestsf("Too many requests. Please try again in a minute."))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	var body phttp.ErrorBody
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error != "Too many requests. Please try again in a minute." {
		t.Fatalf("client-safe message must pass through verbatim, got %q", body.Error)
	}
}

func TestRespondErrorHidesInternals(t *testing.T) {
	cases := []error{
		errors.New("pq: connection refused on 10.1.2.3"),
		perr.Providerf("resend POST /emails returned 500"),
		perr.Internalf("nil pointer in orchestrator"),
	}
	for _, err := range cases {
		rec := httptest.NewRecorder()
		req := reqWithReqID("POST", "/signup", "rid-3")
		phttp.RespondError(rec, req, err)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500 for %v, got %d", err, rec.Code)
		}
		var body phttp.ErrorBody
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
		if body.Error != "Something went wrong. Please try again." {
			t.Fatalf("internal detail leaked: %q", body.Error)
		}
	}
}

func TestHandleReturnStyle(t *testing.T) {
	h := phttp.Handle(func(r *http.Request) phttp.Response {
		return phttp.OK(map[string]any{"x": 1})
	})
	rec := httptest.NewRecorder()
	h(rec, reqWithReqID("GET", "/ok", "rid-4"))
	if rec.Code != http.StatusOK {
		t.Fatalf("handle OK code: %d", rec.Code)
	}

	he := phttp.Handle(func(r *http.Request) phttp.Response {
		return phttp.Error(perr.ChallengeFailedf("CAPTCHA verification failed. Please try again."))
	})
	recE := httptest.NewRecorder()
	he(recE, reqWithReqID("POST", "/signup", "rid-5"))
	if recE.Code != http.StatusUnprocessableEntity {
		t.Fatalf("handle error code: %d", recE.Code)
	}

	hn := phttp.Handle(func(r *http.Request) phttp.Response { return phttp.NoContent() })
	recN := httptest.NewRecorder()
	hn(recN, reqWithReqID("DELETE", "/x", "rid-6"))
	if recN.Code != http.StatusNoContent || recN.Body.Len() != 0 {
		t.Fatalf("no content: code %d body %q", recN.Code, recN.Body.String())
	}
}
