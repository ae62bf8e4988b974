package bind_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	perr "joinlist/internal/platform/errors"
	"joinlist/internal/platform/net/http/bind"
)

type payload struct {
	Email string `json:"email" validate:"omitempty,max=320"`
	Token string `json:"turnstileToken,omitempty"`
}

func TestParseJSONHappyPath(t *testing.T) {
	req := httptest.NewRequest("POST", "/signup", strings.NewReader(`{"email":"a@b.co","turnstileToken":"tok"}`))
	got, err := bind.ParseJSON[payload](req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "a@b.co" || got.Token != "tok" {
		t.Fatalf("bad decode: %+v", got)
	}
}

func TestParseJSONEmptyBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/signup", strings.NewReader(""))
	_, err := bind.ParseJSON[payload](req)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("expected JSON error, got %v", err)
	}
}

func TestParseJSONInvalidBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/signup", strings.NewReader(`{"email":`))
	_, err := bind.ParseJSON[payload](req)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("expected JSON error, got %v", err)
	}
}

func TestParseJSONUnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/signup", strings.NewReader(`{"email":"a@b.co","extra":1}`))
	_, err := bind.ParseJSON[payload](req)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("unknown fields should be rejected, got %v", err)
	}
}

func TestParseJSONTrailingData(t *testing.T) {
	req := httptest.NewRequest("POST", "/signup", strings.NewReader(`{"email":"a@b.co"}{"again":true}`))
	_, err := bind.ParseJSON[payload](req)
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("trailing data should be rejected, got %v", err)
	}
}

func TestParseJSONValidation(t *testing.T) {
	long := strings.Repeat("x", 321)
	req := httptest.NewRequest("POST", "/signup", strings.NewReader(`{"email":"`+long+`"}`))
	_, err := bind.ParseJSON[payload](req)
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if e, ok := perr.As(err); !ok || e.Field() != "email" {
		t.Fatalf("expected field email on error, got %v", err)
	}
}
