package resend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"joinlist/internal/adapters/resend"
	perr "joinlist/internal/platform/errors"
)

func TestConfigured(t *testing.T) {
	if resend.New(resend.Options{}).Configured() {
		t.Fatalf("empty API key must report not configured")
	}
	if !resend.New(resend.Options{APIKey: "re_123"}).Configured() {
		t.Fatalf("API key present must report configured")
	}
}

func TestListContacts(t *testing.T) {
	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[
			{"id":"c-1","email":"a@example.com","unsubscribed":false},
			{"id":"c-2","email":"b@example.com","unsubscribed":true}
		]}`))
	}))
	defer srv.Close()

	c := resend.New(resend.Options{APIKey: "re_123", BaseURL: srv.URL})
	got, err := c.ListContacts(context.Background(), "aud-1")
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}
	if gotAuth != "Bearer re_123" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotPath != "/audiences/aud-1/contacts" {
		t.Fatalf("path = %q", gotPath)
	}
	if len(got) != 2 || got[0].Email != "a@example.com" {
		t.Fatalf("contacts = %+v", got)
	}
	if !got[0].Subscribed() || got[1].Subscribed() {
		t.Fatalf("subscribed flags wrong: %+v", got)
	}
}

func TestListContactsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"statusCode":401,"message":"Invalid API key","name":"invalid_api_key"}`))
	}))
	defer srv.Close()

	c := resend.New(resend.Options{APIKey: "re_bad", BaseURL: srv.URL})
	if _, err := c.ListContacts(context.Background(), "aud-1"); !perr.IsCode(err, perr.ErrorCodeProvider) {
		t.Fatalf("err = %v, want provider error", err)
	}
}

func TestCreateContact(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"object":"contact","id":"c-9"}`))
	}))
	defer srv.Close()

	c := resend.New(resend.Options{APIKey: "re_123", BaseURL: srv.URL})
	id, err := c.CreateContact(context.Background(), "aud-1", "new@example.com")
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	if id != "c-9" {
		t.Fatalf("id = %q", id)
	}
	if gotBody["email"] != "new@example.com" || gotBody["unsubscribed"] != false {
		t.Fatalf("body = %v", gotBody)
	}
}

func TestCreateContactAlreadyExists(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"conflict status": {
			status: http.StatusConflict,
			body:   `{"statusCode":409,"message":"Contact already exists","name":"conflict"}`,
		},
		"message match": {
			status: http.StatusUnprocessableEntity,
			body:   `{"statusCode":422,"message":"Contact already exists in audience","name":"validation_error"}`,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := resend.New(resend.Options{APIKey: "re_123", BaseURL: srv.URL})
			_, err := c.CreateContact(context.Background(), "aud-1", "dupe@example.com")
			if !perr.IsCode(err, perr.ErrorCodeDuplicate) {
				t.Fatalf("err = %v, want duplicate", err)
			}
		})
	}
}

func TestSendEmail(t *testing.T) {
	var gotBody map[string]any
	var gotIdem string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdem = r.Header.Get("Idempotency-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"e-1"}`))
	}))
	defer srv.Close()

	c := resend.New(resend.Options{APIKey: "re_123", BaseURL: srv.URL})
	id, err := c.SendEmail(context.Background(), resend.EmailRequest{
		From:    "List <list@example.com>",
		To:      []string{"new@example.com"},
		Subject: "Welcome",
		HTML:    "<p>hi</p>",
	})
	if err != nil {
		t.Fatalf("SendEmail: %v", err)
	}
	if id != "e-1" {
		t.Fatalf("id = %q", id)
	}
	if gotIdem == "" {
		t.Fatalf("missing idempotency key")
	}
	if gotBody["subject"] != "Welcome" {
		t.Fatalf("body = %v", gotBody)
	}
	to, _ := gotBody["to"].([]any)
	if len(to) != 1 || to[0] != "new@example.com" {
		t.Fatalf("to = %v", gotBody["to"])
	}
}

func TestSendEmailProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"message":"The 'from' field is required.","name":"validation_error"}`))
	}))
	defer srv.Close()

	c := resend.New(resend.Options{APIKey: "re_123", BaseURL: srv.URL})
	if _, err := c.SendEmail(context.Background(), resend.EmailRequest{}); !perr.IsCode(err, perr.ErrorCodeProvider) {
		t.Fatalf("err = %v, want provider error", err)
	}
}
