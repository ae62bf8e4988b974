// Package net provides utilities for working with request contexts
package net

import (
	"context"
	"net/http"

	pstrings "joinlist/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyClientID ctxKey = "client_id"

// UnknownClient is the identifier used when no forwarding header is present
const UnknownClient = "unknown"

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID, clientID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if clientID != "" {
		ctx = context.WithValue(ctx, keyClientID, clientID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// ClientID returns the rate-limit client identifier on the context,
// falling back to UnknownClient when the middleware never ran
func ClientID(ctx context.Context) string {
	if v, ok := ctx.Value(keyClientID).(string); ok && v != "" {
		return v
	}
	return UnknownClient
}

// ClientIDFromRequest derives the client identifier from the first entry of
// the X-Forwarded-For header, trimmed. Absent header means UnknownClient.
func ClientIDFromRequest(r *http.Request) string {
	if v := pstrings.FirstCSV(r.Header.Get("X-Forwarded-For")); v != "" {
		return v
	}
	return UnknownClient
}
