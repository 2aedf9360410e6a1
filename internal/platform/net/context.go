// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyAgentID ctxKey = "agent_id"

// WithRequest annotates context with the request id
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return ctx
}

// WithAgent annotates context with the authenticated agent id
func WithAgent(ctx context.Context, agentID string) context.Context {
	if agentID != "" {
		ctx = context.WithValue(ctx, keyAgentID, agentID)
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

// AgentID returns the agent id on the context if present
func AgentID(ctx context.Context) string {
	if v, ok := ctx.Value(keyAgentID).(string); ok {
		return v
	}
	return ""
}
