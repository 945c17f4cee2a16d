// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

// Package middleware provides the HTTP middleware chain for the Mixlist API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthZ/AuthN, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/constants"
	"github.com/mixlist/mixlist/internal/platform/ctxutil"
	"github.com/mixlist/mixlist/internal/platform/metrics"
	"github.com/mixlist/mixlist/internal/platform/respond"
	"github.com/mixlist/mixlist/internal/platform/sec"
)

// SessionResolver defines the interface needed to resolve session tokens
// in middleware.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject mocks during unit
// testing. Resolution re-reads the principal's account on every request,
// so a role change or deletion takes effect on the very next call.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*sec.Principal, error)
}

// Authenticate extracts and resolves the opaque session token.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header, then the session cookie.
//  2. If absent, request proceeds as anonymous.
//  3. If present, resolve the token to a live [*sec.Principal] via [SessionResolver].
//  4. Inject the principal into the request context for downstream use.
//
// A token that fails to resolve (expired, revoked, account deleted) does not
// abort the request: it proceeds as anonymous and the route-level guards
// decide whether that is acceptable.
//
// # Parameters
//   - resolver: The SessionResolver instance.
//
// # Returns
//   - An [http.Handler] middleware.
func Authenticate(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Token Extraction ───────────────────────────────────────────
			token := extractToken(request)
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Session Resolution ─────────────────────────────────────────
			principal, err := resolver.ResolveSession(request.Context(), token)
			if err != nil || principal == nil {
				// Stale token: fall through as anonymous.
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// extractToken pulls the opaque session token from the Authorization header
// (Bearer scheme) or, failing that, from the session cookie.
func extractToken(request *http.Request) string {
	authHeader := request.Header.Get(constants.SessionTokenHeader)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	cookie, err := request.Cookie(constants.SessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.Principal] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		principal := ctxutil.GetPrincipal(request.Context())
		if principal == nil {
			metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests unless the authenticated user's role is a
// member of the allowed set.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It automatically
// implies [RequireAuth] so you don't need to mount both.
//
// # Flow
//  1. Check if [*sec.Principal] exists in context — missing means HTTP 401,
//     never 403, so the two failure classes stay distinguishable.
//  2. Check set membership with [sec.Role.In]. Roles carry no hierarchy:
//     an Administrator is rejected from a Management-only route unless
//     Administrator is listed too.
//  3. If the role is not in the set, abort with HTTP 403 Forbidden.
func RequireRole(allowed ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if principal == nil {
				metrics.AccessDeniedTotal.WithLabelValues("unauthenticated").Inc()
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !principal.Role.In(allowed...) {
				metrics.AccessDeniedTotal.WithLabelValues("forbidden").Inc()
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
