// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mixlist/mixlist/internal/platform/constants"
	"github.com/mixlist/mixlist/internal/platform/middleware"
	requestutil "github.com/mixlist/mixlist/internal/platform/request"
	"github.com/mixlist/mixlist/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the authentication endpoints.
//
// credentialGuard is the strict per-IP rate limiter applied to the anonymous
// credential endpoints only. /logout and /me stay on the global limiter so a
// burst of profile reads does not lock an account holder out.
func (handler *Handler) RegisterRoutes(router chi.Router, credentialGuard func(http.Handler) http.Handler) {
	router.With(credentialGuard).Post("/register", handler.register)
	router.With(credentialGuard).Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Get("/me", handler.me)
}

func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input.IPAddress = middleware.RealIP(request)
	input.UserAgent = request.UserAgent()

	user, token, err := handler.service.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookie(writer, token, int(SessionTTL.Seconds()))

	respond.OK(writer, map[string]interface{}{
		FieldUser:  user,
		FieldToken: token,
	})
}

func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	token := clientToken(request)
	if token == "" {
		// Nothing to tear down; logout stays idempotent.
		respond.OK(writer, map[string]string{FieldMessage: "Logged out"})
		return
	}

	var actorID *int64
	if principal := requestutil.Principal(request); principal != nil {
		actorID = &principal.ID
	}

	if err := handler.service.Logout(request.Context(), token, actorID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	setSessionCookie(writer, "", -1)
	respond.OK(writer, map[string]string{FieldMessage: "Logged out"})
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Me(request.Context(), principal.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// setSessionCookie writes (or clears, with maxAge < 0) the session cookie.
func setSessionCookie(writer http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clientToken mirrors the middleware's extraction rules for teardown.
func clientToken(request *http.Request) string {
	authHeader := request.Header.Get(constants.SessionTokenHeader)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}

	cookie, err := request.Cookie(constants.SessionCookieName)
	if err == nil {
		return cookie.Value
	}

	return ""
}
