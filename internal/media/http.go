// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package media

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the metadata lookup endpoint.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/metadata", handler.metadata)
}

func (handler *Handler) metadata(writer http.ResponseWriter, request *http.Request) {
	rawURL := request.URL.Query().Get("url")
	if rawURL == "" {
		respond.Error(writer, request, apperr.ValidationError("URL is required"))
		return
	}

	metadata, err := handler.service.Lookup(request.Context(), rawURL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, metadata)
}
