// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mixlist/mixlist/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the dashboard endpoint. The mount point must be
// guarded with the Administrator/Management role check.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.dashboard)
}

func (handler *Handler) dashboard(writer http.ResponseWriter, request *http.Request) {
	dashboard, err := handler.service.Dashboard(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, dashboard)
}
