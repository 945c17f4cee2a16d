// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/mixlist/mixlist/internal/platform/request"
	"github.com/mixlist/mixlist/internal/platform/respond"
	"github.com/mixlist/mixlist/pkg/convert"
	"github.com/mixlist/mixlist/pkg/pagination"
)

// defaultPageSize is the audit listing default when the client omits "limit".
const defaultPageSize = 50

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the audit trail endpoints.
//
// The router this attaches to must already be guarded by
// RequireRole(Administrator) — nothing here is reachable by other roles.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Get("/actions", handler.actionSummary)
	router.Get("/export/pdf", handler.exportPDF)
	router.Get("/{id}", handler.get)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequestWithDefault(request, defaultPageSize)

	filter := Filter{
		Action: Action(request.URL.Query().Get("action")),
	}
	if raw := request.URL.Query().Get("user_id"); raw != "" {
		actorID := convert.ToInt64(raw)
		filter.ActorID = &actorID
	}

	entries, meta, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, meta)
}

func (handler *Handler) actionSummary(writer http.ResponseWriter, request *http.Request) {
	counts, err := handler.service.ActionSummary(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, counts)
}

func (handler *Handler) exportPDF(writer http.ResponseWriter, request *http.Request) {
	document, filename, err := handler.service.ExportPDF(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.File(writer, "application/pdf", filename, document)
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	entryID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Get(request.Context(), entryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}
