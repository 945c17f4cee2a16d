// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mixlist/mixlist/internal/platform/middleware"
	requestutil "github.com/mixlist/mixlist/internal/platform/request"
	"github.com/mixlist/mixlist/internal/platform/respond"
	"github.com/mixlist/mixlist/internal/platform/sec"
	"github.com/mixlist/mixlist/pkg/convert"
	"github.com/mixlist/mixlist/pkg/pagination"
	urlquery "github.com/mixlist/mixlist/pkg/query"
)

// defaultPageSize matches the compact feed pages the clients render.
const defaultPageSize = 10

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the playlist endpoints.
//
// Reads are public (the service narrows private material per viewer); writes
// require a full account, and creation is limited to the roles that own
// content.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.With(middleware.RequireRole(sec.RoleRegularUser, sec.RoleAdministrator)).
		Post("/", handler.create)
	router.With(middleware.RequireAuth).Put("/{id}", handler.update)
	router.With(middleware.RequireAuth).Delete("/{id}", handler.delete)

	handler.registerSongRoutes(router)
	handler.registerSocialRoutes(router)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	viewer := requestutil.Principal(request)
	query := request.URL.Query()

	filter := Filter{
		Query:    query.Get("q"),
		Sort:     query.Get("sort"),
		SortDir:  query.Get("order"),
		GenreIDs: urlquery.Int64Slice(query.Get("genre")),
	}
	if raw := query.Get("user_id"); raw != "" {
		if ownerID := convert.ToInt64(raw); ownerID > 0 {
			filter.OwnerID = &ownerID
		}
	}
	if raw := query.Get("is_public"); raw != "" {
		isPublic := raw == "true"
		filter.IsPublic = &isPublic
	}

	params := pagination.FromRequestWithDefault(request, defaultPageSize)

	playlists, total, err := handler.service.List(request.Context(), viewer, filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, playlists, pagination.NewMeta(params.Page, params.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	playlistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.Get(request.Context(), requestutil.Principal(request), playlistID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.Create(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, p)
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := handler.service.Update(request.Context(), actor, playlistID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, p)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	playlistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actor, playlistID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
