// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/mixlist/mixlist/internal/platform/request"
	"github.com/mixlist/mixlist/internal/platform/respond"
	"github.com/mixlist/mixlist/pkg/convert"
)

// DiscoverHandler serves the public discovery feeds. It is mounted on its
// own route tree (/recommendations) separate from the playlist CRUD surface.
type DiscoverHandler struct {
	service *Service
}

func NewDiscoverHandler(service *Service) *DiscoverHandler {
	return &DiscoverHandler{service: service}
}

// RegisterRoutes mounts the discovery endpoints. All of them are public.
func (handler *DiscoverHandler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.trending)
	router.Get("/genres", handler.popularGenres)
	router.Get("/new", handler.newest)
}

func (handler *DiscoverHandler) trending(writer http.ResponseWriter, request *http.Request) {
	limit := convert.ToIntD(request.URL.Query().Get("limit"), 0)

	playlists, err := handler.service.Trending(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"trending": playlists,
		"period":   "last_7_days",
	})
}

func (handler *DiscoverHandler) popularGenres(writer http.ResponseWriter, request *http.Request) {
	genres, err := handler.service.PopularGenres(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, genres)
}

func (handler *DiscoverHandler) newest(writer http.ResponseWriter, request *http.Request) {
	limit := convert.ToIntD(request.URL.Query().Get("limit"), 0)

	playlists, err := handler.service.Newest(request.Context(), limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, playlists)
}

// UserFeedHandler serves the per-user favorites and recommendations feeds.
// It is mounted under the /users route tree because its URLs are scoped to a
// user, but the playlist domain owns the data.
type UserFeedHandler struct {
	service *Service
}

func NewUserFeedHandler(service *Service) *UserFeedHandler {
	return &UserFeedHandler{service: service}
}

// RegisterRoutes mounts /{id}/favorites and /{id}/recommendations. Both are
// guarded by RequireAuth at the mount; admin-or-self is enforced in the
// service.
func (handler *UserFeedHandler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}/favorites", handler.favorites)
	router.Get("/{id}/recommendations", handler.recommendations)
}

func (handler *UserFeedHandler) favorites(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorites, err := handler.service.FavoritesOf(request.Context(), actor, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, favorites)
}

func (handler *UserFeedHandler) recommendations(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	feed, err := handler.service.RecommendationsFor(request.Context(), actor, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, feed)
}
