// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mixlist/mixlist/internal/platform/middleware"
	requestutil "github.com/mixlist/mixlist/internal/platform/request"
	"github.com/mixlist/mixlist/internal/platform/respond"
)

// registerSongRoutes mounts the songs sub-resource under /{id}/songs.
func (handler *Handler) registerSongRoutes(router chi.Router) {
	router.Get("/{id}/songs", handler.listSongs)
	router.Get("/{id}/songs/{songID}", handler.getSong)

	router.With(middleware.RequireAuth).Post("/{id}/songs", handler.addSong)
	router.With(middleware.RequireAuth).Put("/{id}/songs/{songID}", handler.updateSong)
	router.With(middleware.RequireAuth).Delete("/{id}/songs/{songID}", handler.removeSong)
}

func (handler *Handler) listSongs(writer http.ResponseWriter, request *http.Request) {
	playlistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	list, err := handler.service.ListSongs(request.Context(), requestutil.Principal(request), playlistID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, list)
}

func (handler *Handler) getSong(writer http.ResponseWriter, request *http.Request) {
	playlistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	songID, err := requestutil.IntID(request, "songID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	song, err := handler.service.GetSong(request.Context(), requestutil.Principal(request), playlistID, songID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, song)
}

func (handler *Handler) addSong(writer http.ResponseWriter, request *http.Request) {
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

	var input SongInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	song, err := handler.service.AddSong(request.Context(), actor, playlistID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, song)
}

func (handler *Handler) updateSong(writer http.ResponseWriter, request *http.Request) {
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

	songID, err := requestutil.IntID(request, "songID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input SongUpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	song, err := handler.service.UpdateSong(request.Context(), actor, playlistID, songID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, song)
}

func (handler *Handler) removeSong(writer http.ResponseWriter, request *http.Request) {
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

	songID, err := requestutil.IntID(request, "songID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveSong(request.Context(), actor, playlistID, songID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
