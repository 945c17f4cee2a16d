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
)

// registerSocialRoutes mounts likes, favorites, and click tracking under a
// playlist. Social writes are open to every full account role; the
// Unregistered role is read-only by definition.
func (handler *Handler) registerSocialRoutes(router chi.Router) {
	memberOnly := middleware.RequireRole(
		sec.RoleRegularUser, sec.RoleAdministrator, sec.RoleManagement)

	router.Get("/{id}/likes", handler.likeCount)
	router.With(memberOnly).Post("/{id}/likes", handler.like)
	router.With(middleware.RequireAuth).Delete("/{id}/likes", handler.unlike)

	router.With(middleware.RequireAuth).Get("/{id}/favorites", handler.favoriteStatus)
	router.With(memberOnly).Post("/{id}/favorites", handler.favorite)
	router.With(middleware.RequireAuth).Delete("/{id}/favorites", handler.unfavorite)

	router.Post("/{id}/clicks", handler.recordClick)
	router.With(middleware.RequireAuth).Get("/{id}/clicks", handler.clickStats)
}

// # Likes

func (handler *Handler) likeCount(writer http.ResponseWriter, request *http.Request) {
	playlistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.service.LikeCount(request.Context(), playlistID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"playlist_id": playlistID,
		"likes_count": count,
	})
}

func (handler *Handler) like(writer http.ResponseWriter, request *http.Request) {
	actor, playlistID, err := handler.socialTarget(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Like(request.Context(), actor, playlistID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"message": "Playlist liked"})
}

func (handler *Handler) unlike(writer http.ResponseWriter, request *http.Request) {
	actor, playlistID, err := handler.socialTarget(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unlike(request.Context(), actor, playlistID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Favorites

func (handler *Handler) favoriteStatus(writer http.ResponseWriter, request *http.Request) {
	actor, playlistID, err := handler.socialTarget(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	favorited, addedAt, err := handler.service.FavoriteStatus(request.Context(), actor, playlistID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"playlist_id":  playlistID,
		"is_favorited": favorited,
		"added_at":     addedAt,
	})
}

func (handler *Handler) favorite(writer http.ResponseWriter, request *http.Request) {
	actor, playlistID, err := handler.socialTarget(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Favorite(request.Context(), actor, playlistID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"message": "Playlist added to favorites"})
}

func (handler *Handler) unfavorite(writer http.ResponseWriter, request *http.Request) {
	actor, playlistID, err := handler.socialTarget(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unfavorite(request.Context(), actor, playlistID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Clicks

func (handler *Handler) recordClick(writer http.ResponseWriter, request *http.Request) {
	playlistID, err := requestutil.IntID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	viewer := requestutil.Principal(request)
	if err := handler.service.RecordClick(request.Context(), viewer, playlistID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"message": "Click recorded"})
}

func (handler *Handler) clickStats(writer http.ResponseWriter, request *http.Request) {
	actor, playlistID, err := handler.socialTarget(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.ClickStats(request.Context(), actor, playlistID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, stats)
}

// socialTarget extracts the authenticated actor and the target playlist ID.
func (handler *Handler) socialTarget(request *http.Request) (*sec.Principal, int64, error) {
	actor, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		return nil, 0, err
	}

	playlistID, err := requestutil.IntID(request, "id")
	if err != nil {
		return nil, 0, err
	}

	return actor, playlistID, nil
}
